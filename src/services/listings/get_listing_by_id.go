package listings

import (
	"context"
	"fmt"

	"propertylisting/src/domain"

	"github.com/google/uuid"
)

func (s *ListingService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ListingResponse, error) {
	listing, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ListingService.GetByID - failed to FindByID (%s): %w", id, err)
	}

	response := ToResponse(*listing)
	return &response, nil
}
