package listings

import (
	"context"
	"fmt"

	"propertylisting/src/domain"

	"github.com/google/uuid"
)

// Update valida os campos presentes antes de buscar o registro, então um
// request inválido para um id inexistente responde com erro de validação.
func (s *ListingService) Update(ctx context.Context, id uuid.UUID, request domain.UpdateListingRequest) (*domain.ListingResponse, error) {
	if err := s.validator.Validate(request); err != nil {
		return nil, err
	}

	listing, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ListingService.Update - failed to FindByID (%s): %w", id, err)
	}

	ApplyPatch(request, listing)

	if err := s.repository.Save(ctx, listing); err != nil {
		return nil, fmt.Errorf("ListingService.Update - failed to Save listing (%s): %w", id, err)
	}

	s.logger.Info("listing updated", "listing_id", id.String())
	s.publish(ctx, domain.ListingUpdated, listing.ID, listing)

	response := ToResponse(*listing)
	return &response, nil
}
