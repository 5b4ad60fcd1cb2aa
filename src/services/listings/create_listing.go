package listings

import (
	"context"
	"fmt"

	"propertylisting/src/domain"
)

func (s *ListingService) Create(ctx context.Context, request domain.CreateListingRequest) (*domain.ListingResponse, error) {
	if err := s.validator.Validate(request); err != nil {
		return nil, err
	}

	listing := ToEntity(request)
	if err := s.repository.Save(ctx, &listing); err != nil {
		return nil, fmt.Errorf("ListingService.Create - failed to Save listing: %w", err)
	}

	s.logger.Info("listing created", "listing_id", listing.ID.String(), "type", listing.Type)
	s.publish(ctx, domain.ListingCreated, listing.ID, &listing)

	response := ToResponse(listing)
	return &response, nil
}
