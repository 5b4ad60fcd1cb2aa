package listings

import (
	"context"
	"fmt"

	"propertylisting/src/domain"

	"github.com/google/uuid"
)

func (s *ListingService) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repository.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ListingService.Delete - failed to check existence (%s): %w", id, err)
	}

	if !exists {
		return fmt.Errorf("ListingService.Delete - listing (%s): %w", id, domain.ErrListingNotFound)
	}

	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("ListingService.Delete - failed to DeleteByID (%s): %w", id, err)
	}

	s.logger.Info("listing deleted", "listing_id", id.String())
	s.publish(ctx, domain.ListingDeleted, id, nil)

	return nil
}
