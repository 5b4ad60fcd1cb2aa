package domain

import (
	"time"

	"propertylisting/src/domain/entities"

	"github.com/google/uuid"
)

type ListingEventType string

const (
	ListingCreated ListingEventType = "listing.created"
	ListingUpdated ListingEventType = "listing.updated"
	ListingDeleted ListingEventType = "listing.deleted"
)

// ListingEvent notifica consumidores externos sobre uma mutação já persistida.
// Listing é nil para eventos de remoção.
type ListingEvent struct {
	EventID    uuid.UUID         `json:"event_id"`
	EventType  ListingEventType  `json:"event_type"`
	ListingID  uuid.UUID         `json:"listing_id"`
	Listing    *entities.Listing `json:"listing,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func NewListingEvent(eventType ListingEventType, listingID uuid.UUID, listing *entities.Listing) ListingEvent {
	return ListingEvent{
		EventID:    uuid.New(),
		EventType:  eventType,
		ListingID:  listingID,
		Listing:    listing,
		OccurredAt: time.Now().UTC(),
	}
}
