package listings

import (
	"context"
	"log/slog"

	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"

	"github.com/google/uuid"
)

// ListingRepository é a fronteira de persistência dos listings.
// FindByID devolve domain.ErrListingNotFound (embrulhado) quando o id não existe.
// Save atribui id e timestamps no próprio ponteiro recebido.
type ListingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Listing, error)
	Save(ctx context.Context, listing *entities.Listing) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	FindPage(ctx context.Context, filter domain.Filter, page int, pageSize int) ([]entities.Listing, int64, error)
}

type EventPublisher interface {
	PublishListingEvent(ctx context.Context, event domain.ListingEvent) error
}

type ListingService struct {
	logger     *slog.Logger
	repository ListingRepository
	publisher  EventPublisher
	validator  *RequestValidator
}

// NewListingService aceita publisher nil: nesse caso nenhum evento é emitido.
func NewListingService(
	logger *slog.Logger,
	repository ListingRepository,
	publisher EventPublisher,
) *ListingService {
	return &ListingService{
		logger:     logger,
		repository: repository,
		publisher:  publisher,
		validator:  NewRequestValidator(),
	}
}

// a mutação já foi persistida; falha de publicação só é logada.
func (s *ListingService) publish(ctx context.Context, eventType domain.ListingEventType, id uuid.UUID, listing *entities.Listing) {
	if s.publisher == nil {
		return
	}

	event := domain.NewListingEvent(eventType, id, listing)
	if err := s.publisher.PublishListingEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish listing event",
			"error", err,
			"event_type", eventType,
			"listing_id", id.String())
	}
}
