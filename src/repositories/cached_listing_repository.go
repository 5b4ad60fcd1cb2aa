package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"
	"propertylisting/src/infra/redis"

	"github.com/google/uuid"
)

type listingStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Listing, error)
	Save(ctx context.Context, listing *entities.Listing) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	FindPage(ctx context.Context, filter domain.Filter, page int, pageSize int) ([]entities.Listing, int64, error)
}

// CachedListingRepository guarda FindByID no redis e invalida a chave em toda
// escrita. Sem redisClient ele apenas repassa as chamadas.
type CachedListingRepository struct {
	logger      *slog.Logger
	store       listingStore
	redisClient *redis.RedisClient
}

func NewCachedListingRepository(
	logger *slog.Logger,
	store listingStore,
	redisClient *redis.RedisClient,
) *CachedListingRepository {
	return &CachedListingRepository{
		logger:      logger,
		store:       store,
		redisClient: redisClient,
	}
}

func (r *CachedListingRepository) cacheKey(id uuid.UUID) string {
	return r.redisClient.Key("listing", id.String())
}

func (r *CachedListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Listing, error) {
	if r.redisClient == nil {
		return r.store.FindByID(ctx, id)
	}

	cacheKey := r.cacheKey(id)

	cached, found, err := r.redisClient.GetKey(ctx, cacheKey)
	if err != nil {
		// erro de cache não derruba a leitura
		r.logger.Warn("cache read failed", "key", cacheKey, "error", err)
	}

	if found && err == nil {
		var listing entities.Listing
		if err := json.Unmarshal([]byte(cached), &listing); err == nil {
			r.logger.Debug("cache hit", "key", cacheKey)
			return &listing, nil
		}
		r.logger.Warn("discarding unreadable cache entry", "key", cacheKey)
	}

	listing, err := r.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(listing); err == nil {
		if err := r.redisClient.SetKey(ctx, cacheKey, string(data)); err != nil {
			r.logger.Warn("cache write failed", "key", cacheKey, "error", err)
		}
	}

	return listing, nil
}

func (r *CachedListingRepository) Save(ctx context.Context, listing *entities.Listing) error {
	if err := r.store.Save(ctx, listing); err != nil {
		return err
	}
	r.invalidate(ctx, listing.ID)
	return nil
}

func (r *CachedListingRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := r.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedListingRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.store.ExistsByID(ctx, id)
}

// páginas não são cacheadas: qualquer escrita mudaria o total.
func (r *CachedListingRepository) FindPage(ctx context.Context, filter domain.Filter, page int, pageSize int) ([]entities.Listing, int64, error) {
	return r.store.FindPage(ctx, filter, page, pageSize)
}

func (r *CachedListingRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if r.redisClient == nil {
		return
	}

	// invalida mesmo com o request já cancelado
	ctxWithTimeout, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	if err := r.redisClient.InvalidateKeys(ctxWithTimeout, r.cacheKey(id)); err != nil {
		r.logger.Error("cache invalidation failed", "listing_id", id.String(), "error", fmt.Errorf("CachedListingRepository.invalidate: %w", err))
	}
}
