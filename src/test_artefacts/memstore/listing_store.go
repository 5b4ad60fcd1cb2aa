package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"

	"github.com/google/uuid"
)

// ListingStore guarda listings em memória com a mesma semântica do store Postgres.
type ListingStore struct {
	mu       sync.RWMutex
	listings map[uuid.UUID]entities.Listing
	failWith error
	now      func() time.Time
}

func NewListingStore() *ListingStore {
	return &ListingStore{
		listings: make(map[uuid.UUID]entities.Listing),
		now:      time.Now,
	}
}

// FailWith faz todas as operações seguintes falharem com err (nil restaura).
func (s *ListingStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// WithClock troca o relógio usado para carimbar timestamps.
func (s *ListingStore) WithClock(now func() time.Time) *ListingStore {
	s.now = now
	return s
}

// Put insere o listing como está, sem tocar em id ou timestamps.
func (s *ListingStore) Put(listings ...entities.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range listings {
		s.listings[l.ID] = l
	}
}

func (s *ListingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}

func (s *ListingStore) FindByID(ctx context.Context, id uuid.UUID) (*entities.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	listing, ok := s.listings[id]
	if !ok {
		return nil, fmt.Errorf("ListingStore.FindByID - listing (%s): %w", id, domain.ErrListingNotFound)
	}

	return &listing, nil
}

func (s *ListingStore) Save(ctx context.Context, listing *entities.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	if listing.IsNew() {
		listing.ID = uuid.New()
	}
	listing.Touch(s.now())

	s.listings[listing.ID] = *listing
	return nil
}

func (s *ListingStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	delete(s.listings, id)
	return nil
}

func (s *ListingStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failWith != nil {
		return false, s.failWith
	}

	_, ok := s.listings[id]
	return ok, nil
}

func (s *ListingStore) FindPage(ctx context.Context, filter domain.Filter, page int, pageSize int) ([]entities.Listing, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failWith != nil {
		return nil, 0, s.failWith
	}

	matched := make([]entities.Listing, 0, len(s.listings))
	for _, l := range s.listings {
		if filter.Matches(l) {
			matched = append(matched, l)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	total := int64(len(matched))
	if page >= (len(matched)+pageSize-1)/pageSize {
		return []entities.Listing{}, total, nil
	}

	start := page * pageSize

	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}
