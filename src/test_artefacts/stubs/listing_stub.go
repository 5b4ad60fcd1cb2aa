package stubs

import (
	"time"

	"propertylisting/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ListingStub struct {
	listing entities.Listing
}

func NewListingStub() ListingStub {
	now := time.Now().UTC().Truncate(time.Microsecond)

	bedrooms := gofakeit.IntRange(1, 6)
	bathrooms := gofakeit.IntRange(1, 4)
	area := float64(gofakeit.IntRange(30, 600))

	listing := entities.Listing{
		ID:          uuid.New(),
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Sentence(12),
		Price:       decimal.NewFromInt(int64(gofakeit.IntRange(50_000, 2_000_000))),
		Address:     gofakeit.Street(),
		City:        gofakeit.City(),
		Country:     gofakeit.Country(),
		Bedrooms:    &bedrooms,
		Bathrooms:   &bathrooms,
		Area:        &area,
		Type:        entities.ListingTypes[gofakeit.IntRange(0, len(entities.ListingTypes)-1)],
		CreatedAt:   now,
		UpdatedAt:   now,
		Active:      true,
	}

	return ListingStub{listing: listing}
}

// AsNew remove id e timestamps, deixando o listing pronto para o primeiro Save.
func (ls ListingStub) AsNew() ListingStub {
	ls.listing.ID = uuid.Nil
	ls.listing.CreatedAt = time.Time{}
	ls.listing.UpdatedAt = time.Time{}
	return ls
}

func (ls ListingStub) WithID(id uuid.UUID) ListingStub {
	ls.listing.ID = id
	return ls
}

func (ls ListingStub) WithTitle(title string) ListingStub {
	ls.listing.Title = title
	return ls
}

func (ls ListingStub) WithCity(city string) ListingStub {
	ls.listing.City = city
	return ls
}

func (ls ListingStub) WithPrice(price int64) ListingStub {
	ls.listing.Price = decimal.NewFromInt(price)
	return ls
}

func (ls ListingStub) WithType(listingType entities.ListingType) ListingStub {
	ls.listing.Type = listingType
	return ls
}

func (ls ListingStub) WithoutOptionals() ListingStub {
	ls.listing.Bedrooms = nil
	ls.listing.Bathrooms = nil
	ls.listing.Area = nil
	return ls
}

func (ls ListingStub) WithCreatedAt(createdAt time.Time) ListingStub {
	ls.listing.CreatedAt = createdAt.UTC().Truncate(time.Microsecond)
	ls.listing.UpdatedAt = ls.listing.CreatedAt
	return ls
}

func (ls ListingStub) Get() entities.Listing {
	return ls.listing
}
