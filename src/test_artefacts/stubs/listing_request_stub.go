package stubs

import (
	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

type CreateListingRequestStub struct {
	request domain.CreateListingRequest
}

func NewCreateListingRequestStub() CreateListingRequestStub {
	price := decimal.NewFromInt(int64(gofakeit.IntRange(50_000, 2_000_000)))
	bedrooms := gofakeit.IntRange(1, 6)
	bathrooms := gofakeit.IntRange(1, 4)
	area := float64(gofakeit.IntRange(30, 600))
	listingType := entities.ListingTypeApartment

	return CreateListingRequestStub{request: domain.CreateListingRequest{
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Sentence(12),
		Price:       &price,
		Address:     gofakeit.Street(),
		City:        gofakeit.City(),
		Country:     gofakeit.Country(),
		Bedrooms:    &bedrooms,
		Bathrooms:   &bathrooms,
		Area:        &area,
		Type:        &listingType,
	}}
}

func (rs CreateListingRequestStub) WithTitle(title string) CreateListingRequestStub {
	rs.request.Title = title
	return rs
}

func (rs CreateListingRequestStub) WithCity(city string) CreateListingRequestStub {
	rs.request.City = city
	return rs
}

func (rs CreateListingRequestStub) WithDescription(description string) CreateListingRequestStub {
	rs.request.Description = description
	return rs
}

func (rs CreateListingRequestStub) WithPrice(price decimal.Decimal) CreateListingRequestStub {
	rs.request.Price = &price
	return rs
}

func (rs CreateListingRequestStub) WithoutPrice() CreateListingRequestStub {
	rs.request.Price = nil
	return rs
}

func (rs CreateListingRequestStub) WithType(listingType entities.ListingType) CreateListingRequestStub {
	rs.request.Type = &listingType
	return rs
}

func (rs CreateListingRequestStub) WithoutType() CreateListingRequestStub {
	rs.request.Type = nil
	return rs
}

func (rs CreateListingRequestStub) WithBedrooms(bedrooms int) CreateListingRequestStub {
	rs.request.Bedrooms = &bedrooms
	return rs
}

func (rs CreateListingRequestStub) WithArea(area float64) CreateListingRequestStub {
	rs.request.Area = &area
	return rs
}

func (rs CreateListingRequestStub) WithoutOptionals() CreateListingRequestStub {
	rs.request.Bedrooms = nil
	rs.request.Bathrooms = nil
	rs.request.Area = nil
	return rs
}

func (rs CreateListingRequestStub) Get() domain.CreateListingRequest {
	return rs.request
}
