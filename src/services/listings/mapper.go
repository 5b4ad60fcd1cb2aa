package listings

import (
	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"
)

// ToEntity monta um listing novo: sem id, sem timestamps e ativo.
func ToEntity(request domain.CreateListingRequest) entities.Listing {
	listing := entities.Listing{
		Title:       request.Title,
		Description: request.Description,
		Address:     request.Address,
		City:        request.City,
		Country:     request.Country,
		Bedrooms:    copyPtr(request.Bedrooms),
		Bathrooms:   copyPtr(request.Bathrooms),
		Area:        copyPtr(request.Area),
		Active:      true,
	}

	if request.Price != nil {
		listing.Price = *request.Price
	}

	if request.Type != nil {
		listing.Type = *request.Type
	}

	return listing
}

func ToResponse(listing entities.Listing) domain.ListingResponse {
	return domain.ListingResponse{
		ID:          listing.ID,
		Title:       listing.Title,
		Description: listing.Description,
		Price:       listing.Price,
		Address:     listing.Address,
		City:        listing.City,
		Country:     listing.Country,
		Bedrooms:    copyPtr(listing.Bedrooms),
		Bathrooms:   copyPtr(listing.Bathrooms),
		Area:        copyPtr(listing.Area),
		Type:        listing.Type,
		CreatedAt:   listing.CreatedAt,
		UpdatedAt:   listing.UpdatedAt,
		Active:      listing.Active,
	}
}

// ApplyPatch copia para o listing apenas os campos presentes no request.
// id, timestamps e active nunca são tocados aqui.
func ApplyPatch(request domain.UpdateListingRequest, listing *entities.Listing) {
	if request.Title != nil {
		listing.Title = *request.Title
	}
	if request.Description != nil {
		listing.Description = *request.Description
	}
	if request.Price != nil {
		listing.Price = *request.Price
	}
	if request.Address != nil {
		listing.Address = *request.Address
	}
	if request.City != nil {
		listing.City = *request.City
	}
	if request.Country != nil {
		listing.Country = *request.Country
	}
	if request.Bedrooms != nil {
		listing.Bedrooms = copyPtr(request.Bedrooms)
	}
	if request.Bathrooms != nil {
		listing.Bathrooms = copyPtr(request.Bathrooms)
	}
	if request.Area != nil {
		listing.Area = copyPtr(request.Area)
	}
	if request.Type != nil {
		listing.Type = *request.Type
	}
}

func copyPtr[T any](value *T) *T {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
