package domain

import (
	"time"

	"propertylisting/src/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage mantém page*pageSize dentro de um int de 32 bits.
	MaxPage = 10_000_000
)

// ListingQuery carrega os parâmetros opcionais da listagem paginada.
type ListingQuery struct {
	Page     int
	PageSize int
	City     *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	// Token cru vindo do cliente; valores desconhecidos são descartados.
	Type *string
}

// CreateListingRequest é o payload completo de criação.
type CreateListingRequest struct {
	Title       string                `json:"title" validate:"notblank,max=200"`
	Description string                `json:"description" validate:"notblank"`
	Price       *decimal.Decimal      `json:"price" validate:"required,gt=0"`
	Address     string                `json:"address" validate:"notblank"`
	City        string                `json:"city" validate:"notblank"`
	Country     string                `json:"country" validate:"notblank"`
	Bedrooms    *int                  `json:"bedrooms,omitempty" validate:"omitempty,gt=0"`
	Bathrooms   *int                  `json:"bathrooms,omitempty" validate:"omitempty,gt=0"`
	Area        *float64              `json:"area,omitempty" validate:"omitempty,gte=0"`
	Type        *entities.ListingType `json:"type" validate:"required,listingtype"`
}

// UpdateListingRequest é um patch esparso: nil significa "manter o valor atual".
type UpdateListingRequest struct {
	Title       *string               `json:"title,omitempty" validate:"omitempty,notblank,max=200"`
	Description *string               `json:"description,omitempty" validate:"omitempty,notblank"`
	Price       *decimal.Decimal      `json:"price,omitempty" validate:"omitempty,gt=0"`
	Address     *string               `json:"address,omitempty" validate:"omitempty,notblank"`
	City        *string               `json:"city,omitempty" validate:"omitempty,notblank"`
	Country     *string               `json:"country,omitempty" validate:"omitempty,notblank"`
	Bedrooms    *int                  `json:"bedrooms,omitempty" validate:"omitempty,gt=0"`
	Bathrooms   *int                  `json:"bathrooms,omitempty" validate:"omitempty,gt=0"`
	Area        *float64              `json:"area,omitempty" validate:"omitempty,gte=0"`
	Type        *entities.ListingType `json:"type,omitempty" validate:"omitempty,listingtype"`
}

// ListingResponse é a projeção completa devolvida aos clientes.
type ListingResponse struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Price       decimal.Decimal      `json:"price"`
	Address     string               `json:"address"`
	City        string               `json:"city"`
	Country     string               `json:"country"`
	Bedrooms    *int                 `json:"bedrooms"`
	Bathrooms   *int                 `json:"bathrooms"`
	Area        *float64             `json:"area"`
	Type        entities.ListingType `json:"type"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Active      bool                 `json:"active"`
}

type ListingPage struct {
	Items         []ListingResponse `json:"items"`
	Page          int               `json:"page"`
	PageSize      int               `json:"pageSize"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
}

// AuthToken é o bearer token opaco emitido após autenticação.
type AuthToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
