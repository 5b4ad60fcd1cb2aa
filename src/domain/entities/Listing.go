package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ListingType string

const (
	ListingTypeApartment  ListingType = "APARTMENT"
	ListingTypeHouse      ListingType = "HOUSE"
	ListingTypeVilla      ListingType = "VILLA"
	ListingTypeLand       ListingType = "LAND"
	ListingTypeCommercial ListingType = "COMMERCIAL"
	ListingTypeOther      ListingType = "OTHER"
)

// ListingTypes é o conjunto fechado de tipos aceitos.
var ListingTypes = []ListingType{
	ListingTypeApartment,
	ListingTypeHouse,
	ListingTypeVilla,
	ListingTypeLand,
	ListingTypeCommercial,
	ListingTypeOther,
}

// ParseListingType reconhece o token ignorando caixa e espaços.
func ParseListingType(token string) (ListingType, bool) {
	candidate := ListingType(strings.ToUpper(strings.TrimSpace(token)))
	for _, t := range ListingTypes {
		if t == candidate {
			return t, true
		}
	}
	return "", false
}

func (t ListingType) IsValid() bool {
	for _, known := range ListingTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Listing é o imóvel anunciado, única entidade persistida.
type Listing struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	Country     string          `json:"country"`
	Bedrooms    *int            `json:"bedrooms,omitempty"`
	Bathrooms   *int            `json:"bathrooms,omitempty"`
	// Área em metros quadrados.
	Area      *float64    `json:"area,omitempty"`
	Type      ListingType `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Active    bool        `json:"active"`
}

// IsNew indica que o registro ainda não recebeu identificador do store.
func (l *Listing) IsNew() bool {
	return l.ID == uuid.Nil
}

// Touch carimba os timestamps de persistência. CreatedAt só é definido uma vez
// e UpdatedAt sempre avança estritamente, mesmo com relógio de baixa resolução.
func (l *Listing) Touch(now time.Time) {
	now = now.UTC().Truncate(time.Microsecond)

	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
		l.UpdatedAt = now
		return
	}

	if !now.After(l.UpdatedAt) {
		now = l.UpdatedAt.Add(time.Microsecond)
	}
	l.UpdatedAt = now
}
