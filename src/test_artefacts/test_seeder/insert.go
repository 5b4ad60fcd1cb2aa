package test_seeder

import (
	"context"
	"fmt"

	"propertylisting/src/domain/entities"
	"propertylisting/src/infra/postgres"
)

// InsertListing grava o listing exatamente como recebido, timestamps incluídos.
func (ts TestSeeder) InsertListing(ctx context.Context, listing entities.Listing) {
	query := `
		INSERT INTO listings (id, title, description, price, address, city, country, bedrooms, bathrooms, area, type, created_at, updated_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := ts.pool.Exec(ctx, query,
		listing.ID,
		listing.Title,
		listing.Description,
		listing.Price.String(),
		listing.Address,
		listing.City,
		listing.Country,
		postgres.NewNullInt(listing.Bedrooms),
		postgres.NewNullInt(listing.Bathrooms),
		postgres.NewNullFloat(listing.Area),
		string(listing.Type),
		listing.CreatedAt,
		listing.UpdatedAt,
		listing.Active,
	)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertListing failed: %v", err))
	}
}

func (ts TestSeeder) InsertListings(ctx context.Context, listings ...entities.Listing) {
	for _, listing := range listings {
		ts.InsertListing(ctx, listing)
	}
}
