package test_seeder

import (
	"context"

	"propertylisting/src/domain/entities"

	"github.com/google/uuid"
)

func (ts TestSeeder) CountListings(ctx context.Context) (int64, error) {
	var count int64
	err := ts.pool.QueryRow(ctx, `SELECT COUNT(*) FROM listings`).Scan(&count)
	return count, err
}

func (ts TestSeeder) SelectListingByID(ctx context.Context, id uuid.UUID) (*entities.Listing, error) {
	var listing entities.Listing
	var listingType string

	err := ts.pool.QueryRow(ctx, `
		SELECT id, title, description, price, address, city, country, bedrooms, bathrooms, area, type, created_at, updated_at, active
		FROM listings WHERE id = $1`, id).Scan(
		&listing.ID,
		&listing.Title,
		&listing.Description,
		&listing.Price,
		&listing.Address,
		&listing.City,
		&listing.Country,
		&listing.Bedrooms,
		&listing.Bathrooms,
		&listing.Area,
		&listingType,
		&listing.CreatedAt,
		&listing.UpdatedAt,
		&listing.Active,
	)
	if err != nil {
		return nil, err
	}

	listing.Type = entities.ListingType(listingType)
	return &listing, nil
}

func (ts TestSeeder) SelectCredentialHash(ctx context.Context, email string) (string, error) {
	var hash string
	err := ts.pool.QueryRow(ctx, `SELECT password_hash FROM credentials WHERE email = $1`, email).Scan(&hash)
	return hash, err
}
