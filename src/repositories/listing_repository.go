package repositories

import (
	"context"
	"fmt"
	"time"

	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"
	"propertylisting/src/infra/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listingColumns = `id, title, description, price, address, city, country, bedrooms, bathrooms, area, type, created_at, updated_at, active`

// ListingRepository lê da pool de leitura e escreve na pool de escrita.
type ListingRepository struct {
	readPool  *pgxpool.Pool
	writePool *pgxpool.Pool
	now       func() time.Time
}

func NewListingRepository(readPool *pgxpool.Pool, writePool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{
		readPool:  readPool,
		writePool: writePool,
		now:       time.Now,
	}
}

func scanListing(row pgx.Row) (entities.Listing, error) {
	var listing entities.Listing
	var listingType string

	err := row.Scan(
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
		return entities.Listing{}, err
	}

	listing.Type = entities.ListingType(listingType)
	listing.CreatedAt = listing.CreatedAt.UTC()
	listing.UpdatedAt = listing.UpdatedAt.UTC()

	return listing, nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	listing, err := scanListing(r.readPool.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("ListingRepository.FindByID - listing (%s): %w", id, domain.ErrListingNotFound)
		}
		return nil, fmt.Errorf("ListingRepository.FindByID - failed to query listing (%s): %w", id, err)
	}

	return &listing, nil
}

// Save insere ou substitui o listing. Registros novos recebem id; created_at
// nunca é reescrito por um upsert.
func (r *ListingRepository) Save(ctx context.Context, listing *entities.Listing) error {
	candidate := *listing
	if candidate.IsNew() {
		candidate.ID = uuid.New()
	}
	candidate.Touch(r.now())

	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			bedrooms = EXCLUDED.bedrooms,
			bathrooms = EXCLUDED.bathrooms,
			area = EXCLUDED.area,
			type = EXCLUDED.type,
			updated_at = EXCLUDED.updated_at,
			active = EXCLUDED.active`

	_, err := r.writePool.Exec(ctx, query,
		candidate.ID,
		candidate.Title,
		candidate.Description,
		candidate.Price.String(),
		candidate.Address,
		candidate.City,
		candidate.Country,
		postgres.NewNullInt(candidate.Bedrooms),
		postgres.NewNullInt(candidate.Bathrooms),
		postgres.NewNullFloat(candidate.Area),
		string(candidate.Type),
		candidate.CreatedAt,
		candidate.UpdatedAt,
		candidate.Active,
	)
	if err != nil {
		return fmt.Errorf("ListingRepository.Save - failed to upsert listing (%s): %w", candidate.ID, err)
	}

	*listing = candidate
	return nil
}

func (r *ListingRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := r.writePool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("ListingRepository.DeleteByID - failed to delete listing (%s): %w", id, err)
	}
	return nil
}

func (r *ListingRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.readPool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM listings WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ListingRepository.ExistsByID - failed to query listing (%s): %w", id, err)
	}
	return exists, nil
}

// FindPage devolve a fatia pedida e o total de registros que satisfazem o filtro,
// ordenados por created_at e id.
func (r *ListingRepository) FindPage(ctx context.Context, filter domain.Filter, page int, pageSize int) ([]entities.Listing, int64, error) {
	where, args, err := buildListingWhere(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("ListingRepository.FindPage - invalid filter: %w", err)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM listings ` + where
	if err := r.readPool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListingRepository.FindPage - failed to count listings: %w", err)
	}

	if total == 0 || int64(page)*int64(pageSize) >= total {
		return []entities.Listing{}, total, nil
	}

	pageQuery := fmt.Sprintf(
		`SELECT %s FROM listings %s ORDER BY created_at ASC, id ASC LIMIT $%d OFFSET $%d`,
		listingColumns, where, len(args)+1, len(args)+2,
	)
	pageArgs := append(append([]interface{}{}, args...), pageSize, page*pageSize)

	rows, err := r.readPool.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("ListingRepository.FindPage - failed to query listings: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Listing, 0, pageSize)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ListingRepository.FindPage - failed to scan listing: %w", err)
		}
		items = append(items, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListingRepository.FindPage - failed iterating listings: %w", err)
	}

	return items, total, nil
}
