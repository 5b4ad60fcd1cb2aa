package test_seeder

import (
	"context"
	"fmt"

	"propertylisting/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TestSeeder struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) TestSeeder {
	return TestSeeder{pool: pool}
}

// EnsureSchema aplica o schema do serviço no banco de teste.
func (ts TestSeeder) EnsureSchema(ctx context.Context) {
	if err := postgres.EnsureSchema(ctx, ts.pool); err != nil {
		panic(fmt.Sprintf("Seeder.EnsureSchema failed: %v", err))
	}
}

func (ts TestSeeder) TruncateTables(ctx context.Context) {
	tables := []string{
		"listings",
		"credentials",
	}

	for _, table := range tables {
		_, err := ts.pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			panic(fmt.Sprintf("Failed to truncate %s: %v", table, err))
		}
	}
}
