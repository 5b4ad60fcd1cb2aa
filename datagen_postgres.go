//go:build datagen_postgres
// +build datagen_postgres

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"propertylisting/src/domain/entities"
	"propertylisting/src/helper/env"
	"propertylisting/src/infra/postgres"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var listingCopyColumns = []string{
	"id", "title", "description", "price", "address", "city", "country",
	"bedrooms", "bathrooms", "area", "type", "created_at", "updated_at", "active",
}

// Faixas de preço por tipo, em unidades inteiras
var priceRanges = map[entities.ListingType][2]int64{
	entities.ListingTypeApartment:  {80_000, 900_000},
	entities.ListingTypeHouse:      {150_000, 2_000_000},
	entities.ListingTypeVilla:      {600_000, 8_000_000},
	entities.ListingTypeLand:       {20_000, 500_000},
	entities.ListingTypeCommercial: {200_000, 5_000_000},
	entities.ListingTypeOther:      {10_000, 300_000},
}

func newSQLClient() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_WRITE_HOST")
	dbPort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := 32
	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

func main() {
	numListings := flag.Int("listings", 10000, "Número de listings a serem criados. Use -1 para infinito.")
	bulkSize := flag.Int("bulk-size", 1000, "Listings por COPY")
	numConsumers := flag.Int("consumers", 4, "Número de writers concorrentes")
	flag.Parse()

	if err := env.Load(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := newSQLClient()
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	dataChan := make(chan entities.Listing, (*bulkSize)*(*numConsumers))

	var wg sync.WaitGroup
	var totalProcessed, totalErrors int64
	startTime := time.Now()

	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				processed := atomic.LoadInt64(&totalProcessed)
				elapsed := time.Since(startTime)
				fmt.Printf("📊 Processed: %d | Errors: %d | Rate: %.1f/s | Elapsed: %v\n",
					processed, atomic.LoadInt64(&totalErrors), float64(processed)/elapsed.Seconds(), elapsed.Round(time.Second))
			}
		}
	}()

	for i := 0; i < *numConsumers; i++ {
		wg.Add(1)
		go copyConsumer(ctx, &wg, db, dataChan, *bulkSize, i+1, &totalProcessed, &totalErrors)
	}

	wg.Add(1)
	go producer(ctx, &wg, dataChan, *numListings)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n🛑 Shutdown signal received, stopping...")
		cancel()
	}()

	wg.Wait()

	elapsed := time.Since(startTime)
	processed := atomic.LoadInt64(&totalProcessed)

	fmt.Printf("\n🏁 Seeding finished!\n")
	fmt.Printf("📊 Total processed: %d\n", processed)
	fmt.Printf("❌ Total errors: %d\n", atomic.LoadInt64(&totalErrors))
	fmt.Printf("⏱️  Total time: %v\n", elapsed.Round(time.Second))
	fmt.Printf("🚀 Average rate: %.1f records/s\n", float64(processed)/elapsed.Seconds())
}

func producer(ctx context.Context, wg *sync.WaitGroup, dataChan chan<- entities.Listing, numListings int) {
	defer wg.Done()
	defer close(dataChan)

	isInfinite := numListings == -1
	// created_at espalhado no último ano para que a paginação tenha ordem interessante
	base := time.Now().UTC().AddDate(-1, 0, 0)

	for count := 0; isInfinite || count < numListings; count++ {
		listing := generateFakeListing(base)

		select {
		case dataChan <- listing:
		case <-ctx.Done():
			fmt.Println("Producer stopping.")
			return
		}
	}
}

func copyConsumer(ctx context.Context, wg *sync.WaitGroup, db *pgxpool.Pool, dataChan <-chan entities.Listing, bulkSize, consumerID int, totalProcessed, totalErrors *int64) {
	defer wg.Done()

	batch := make([]entities.Listing, 0, bulkSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := copyListings(ctx, db, batch); err != nil {
			log.Printf("Consumer %d failed to copy %d listings: %v", consumerID, len(batch), err)
			atomic.AddInt64(totalErrors, int64(len(batch)))
		} else {
			atomic.AddInt64(totalProcessed, int64(len(batch)))
		}
		batch = batch[:0]
	}

	for listing := range dataChan {
		batch = append(batch, listing)
		if len(batch) >= bulkSize {
			flush()
		}
	}
	flush()
}

func copyListings(ctx context.Context, db *pgxpool.Pool, listings []entities.Listing) error {
	rows := make([][]any, 0, len(listings))
	for _, l := range listings {
		// COPY usa o formato binário; numeric precisa ir como pgtype.Numeric
		price := pgtype.Numeric{Int: l.Price.Coefficient(), Exp: l.Price.Exponent(), Valid: true}
		rows = append(rows, []any{
			l.ID, l.Title, l.Description, price, l.Address, l.City, l.Country,
			l.Bedrooms, l.Bathrooms, l.Area, string(l.Type), l.CreatedAt, l.UpdatedAt, l.Active,
		})
	}

	_, err := db.CopyFrom(ctx, pgx.Identifier{"listings"}, listingCopyColumns, pgx.CopyFromRows(rows))
	return err
}

func generateFakeListing(base time.Time) entities.Listing {
	listingType := entities.ListingTypes[rand.Intn(len(entities.ListingTypes))]
	address := faker.GetRealAddress()
	priceRange := priceRanges[listingType]

	createdAt := base.Add(time.Duration(rand.Int63n(int64(365 * 24 * time.Hour)))).Truncate(time.Microsecond)
	updatedAt := createdAt
	if rand.Intn(4) == 0 {
		updatedAt = createdAt.Add(time.Duration(rand.Int63n(int64(30*24*time.Hour))) + time.Microsecond).Truncate(time.Microsecond)
	}

	listing := entities.Listing{
		ID:          uuid.New(),
		Title:       fmt.Sprintf("%s in %s", titleFor(listingType), address.City),
		Description: faker.Paragraph(),
		Price:       decimal.NewFromInt(priceRange[0] + rand.Int63n(priceRange[1]-priceRange[0])).Round(-3),
		Address:     address.Address,
		City:        address.City,
		Country:     "USA",
		Type:        listingType,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		Active:      true,
	}

	if listingType != entities.ListingTypeLand {
		bedrooms := 1 + rand.Intn(6)
		bathrooms := 1 + rand.Intn(4)
		listing.Bedrooms = &bedrooms
		listing.Bathrooms = &bathrooms
	}

	area := float64(30+rand.Intn(970)) + float64(rand.Intn(100))/100
	listing.Area = &area

	return listing
}

func titleFor(t entities.ListingType) string {
	switch t {
	case entities.ListingTypeApartment:
		return "Bright apartment"
	case entities.ListingTypeHouse:
		return "Family house"
	case entities.ListingTypeVilla:
		return "Luxury villa"
	case entities.ListingTypeLand:
		return "Building plot"
	case entities.ListingTypeCommercial:
		return "Commercial space"
	default:
		return "Property"
	}
}
