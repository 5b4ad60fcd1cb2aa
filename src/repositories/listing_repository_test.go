package repositories_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"
	"propertylisting/src/infra/postgres"
	"propertylisting/src/repositories"
	"propertylisting/src/services/listings"
	"propertylisting/src/test_artefacts/comparer"
	"propertylisting/src/test_artefacts/stubs"
	"propertylisting/src/test_artefacts/test_seeder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var _ = Describe("ListingRepository", func() {
	var (
		ctx               context.Context
		readWriteClient   *postgres.ReadWriteClient
		seeder            test_seeder.TestSeeder
		listingRepository *repositories.ListingRepository
	)

	BeforeEach(func() {
		ctx = context.Background()
		readWriteClient, seeder = connectTestDatabase(ctx)
		listingRepository = repositories.NewListingRepository(readWriteClient.GetReadPool(), readWriteClient.GetWritePool())
	})

	AfterEach(func() {
		if readWriteClient != nil {
			readWriteClient.Close()
		}
	})

	Describe("Save", func() {
		It("assigns an id and timestamps to a new listing", func() {
			// ARRANGE
			listing := stubs.NewListingStub().AsNew().Get()

			// ACT
			err := listingRepository.Save(ctx, &listing)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(listing.ID).NotTo(Equal(uuid.Nil))
			Expect(listing.CreatedAt).To(BeTemporally("==", listing.UpdatedAt))

			stored, err := seeder.SelectListingByID(ctx, listing.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*stored).To(BeComparableTo(listing, comparer.Decimal(), comparer.TimeWithinTolerance(1)))
		})

		It("stores absent optional fields as NULL and reads them back as nil", func() {
			// ARRANGE
			listing := stubs.NewListingStub().AsNew().WithoutOptionals().Get()

			// ACT
			Expect(listingRepository.Save(ctx, &listing)).To(Succeed())
			found, err := listingRepository.FindByID(ctx, listing.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Bedrooms).To(BeNil())
			Expect(found.Bathrooms).To(BeNil())
			Expect(found.Area).To(BeNil())
		})

		It("replaces an existing listing keeping createdAt and advancing updatedAt", func() {
			// ARRANGE
			existing := stubs.NewListingStub().WithCreatedAt(time.Now().Add(-time.Hour)).Get()
			seeder.InsertListing(ctx, existing)

			changed := existing
			changed.Price = decimal.RequireFromString("199999.99")

			// ACT
			err := listingRepository.Save(ctx, &changed)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			stored, err := seeder.SelectListingByID(ctx, existing.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Price.Equal(decimal.RequireFromString("199999.99"))).To(BeTrue())
			Expect(stored.CreatedAt).To(BeTemporally("==", existing.CreatedAt))
			Expect(stored.UpdatedAt).To(BeTemporally(">", existing.UpdatedAt))
		})
	})

	Describe("FindByID", func() {
		It("returns ErrListingNotFound for an unknown id", func() {
			// ACT
			_, err := listingRepository.FindByID(ctx, uuid.New())

			// ASSERT
			Expect(err).To(MatchError(domain.ErrListingNotFound))
		})
	})

	Describe("DeleteByID and ExistsByID", func() {
		It("removes the listing", func() {
			// ARRANGE
			listing := stubs.NewListingStub().Get()
			seeder.InsertListing(ctx, listing)

			// ACT
			existsBefore, err := listingRepository.ExistsByID(ctx, listing.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(listingRepository.DeleteByID(ctx, listing.ID)).To(Succeed())
			existsAfter, err := listingRepository.ExistsByID(ctx, listing.ID)
			Expect(err).NotTo(HaveOccurred())

			// ASSERT
			Expect(existsBefore).To(BeTrue())
			Expect(existsAfter).To(BeFalse())

			count, err := seeder.CountListings(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})

	Describe("FindPage", func() {
		var newYork, losAngeles, springfield entities.Listing

		BeforeEach(func() {
			base := time.Now().Add(-time.Hour)
			newYork = stubs.NewListingStub().WithCity("New York").WithPrice(250000).WithType(entities.ListingTypeApartment).WithCreatedAt(base).Get()
			losAngeles = stubs.NewListingStub().WithCity("Los Angeles").WithPrice(400000).WithType(entities.ListingTypeHouse).WithCreatedAt(base.Add(time.Minute)).Get()
			springfield = stubs.NewListingStub().WithCity("Springfield").WithPrice(150000).WithType(entities.ListingTypeHouse).WithCreatedAt(base.Add(2 * time.Minute)).Get()
			seeder.InsertListings(ctx, newYork, losAngeles, springfield)
		})

		It("applies the same filter semantics as the in-memory evaluation", func() {
			// ARRANGE
			filter := listings.BuildFilter(domain.ListingQuery{
				City:     ptr("l"),
				MaxPrice: ptr(decimal.NewFromInt(400000)),
				Type:     ptr("house"),
			})

			// ACT
			items, total, err := listingRepository.FindPage(ctx, filter, 0, 20)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect(items).To(HaveLen(2))
			Expect(items[0].ID).To(Equal(losAngeles.ID))
			Expect(items[1].ID).To(Equal(springfield.ID))
			for _, item := range items {
				Expect(filter.Matches(item)).To(BeTrue())
			}
		})

		It("pages in creation order", func() {
			// ACT
			first, total, err := listingRepository.FindPage(ctx, domain.Filter{}, 0, 2)
			Expect(err).NotTo(HaveOccurred())
			second, _, err := listingRepository.FindPage(ctx, domain.Filter{}, 1, 2)
			Expect(err).NotTo(HaveOccurred())

			// ASSERT
			Expect(total).To(Equal(int64(3)))
			Expect(first).To(HaveLen(2))
			Expect(first[0].ID).To(Equal(newYork.ID))
			Expect(first[1].ID).To(Equal(losAngeles.ID))
			Expect(second).To(HaveLen(1))
			Expect(second[0].ID).To(Equal(springfield.ID))
		})

		It("matches city substrings literally", func() {
			// ACT
			items, total, err := listingRepository.FindPage(ctx, listings.BuildFilter(domain.ListingQuery{City: ptr("%")}), 0, 20)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(BeZero())
			Expect(items).To(BeEmpty())
		})
	})
})

func ptr[T any](value T) *T {
	return &value
}
