package listings_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"
	"propertylisting/src/services/listings"
	"propertylisting/src/test_artefacts/memstore"
	"propertylisting/src/test_artefacts/stubs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func idsOf(page *domain.ListingPage) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(page.Items))
	for _, item := range page.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

var _ = Describe("List", func() {
	var (
		ctx            context.Context
		store          *memstore.ListingStore
		listingService *listings.ListingService
		base           time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memstore.NewListingStore()
		listingService = listings.NewListingService(discardLogger, store, nil)
		base = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	})

	Context("when the store is empty", func() {
		It("returns an empty page instead of failing", func() {
			// ACT
			page, err := listingService.List(ctx, domain.ListingQuery{})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
			Expect(page.TotalElements).To(BeZero())
			Expect(page.TotalPages).To(BeZero())
			Expect(page.Page).To(Equal(0))
			Expect(page.PageSize).To(Equal(domain.DefaultPageSize))
		})
	})

	Context("when filtering", func() {
		var newYork, losAngeles, springfield entities.Listing

		BeforeEach(func() {
			newYork = stubs.NewListingStub().WithCity("New York").WithPrice(250000).WithType(entities.ListingTypeApartment).WithCreatedAt(base).Get()
			losAngeles = stubs.NewListingStub().WithCity("Los Angeles").WithPrice(400000).WithType(entities.ListingTypeHouse).WithCreatedAt(base.Add(time.Minute)).Get()
			springfield = stubs.NewListingStub().WithCity("Springfield").WithPrice(150000).WithType(entities.ListingTypeHouse).WithCreatedAt(base.Add(2 * time.Minute)).Get()
			store.Put(newYork, losAngeles, springfield)
		})

		It("matches city as a case-insensitive substring", func() {
			// ACT
			page, err := listingService.List(ctx, domain.ListingQuery{City: ptr("YORK")})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(idsOf(page)).To(Equal([]uuid.UUID{newYork.ID}))
			Expect(page.TotalElements).To(Equal(int64(1)))
		})

		It("applies inclusive price bounds", func() {
			// ACT
			page, err := listingService.List(ctx, domain.ListingQuery{
				MinPrice: ptr(decimal.NewFromInt(250000)),
				MaxPrice: ptr(decimal.NewFromInt(400000)),
			})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(idsOf(page)).To(Equal([]uuid.UUID{newYork.ID, losAngeles.ID}))
		})

		It("returns an empty page when min is greater than max", func() {
			// ACT
			page, err := listingService.List(ctx, domain.ListingQuery{
				MinPrice: ptr(decimal.NewFromInt(400000)),
				MaxPrice: ptr(decimal.NewFromInt(250000)),
			})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
		})

		It("matches the type token ignoring case", func() {
			// ACT
			page, err := listingService.List(ctx, domain.ListingQuery{Type: ptr("house")})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(idsOf(page)).To(Equal([]uuid.UUID{losAngeles.ID, springfield.ID}))
		})

		It("ignores an unknown type token", func() {
			// ACT
			page, err := listingService.List(ctx, domain.ListingQuery{Type: ptr("castle")})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(page.TotalElements).To(Equal(int64(3)))
		})

		It("combines all filters with AND", func() {
			// ACT
			page, err := listingService.List(ctx, domain.ListingQuery{
				City:     ptr("l"),
				MaxPrice: ptr(decimal.NewFromInt(200000)),
				Type:     ptr("HOUSE"),
			})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(idsOf(page)).To(Equal([]uuid.UUID{springfield.ID}))
		})
	})

	Context("when paging", func() {
		var all []entities.Listing

		BeforeEach(func() {
			all = make([]entities.Listing, 0, 25)
			for i := 0; i < 25; i++ {
				listing := stubs.NewListingStub().WithCreatedAt(base.Add(time.Duration(i) * time.Second)).Get()
				all = append(all, listing)
				store.Put(listing)
			}
		})

		It("uses the default page size and reports totals", func() {
			// ACT
			page, err := listingService.List(ctx, domain.ListingQuery{})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(20))
			Expect(page.TotalElements).To(Equal(int64(25)))
			Expect(page.TotalPages).To(Equal(2))
		})

		It("returns disjoint pages in creation order", func() {
			// ACT
			first, err := listingService.List(ctx, domain.ListingQuery{Page: 0, PageSize: 10})
			Expect(err).NotTo(HaveOccurred())
			second, err := listingService.List(ctx, domain.ListingQuery{Page: 1, PageSize: 10})
			Expect(err).NotTo(HaveOccurred())
			third, err := listingService.List(ctx, domain.ListingQuery{Page: 2, PageSize: 10})
			Expect(err).NotTo(HaveOccurred())

			// ASSERT
			collected := append(append(idsOf(first), idsOf(second)...), idsOf(third)...)
			expected := make([]uuid.UUID, 0, len(all))
			for _, l := range all {
				expected = append(expected, l.ID)
			}
			Expect(collected).To(Equal(expected))
			Expect(third.Items).To(HaveLen(5))
		})

		It("returns an empty page past the end", func() {
			// ACT
			page, err := listingService.List(ctx, domain.ListingQuery{Page: 5, PageSize: 10})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
			Expect(page.TotalElements).To(Equal(int64(25)))
		})

		It("returns an empty page for a page number far past the end", func() {
			// ACT
			page, err := listingService.List(ctx, domain.ListingQuery{Page: 100_000_000_000_000_000, PageSize: 100})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
			Expect(page.Page).To(Equal(domain.MaxPage))
			Expect(page.TotalElements).To(Equal(int64(25)))
		})

		DescribeTable("normalizes out-of-range paging",
			func(requestedPage, requestedSize, expectedPage, expectedSize int) {
				// ACT
				page, err := listingService.List(ctx, domain.ListingQuery{Page: requestedPage, PageSize: requestedSize})

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(page.Page).To(Equal(expectedPage))
				Expect(page.PageSize).To(Equal(expectedSize))
			},
			Entry("negative page", -3, 10, 0, 10),
			Entry("zero page size", 0, 0, 0, domain.DefaultPageSize),
			Entry("negative page size", 0, -1, 0, domain.DefaultPageSize),
			Entry("oversized page", 0, 1000, 0, domain.MaxPageSize),
			Entry("page number beyond the cap", 100_000_000_000_000_000, 100, domain.MaxPage, domain.MaxPageSize),
		)
	})

	Context("when the store fails", func() {
		It("propagates the error", func() {
			// ARRANGE
			store.FailWith(errStoreDown)

			// ACT
			_, err := listingService.List(ctx, domain.ListingQuery{})

			// ASSERT
			Expect(err).To(MatchError(errStoreDown))
		})
	})
})
