package listings_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"propertylisting/src/domain"
	"propertylisting/src/services/listings"
	"propertylisting/src/test_artefacts/comparer"
	"propertylisting/src/test_artefacts/memstore"
	"propertylisting/src/test_artefacts/stubs"

	"github.com/google/uuid"
)

var _ = Describe("GetByID", func() {
	var (
		ctx            context.Context
		store          *memstore.ListingStore
		listingService *listings.ListingService
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memstore.NewListingStore()
		listingService = listings.NewListingService(discardLogger, store, nil)
	})

	Context("when the listing exists", func() {
		It("returns the full representation", func() {
			// ARRANGE
			listing := stubs.NewListingStub().Get()
			store.Put(listing)
			expected := listings.ToResponse(listing)

			// ACT
			response, err := listingService.GetByID(ctx, listing.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(*response).To(BeComparableTo(expected, comparer.Decimal(), comparer.TimeWithinTolerance(0)))
		})
	})

	Context("when the listing does not exist", func() {
		It("returns ErrListingNotFound", func() {
			// ACT
			response, err := listingService.GetByID(ctx, uuid.New())

			// ASSERT
			Expect(response).To(BeNil())
			Expect(err).To(MatchError(domain.ErrListingNotFound))
		})
	})

	Context("when the store fails", func() {
		It("propagates the error", func() {
			// ARRANGE
			store.FailWith(errStoreDown)

			// ACT
			_, err := listingService.GetByID(ctx, uuid.New())

			// ASSERT
			Expect(err).To(MatchError(errStoreDown))
			Expect(err).NotTo(MatchError(domain.ErrListingNotFound))
		})
	})
})
