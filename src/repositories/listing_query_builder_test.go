package repositories

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"

	"github.com/shopspring/decimal"
)

var _ = Describe("buildListingWhere", func() {
	It("returns no clause for an empty filter", func() {
		// ACT
		where, args, err := buildListingWhere(domain.Filter{})

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(where).To(BeEmpty())
		Expect(args).To(BeEmpty())
	})

	It("numbers placeholders in clause order and joins them with AND", func() {
		// ARRANGE
		filter := domain.Filter{Conditions: []domain.Condition{
			{Field: domain.FieldCity, Operator: domain.OpContainsFold, Value: "york"},
			{Field: domain.FieldPrice, Operator: domain.OpGreaterOrEqual, Value: decimal.NewFromInt(100)},
			{Field: domain.FieldPrice, Operator: domain.OpLessOrEqual, Value: decimal.NewFromInt(200)},
			{Field: domain.FieldType, Operator: domain.OpEqual, Value: entities.ListingTypeHouse},
		}}

		// ACT
		where, args, err := buildListingWhere(filter)

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(where).To(Equal("WHERE city ILIKE $1 AND price >= $2 AND price <= $3 AND type = $4"))
		Expect(args).To(HaveLen(4))
		Expect(args[0]).To(Equal("%york%"))
		Expect(args[1]).To(Equal("100"))
		Expect(args[3]).To(Equal("HOUSE"))
	})

	It("escapes LIKE wildcards in the city value", func() {
		// ACT
		_, args, err := buildListingWhere(domain.Filter{Conditions: []domain.Condition{
			{Field: domain.FieldCity, Operator: domain.OpContainsFold, Value: `50%_off\`},
		}})

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(args[0]).To(Equal(`%50\%\_off\\%`))
	})

	It("rejects a field outside the whitelist", func() {
		// ACT
		_, _, err := buildListingWhere(domain.Filter{Conditions: []domain.Condition{
			{Field: domain.FilterField("title; DROP TABLE listings"), Operator: domain.OpEqual, Value: "x"},
		}})

		// ASSERT
		Expect(err).To(HaveOccurred())
	})

	It("rejects a value of the wrong type", func() {
		// ACT
		_, _, err := buildListingWhere(domain.Filter{Conditions: []domain.Condition{
			{Field: domain.FieldPrice, Operator: domain.OpGreaterOrEqual, Value: "cheap"},
		}})

		// ASSERT
		Expect(err).To(HaveOccurred())
	})
})
