package comparer

import (
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// Decimal compara valores numericamente: "250000" e "250000.00" são iguais.
func Decimal() cmp.Option {
	return cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})
}
