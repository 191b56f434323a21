package cart

import (
	"github.com/shopspring/decimal"

	"github.com/SifatU360/SwiftCart/internal/domain"
)

// Summary carries the aggregates the presentation layer renders after every
// mutation: the badge count and the cart total. Total is exact; rounding to
// two digits is applied only where it is displayed.
type Summary struct {
	ItemCount int
	Total     decimal.Decimal
}

// Summarize recomputes both aggregates from scratch. No running totals are
// kept anywhere, so repeated mutations cannot drift from a clean
// recomputation.
func Summarize(lines []domain.CartLine) Summary {
	sum := Summary{Total: decimal.Zero}
	for _, l := range lines {
		sum.ItemCount += l.Quantity
		price := decimal.NewFromFloat(l.Price)
		sum.Total = sum.Total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}
