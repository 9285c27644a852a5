// Package composer multiplies a notional along a conversion path.
package composer

import (
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossrate/internal/domain"
)

// OutputScale fractional digits of a converted amount.
const OutputScale = 0

// Compose returns notional multiplied by every rate, in the given order, without any rounding.
// An empty path returns notional unchanged.
func Compose(notional decimal.Decimal, rates []domain.ExchangeRate) decimal.Decimal {
	product := notional
	for _, r := range rates {
		product = product.Mul(r.Decimal())
	}
	return product
}

// Round rounds an exact product half away from zero to OutputScale digits.
func Round(exact decimal.Decimal) decimal.Decimal {
	return exact.Round(OutputScale)
}

// Convert composes and rounds in one step, returning both values.
func Convert(notional decimal.Decimal, rates []domain.ExchangeRate) (exact, amount decimal.Decimal) {
	exact = Compose(notional, rates)
	return exact, Round(exact)
}
