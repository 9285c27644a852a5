package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// RateScale number of fractional digits of a derived reciprocal rate.
const RateScale = 4

var one = decimal.NewFromInt(1)

// ExchangeRate decimal conversion factor.
// Quoted rates are kept exactly as given and are strictly positive.
// Reciprocals carry RateScale digits and may round down to 0.
// The zero value is not a valid rate.
type ExchangeRate struct {
	value decimal.Decimal
}

// NewExchangeRate checks that a quoted rate is strictly positive.
func NewExchangeRate(d decimal.Decimal) (ExchangeRate, error) {
	if !d.IsPositive() {
		return ExchangeRate{}, errors.Wrapf(ErrZeroOrNegativeRate, "exchange rate %s should be greater than 0", d.String())
	}

	return ExchangeRate{value: d}, nil
}

// ParseExchangeRate parses decimal text into an ExchangeRate.
func ParseExchangeRate(s string) (ExchangeRate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ExchangeRate{}, errors.Wrapf(ErrInvalidRateFormat, "exchange rate %q is not a decimal", s)
	}

	return NewExchangeRate(d)
}

// MustExchangeRate is like ParseExchangeRate but panics on error. Intended for literals.
func MustExchangeRate(s string) ExchangeRate {
	r, err := ParseExchangeRate(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Decimal returns the underlying decimal value.
func (r ExchangeRate) Decimal() decimal.Decimal {
	return r.value
}

// IsValid reports whether the rate is strictly positive.
func (r ExchangeRate) IsValid() bool {
	return r.value.IsPositive()
}

// Reciprocal returns 1/r rounded half-up to RateScale digits.
// Rates above 20000 have a reciprocal of 0.0000; it is returned as is.
func (r ExchangeRate) Reciprocal() (ExchangeRate, error) {
	if !r.IsValid() {
		return ExchangeRate{}, errors.Wrap(ErrZeroOrNegativeRate, "reciprocal of a non-positive rate")
	}

	return ExchangeRate{value: one.DivRound(r.value, RateScale)}, nil
}

// Equal compares two rates by value.
func (r ExchangeRate) Equal(other ExchangeRate) bool {
	return r.value.Equal(other.value)
}

// String returns the rate with at least RateScale fractional digits.
func (r ExchangeRate) String() string {
	if -r.value.Exponent() > RateScale {
		return r.value.String()
	}
	return r.value.StringFixed(RateScale)
}
