package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidTickerFormat ticker is not exactly 3 characters.
	ErrInvalidTickerFormat = errors.New("invalid ticker format")
	// ErrInvalidRateFormat rate text is not a decimal.
	ErrInvalidRateFormat = errors.New("invalid exchange rate format")
	// ErrZeroOrNegativeRate rate is not strictly positive.
	ErrZeroOrNegativeRate = errors.New("exchange rate should be greater than 0")
	// ErrUnreachable target is not connected to source through any chain of quotes.
	ErrUnreachable = errors.New("missing exchange rate pair(s)")
	// ErrUnknownCurrency currency id or ticker was never registered.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrInvalidAmountFormat notional text is not a decimal.
	ErrInvalidAmountFormat = errors.New("invalid amount format")
	// ErrNegativeAmount notional is below zero.
	ErrNegativeAmount = errors.New("amount should not be negative")
	// ErrMalformedInput input does not follow the line layout.
	ErrMalformedInput = errors.New("malformed input")
	// ErrQuoteCountMismatch declared quote count differs from the number of quote lines.
	ErrQuoteCountMismatch = errors.New("number of expected pairs does not match provided pairs")
	// ErrDuplicatePair a currency pair is quoted more than once.
	ErrDuplicatePair = errors.New("duplicate exchange rate pair")
)

// UnreachableError reports a request whose target cannot be reached from its source.
type UnreachableError struct {
	Source Ticker
	Target Ticker
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("impossible to convert %s to %s: %s", e.Source, e.Target, ErrUnreachable)
}

// Is makes errors.Is(err, ErrUnreachable) hold.
func (e *UnreachableError) Is(target error) bool {
	return target == ErrUnreachable
}
