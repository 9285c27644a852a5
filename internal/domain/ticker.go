// Package domain defines the core value types of the currency converter.
package domain

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// TickerLength is the number of characters in a currency ticker.
const TickerLength = 3

// Ticker 3-character currency code, e.g. EUR.
type Ticker string

// ParseTicker validates s as a currency ticker.
// Tickers are case-sensitive: "eur" and "EUR" are different currencies.
func ParseTicker(s string) (Ticker, error) {
	if !utf8.ValidString(s) {
		return "", errors.Wrapf(ErrInvalidTickerFormat, "ticker %q is not valid UTF-8", s)
	}
	if utf8.RuneCountInString(s) != TickerLength {
		return "", errors.Wrapf(ErrInvalidTickerFormat, "ticker %q should have exactly %d characters", s, TickerLength)
	}

	return Ticker(s), nil
}

// String returns the ticker text.
func (t Ticker) String() string {
	return string(t)
}

// CurrencyID dense zero-based currency identifier assigned in first-seen order.
type CurrencyID int

// NoCurrency marks the absence of a currency, e.g. the predecessor of a search source.
const NoCurrency CurrencyID = -1
