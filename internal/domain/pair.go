package domain

import "fmt"

// Pair currency pair as quoted in one input line.
type Pair struct {
	// From base currency ticker.
	From Ticker
	// To quote currency ticker.
	To Ticker
}

// String returns the string representation.
func (p Pair) String() string {
	return fmt.Sprintf("%s_%s", p.From, p.To)
}

// Unordered returns the pair with its tickers sorted, so EUR_CHF and CHF_EUR map to the same key.
func (p Pair) Unordered() Pair {
	if p.To < p.From {
		return Pair{From: p.To, To: p.From}
	}
	return p
}

// Pair returns the currency pair of the quote.
func (q Quote) Pair() Pair {
	return Pair{From: q.From, To: q.To}
}
