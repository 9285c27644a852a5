package domain

import "fmt"

// Quote one input line: 1 unit of From buys Rate units of To.
type Quote struct {
	From Ticker
	To   Ticker
	Rate ExchangeRate
}

// String returns the quote in input file notation.
func (q Quote) String() string {
	return fmt.Sprintf("%s;%s;%s", q.From, q.To, q.Rate)
}

// QuoteRecord a Quote whose tickers were resolved to currency ids.
type QuoteRecord struct {
	From CurrencyID
	To   CurrencyID
	Rate ExchangeRate
}

// GraphEdge adjacency entry: reaching Neighbor costs multiplying by Rate.
type GraphEdge struct {
	Neighbor CurrencyID
	Rate     ExchangeRate
}
