package domain

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ConversionRequest asks to convert Notional units of Source into Target.
type ConversionRequest struct {
	Source   Ticker
	Target   Ticker
	Notional decimal.Decimal
}

// NewConversionRequest validates tickers and the notional.
func NewConversionRequest(source, target string, notional decimal.Decimal) (ConversionRequest, error) {
	src, err := ParseTicker(source)
	if err != nil {
		return ConversionRequest{}, err
	}
	dst, err := ParseTicker(target)
	if err != nil {
		return ConversionRequest{}, err
	}
	if notional.IsNegative() {
		return ConversionRequest{}, errors.Wrapf(ErrNegativeAmount, "amount %s should not be negative", notional.String())
	}

	return ConversionRequest{Source: src, Target: dst, Notional: notional}, nil
}

// String returns the request in input file notation.
func (r ConversionRequest) String() string {
	return fmt.Sprintf("%s;%s;%s", r.Source, r.Notional.String(), r.Target)
}

// Hop one edge traversal from From to To at Rate.
type Hop struct {
	From Ticker
	To   Ticker
	Rate ExchangeRate
}

// Conversion outcome of a successful request.
type Conversion struct {
	Request ConversionRequest
	// Path hops in source to target order. Empty for identity conversions.
	Path []Hop
	// Exact unrounded product of the notional and every rate on the path.
	Exact decimal.Decimal
	// Amount Exact rounded half-up to 0 fractional digits.
	Amount decimal.Decimal
}

// Hops returns the number of edges on the path.
func (c Conversion) Hops() int {
	return len(c.Path)
}

// Route returns the visited tickers, e.g. "EUR>CHF>AUD>JPY".
func (c Conversion) Route() string {
	tickers := make([]string, 0, len(c.Path)+1)
	tickers = append(tickers, c.Request.Source.String())
	for _, hop := range c.Path {
		tickers = append(tickers, hop.To.String())
	}
	return strings.Join(tickers, ">")
}
