package converter

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/crossrate/internal/domain"
)

func quote(from, to, rate string) domain.Quote {
	return domain.Quote{From: domain.Ticker(from), To: domain.Ticker(to), Rate: domain.MustExchangeRate(rate)}
}

func exampleQuotes() []domain.Quote {
	return []domain.Quote{
		quote("AUD", "CHF", "0.9661"),
		quote("JPY", "KRW", "13.1151"),
		quote("EUR", "CHF", "1.2053"),
		quote("AUD", "JPY", "86.0305"),
		quote("EUR", "USD", "1.2989"),
		quote("JPY", "INR", "0.6571"),
	}
}

func request(t *testing.T, source, target string, notional int64) domain.ConversionRequest {
	t.Helper()
	req, err := domain.NewConversionRequest(source, target, decimal.NewFromInt(notional))
	require.NoError(t, err)
	return req
}

func TestService_ConvertExample(t *testing.T) {
	conv, err := NewService().Convert(context.Background(), exampleQuotes(), request(t, "EUR", "JPY", 550))
	require.NoError(t, err)

	assert.Equal(t, 3, conv.Hops())
	assert.Equal(t, "EUR>CHF>AUD>JPY", conv.Route())
	want := []domain.Hop{
		{From: "EUR", To: "CHF", Rate: domain.MustExchangeRate("1.2053")},
		{From: "CHF", To: "AUD", Rate: domain.MustExchangeRate("1.0351")},
		{From: "AUD", To: "JPY", Rate: domain.MustExchangeRate("86.0305")},
	}
	require.Len(t, conv.Path, len(want))
	for i, hop := range conv.Path {
		assert.Equal(t, want[i].From, hop.From)
		assert.Equal(t, want[i].To, hop.To)
		assert.True(t, want[i].Rate.Equal(hop.Rate), "hop %d rate %s", i, hop.Rate)
	}
	assert.True(t, decimal.RequireFromString("59032.69381015325").Equal(conv.Exact), "got %s", conv.Exact)
	assert.Equal(t, "59033", conv.Amount.String())
}

func TestService_ConvertReverseDirection(t *testing.T) {
	conv, err := NewService().Convert(context.Background(), exampleQuotes(), request(t, "INR", "KRW", 1000))
	require.NoError(t, err)

	// INR->JPY uses 1/0.6571 = 1.5218, then JPY->KRW 13.1151
	assert.Equal(t, "INR>JPY>KRW", conv.Route())
	assert.True(t, decimal.RequireFromString("19958.55918").Equal(conv.Exact), "got %s", conv.Exact)
	assert.Equal(t, "19959", conv.Amount.String())
}

func TestService_ConvertIdentity(t *testing.T) {
	tests := []struct {
		name   string
		quotes []domain.Quote
		ticker string
	}{
		{name: "Known currency", quotes: exampleQuotes(), ticker: "EUR"},
		{name: "Currency absent from quotes", quotes: exampleQuotes(), ticker: "XAU"},
		{name: "No quotes at all", quotes: nil, ticker: "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := NewService().Convert(context.Background(), tt.quotes, request(t, tt.ticker, tt.ticker, 550))
			require.NoError(t, err)
			assert.Zero(t, conv.Hops())
			assert.True(t, decimal.NewFromInt(550).Equal(conv.Exact))
			assert.True(t, decimal.NewFromInt(550).Equal(conv.Amount))
		})
	}
}

func TestService_ConvertUnreachable(t *testing.T) {
	quotes := append(exampleQuotes(), quote("XAU", "XAG", "80.1234"))

	_, err := NewService().Convert(context.Background(), quotes, request(t, "EUR", "XAG", 10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnreachable))

	var unreachable *domain.UnreachableError
	require.True(t, errors.As(err, &unreachable))
	assert.Equal(t, domain.Ticker("EUR"), unreachable.Source)
	assert.Equal(t, domain.Ticker("XAG"), unreachable.Target)

	_, err = NewService().Convert(context.Background(), exampleQuotes(), request(t, "EUR", "GBP", 10))
	assert.True(t, errors.Is(err, domain.ErrUnreachable), "target never quoted")
}

func TestService_InvalidTickerBeforeGraphWork(t *testing.T) {
	// the broken rate on the first quote would fail graph build; ticker validation must win
	quotes := []domain.Quote{
		{From: "EUR", To: "CHF"},
		quote("EURO", "USD", "1.1"),
	}

	_, err := NewService().Convert(context.Background(), quotes, request(t, "EUR", "USD", 10))
	assert.True(t, errors.Is(err, domain.ErrInvalidTickerFormat), "got %v", err)

	_, err = NewService().Convert(context.Background(), exampleQuotes(),
		domain.ConversionRequest{Source: "EU", Target: "JPY", Notional: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, domain.ErrInvalidTickerFormat))
}

func TestService_ZeroRateRejected(t *testing.T) {
	quotes := []domain.Quote{{From: "EUR", To: "CHF"}}

	_, err := NewService().Convert(context.Background(), quotes, request(t, "EUR", "CHF", 10))
	assert.True(t, errors.Is(err, domain.ErrZeroOrNegativeRate), "got %v", err)
}

func TestService_NegativeNotional(t *testing.T) {
	req := domain.ConversionRequest{Source: "EUR", Target: "JPY", Notional: decimal.NewFromInt(-5)}

	_, err := NewService().Convert(context.Background(), exampleQuotes(), req)
	assert.True(t, errors.Is(err, domain.ErrNegativeAmount))
}

func TestService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService().Convert(ctx, exampleQuotes(), request(t, "EUR", "JPY", 550))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_Deterministic(t *testing.T) {
	svc := NewService()
	first, err := svc.Convert(context.Background(), exampleQuotes(), request(t, "KRW", "USD", 1000000))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := svc.Convert(context.Background(), exampleQuotes(), request(t, "KRW", "USD", 1000000))
		require.NoError(t, err)
		assert.Equal(t, first.Route(), again.Route())
		assert.True(t, first.Exact.Equal(again.Exact))
	}
}

func TestService_LargeRateQuote(t *testing.T) {
	quotes := append(exampleQuotes(), quote("USD", "VND", "25400"))

	tests := []struct {
		name   string
		source string
		target string
		amount int64
		route  string
		want   string
	}{
		{name: "Forward over large rate", source: "USD", target: "VND", amount: 10, route: "USD>VND", want: "254000"},
		{name: "Through large rate", source: "EUR", target: "VND", amount: 10, route: "EUR>USD>VND", want: "329921"},
		{name: "Unrelated path unaffected", source: "EUR", target: "JPY", amount: 550, route: "EUR>CHF>AUD>JPY", want: "59033"},
		{name: "Reverse edge rounds to zero", source: "VND", target: "USD", amount: 1000000, route: "VND>USD", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := NewService().Convert(context.Background(), quotes, request(t, tt.source, tt.target, tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.route, conv.Route())
			assert.Equal(t, tt.want, conv.Amount.String())
		})
	}
}
