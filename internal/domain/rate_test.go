package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExchangeRate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		err      error
	}{
		{name: "Four digits kept", input: "13.1151", expected: "13.1151"},
		{name: "Short scale padded", input: "2", expected: "2.0000"},
		{name: "Extra digits kept", input: "0.96615", expected: "0.96615"},
		{name: "Zero", input: "0", err: ErrZeroOrNegativeRate},
		{name: "Negative", input: "-1.5", err: ErrZeroOrNegativeRate},
		{name: "Below four digits", input: "0.00004", expected: "0.00004"},
		{name: "Large", input: "25400", expected: "25400.0000"},
		{name: "Not a number", input: "abc", err: ErrInvalidRateFormat},
		{name: "Empty", input: "", err: ErrInvalidRateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := ParseExchangeRate(tt.input)
			if tt.err != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.err), "expected %v, got %v", tt.err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rate.String())
			assert.True(t, rate.IsValid())
		})
	}
}

func TestExchangeRate_Reciprocal(t *testing.T) {
	tests := []struct {
		rate     string
		expected string
	}{
		{rate: "0.9661", expected: "1.0351"}, // 1.035089...
		{rate: "1.2053", expected: "0.8297"}, // 0.829669...
		{rate: "86.0305", expected: "0.0116"},
		{rate: "8", expected: "0.1250"},
		{rate: "3", expected: "0.3333"},
		{rate: "1.5", expected: "0.6667"}, // 0.66666...
		{rate: "0.0002", expected: "5000.0000"},
	}

	for _, tt := range tests {
		t.Run(tt.rate, func(t *testing.T) {
			rate := MustExchangeRate(tt.rate)
			inverse, err := rate.Reciprocal()
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(inverse.Decimal()),
				"expected %s, got %s", tt.expected, inverse)
		})
	}
}

func TestExchangeRate_ReciprocalOfLargeRate(t *testing.T) {
	tests := []struct {
		rate     string
		expected string
	}{
		{rate: "20000", expected: "0.0001"}, // 0.00005 rounds up
		{rate: "20001", expected: "0.0000"},
		{rate: "25400", expected: "0.0000"},
	}

	for _, tt := range tests {
		t.Run(tt.rate, func(t *testing.T) {
			inverse, err := MustExchangeRate(tt.rate).Reciprocal()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, inverse.String())
		})
	}
}

func TestExchangeRate_ReciprocalOfTinyRate(t *testing.T) {
	inverse, err := MustExchangeRate("0.00004").Reciprocal()
	require.NoError(t, err)
	assert.Equal(t, "25000.0000", inverse.String())
}

func TestExchangeRate_ZeroValueIsInvalid(t *testing.T) {
	var rate ExchangeRate
	assert.False(t, rate.IsValid())

	_, err := rate.Reciprocal()
	assert.True(t, errors.Is(err, ErrZeroOrNegativeRate))
}
