// Package codec maps currency tickers to dense integer ids and back.
package codec

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/crossrate/internal/domain"
)

// runeBits is wide enough for any Unicode code point.
const runeBits = 21

// Key injective numeric form of a valid ticker.
type Key uint64

// Pack folds the three characters of a ticker into one Key.
// Distinct valid tickers always produce distinct keys.
func Pack(ticker string) (Key, error) {
	t, err := domain.ParseTicker(ticker)
	if err != nil {
		return 0, err
	}

	var k Key
	for _, r := range string(t) {
		k = k<<runeBits | Key(r)
	}
	return k, nil
}

// Codec assigns dense ids in first-seen order.
// It is safe for concurrent use.
type Codec struct {
	mu      sync.Mutex
	ids     map[Key]domain.CurrencyID
	tickers []domain.Ticker
}

// New returns an empty codec.
func New() *Codec {
	return &Codec{
		ids: make(map[Key]domain.CurrencyID),
	}
}

// Encode returns the id of ticker, allocating the next dense id on first sight.
func (c *Codec) Encode(ticker string) (domain.CurrencyID, error) {
	k, err := Pack(ticker)
	if err != nil {
		return domain.NoCurrency, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.ids[k]; ok {
		return id, nil
	}

	id := domain.CurrencyID(len(c.tickers))
	c.ids[k] = id
	c.tickers = append(c.tickers, domain.Ticker(ticker))

	return id, nil
}

// Decode returns the ticker of id.
func (c *Codec) Decode(id domain.CurrencyID) (domain.Ticker, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id < 0 || int(id) >= len(c.tickers) {
		return "", errors.Wrapf(domain.ErrUnknownCurrency, "currency id %d", id)
	}
	return c.tickers[id], nil
}

// Len returns the number of distinct tickers encoded so far.
func (c *Codec) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.tickers)
}
