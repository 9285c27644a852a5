// Package graph holds the bidirectional exchange rate graph.
package graph

import (
	"github.com/pkg/errors"
	"github.com/vadiminshakov/crossrate/internal/domain"
)

// RateGraph adjacency lists indexed by currency id.
// Every quote is stored twice: the quoted rate forward and its rounded reciprocal backward.
type RateGraph struct {
	adj [][]domain.GraphEdge
}

// Build allocates currencyCount vertices and appends both edges of every record in order.
// Parallel edges are kept; neighbours stay in input order.
func Build(records []domain.QuoteRecord, currencyCount int) (*RateGraph, error) {
	if currencyCount < 0 {
		return nil, errors.Errorf("currency count %d should not be negative", currencyCount)
	}

	g := &RateGraph{adj: make([][]domain.GraphEdge, currencyCount)}
	for i, rec := range records {
		if err := g.add(rec); err != nil {
			return nil, errors.Wrapf(err, "quote %d", i+1)
		}
	}

	return g, nil
}

func (g *RateGraph) add(rec domain.QuoteRecord) error {
	if !rec.Rate.IsValid() {
		return errors.Wrapf(domain.ErrZeroOrNegativeRate, "rate %s", rec.Rate.Decimal().String())
	}
	if !g.contains(rec.From) {
		return errors.Wrapf(domain.ErrUnknownCurrency, "currency id %d", rec.From)
	}
	if !g.contains(rec.To) {
		return errors.Wrapf(domain.ErrUnknownCurrency, "currency id %d", rec.To)
	}

	inverse, err := rec.Rate.Reciprocal()
	if err != nil {
		return errors.Wrapf(err, "reciprocal of %s", rec.Rate)
	}

	g.adj[rec.From] = append(g.adj[rec.From], domain.GraphEdge{Neighbor: rec.To, Rate: rec.Rate})
	g.adj[rec.To] = append(g.adj[rec.To], domain.GraphEdge{Neighbor: rec.From, Rate: inverse})

	return nil
}

func (g *RateGraph) contains(id domain.CurrencyID) bool {
	return id >= 0 && int(id) < len(g.adj)
}

// Neighbors returns the edges leaving id in insertion order.
// The returned slice must not be modified.
func (g *RateGraph) Neighbors(id domain.CurrencyID) []domain.GraphEdge {
	if !g.contains(id) {
		return nil
	}
	return g.adj[id]
}

// Len returns the number of vertices.
func (g *RateGraph) Len() int {
	return len(g.adj)
}
