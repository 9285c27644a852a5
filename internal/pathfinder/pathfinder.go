// Package pathfinder finds fewest-hop conversion paths with breadth-first search.
package pathfinder

import (
	"github.com/pkg/errors"
	"github.com/vadiminshakov/crossrate/internal/domain"
)

// Graph is the read side of graph.RateGraph.
type Graph interface {
	Neighbors(id domain.CurrencyID) []domain.GraphEdge
	Len() int
}

// visit search scratch state of one currency.
type visit struct {
	visited     bool
	distance    int
	predecessor domain.CurrencyID
	rate        domain.ExchangeRate
}

// Step one edge of a found path.
type Step struct {
	From domain.CurrencyID
	To   domain.CurrencyID
	Rate domain.ExchangeRate
}

// Path result of a successful search.
type Path struct {
	Source domain.CurrencyID
	Target domain.CurrencyID
	// Steps ordered from the edge incident to Target back to the edge incident to Source.
	Steps []Step
}

// Rates returns the rates of Steps in the same target-to-source order.
func (p Path) Rates() []domain.ExchangeRate {
	rates := make([]domain.ExchangeRate, 0, len(p.Steps))
	for _, s := range p.Steps {
		rates = append(rates, s.Rate)
	}
	return rates
}

// Hops returns the number of edges.
func (p Path) Hops() int {
	return len(p.Steps)
}

// Forward returns Steps in source-to-target order.
func (p Path) Forward() []Step {
	steps := make([]Step, len(p.Steps))
	for i, s := range p.Steps {
		steps[len(p.Steps)-1-i] = s
	}
	return steps
}

// Search runs breadth-first search from source and stops as soon as target is discovered.
// Among several fewest-hop paths the first one discovered in adjacency order wins.
// Fails with domain.ErrUnreachable when the frontier empties without reaching target.
func Search(g Graph, source, target domain.CurrencyID) (Path, error) {
	n := g.Len()
	if source < 0 || int(source) >= n {
		return Path{}, errors.Wrapf(domain.ErrUnknownCurrency, "source id %d", source)
	}
	if target < 0 || int(target) >= n {
		return Path{}, errors.Wrapf(domain.ErrUnknownCurrency, "target id %d", target)
	}

	visits := make([]visit, n)
	for i := range visits {
		visits[i].predecessor = domain.NoCurrency
	}
	visits[source].visited = true

	if source == target {
		return Path{Source: source, Target: target}, nil
	}

	queue := []domain.CurrencyID{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		for _, edge := range g.Neighbors(u) {
			v := edge.Neighbor
			if visits[v].visited {
				continue
			}

			visits[v] = visit{
				visited:     true,
				distance:    visits[u].distance + 1,
				predecessor: u,
				rate:        edge.Rate,
			}
			if v == target {
				return reconstruct(visits, source, target), nil
			}
			queue = append(queue, v)
		}
	}

	return Path{}, domain.ErrUnreachable
}

// reconstruct walks predecessors from target until the source, which has none.
func reconstruct(visits []visit, source, target domain.CurrencyID) Path {
	steps := make([]Step, 0, visits[target].distance)
	for cur := target; visits[cur].predecessor != domain.NoCurrency; cur = visits[cur].predecessor {
		steps = append(steps, Step{
			From: visits[cur].predecessor,
			To:   cur,
			Rate: visits[cur].rate,
		})
	}

	return Path{Source: source, Target: target, Steps: steps}
}
