// Package converter orchestrates a conversion: codec, graph, path search and composition.
package converter

import (
	"context"

	"github.com/pkg/errors"

	"github.com/vadiminshakov/crossrate/internal/codec"
	"github.com/vadiminshakov/crossrate/internal/composer"
	"github.com/vadiminshakov/crossrate/internal/domain"
	"github.com/vadiminshakov/crossrate/internal/graph"
	"github.com/vadiminshakov/crossrate/internal/pathfinder"
)

// Service converts a notional through a network of quotes.
type Service interface {
	Convert(ctx context.Context, quotes []domain.Quote, req domain.ConversionRequest) (domain.Conversion, error)
}

type service struct{}

// NewService returns the conversion pipeline.
// Every call builds its own codec and graph, so one Service may serve concurrent callers.
func NewService() Service {
	return &service{}
}

// Convert runs codec -> graph build -> search -> compose. Any failure aborts the whole conversion.
func (s *service) Convert(ctx context.Context, quotes []domain.Quote, req domain.ConversionRequest) (domain.Conversion, error) {
	if err := ctx.Err(); err != nil {
		return domain.Conversion{}, err
	}
	if req.Notional.IsNegative() {
		return domain.Conversion{}, errors.Wrapf(domain.ErrNegativeAmount, "amount %s", req.Notional.String())
	}

	c := codec.New()
	source, err := c.Encode(req.Source.String())
	if err != nil {
		return domain.Conversion{}, errors.Wrap(err, "source currency")
	}
	target, err := c.Encode(req.Target.String())
	if err != nil {
		return domain.Conversion{}, errors.Wrap(err, "target currency")
	}

	records, err := encodeQuotes(c, quotes)
	if err != nil {
		return domain.Conversion{}, err
	}

	if err := ctx.Err(); err != nil {
		return domain.Conversion{}, err
	}

	g, err := graph.Build(records, c.Len())
	if err != nil {
		return domain.Conversion{}, errors.Wrap(err, "build rate graph")
	}

	if err := ctx.Err(); err != nil {
		return domain.Conversion{}, err
	}

	path, err := pathfinder.Search(g, source, target)
	if err != nil {
		if errors.Is(err, domain.ErrUnreachable) {
			return domain.Conversion{}, &domain.UnreachableError{Source: req.Source, Target: req.Target}
		}
		return domain.Conversion{}, errors.Wrap(err, "search conversion path")
	}

	hops, err := decodePath(c, path)
	if err != nil {
		return domain.Conversion{}, err
	}

	exact, amount := composer.Convert(req.Notional, path.Rates())

	return domain.Conversion{
		Request: req,
		Path:    hops,
		Exact:   exact,
		Amount:  amount,
	}, nil
}

// encodeQuotes resolves tickers to ids; every ticker is validated before any graph work.
func encodeQuotes(c *codec.Codec, quotes []domain.Quote) ([]domain.QuoteRecord, error) {
	records := make([]domain.QuoteRecord, 0, len(quotes))
	for i, q := range quotes {
		from, err := c.Encode(q.From.String())
		if err != nil {
			return nil, errors.Wrapf(err, "quote %d", i+1)
		}
		to, err := c.Encode(q.To.String())
		if err != nil {
			return nil, errors.Wrapf(err, "quote %d", i+1)
		}
		records = append(records, domain.QuoteRecord{From: from, To: to, Rate: q.Rate})
	}
	return records, nil
}

func decodePath(c *codec.Codec, path pathfinder.Path) ([]domain.Hop, error) {
	steps := path.Forward()
	hops := make([]domain.Hop, 0, len(steps))
	for _, step := range steps {
		from, err := c.Decode(step.From)
		if err != nil {
			return nil, errors.Wrap(err, "decode path")
		}
		to, err := c.Decode(step.To)
		if err != nil {
			return nil, errors.Wrap(err, "decode path")
		}
		hops = append(hops, domain.Hop{From: from, To: to, Rate: step.Rate})
	}
	return hops, nil
}
