package converter

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vadiminshakov/crossrate/internal/domain"
	"github.com/vadiminshakov/crossrate/internal/metrics"
)

//go:generate mockery --name recorder --structname Recorder --filename Recorder.go
type recorder interface {
	ObserveConversion(outcome string, hops int, took time.Duration)
}

type instrumentingService struct {
	recorder recorder
	next     Service
}

// NewInstrumentingService returns a Service that reports outcome, hops and latency to recorder.
func NewInstrumentingService(recorder recorder, s Service) Service {
	return &instrumentingService{
		recorder: recorder,
		next:     s,
	}
}

func (s *instrumentingService) Convert(ctx context.Context, quotes []domain.Quote, req domain.ConversionRequest) (domain.Conversion, error) {
	begin := time.Now()
	conv, err := s.next.Convert(ctx, quotes, req)
	s.recorder.ObserveConversion(Outcome(err), conv.Hops(), time.Since(begin))
	return conv, err
}

// Outcome classifies a conversion error into a metrics outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrUnreachable):
		return metrics.OutcomeUnreachable
	case IsInvalidInput(err):
		return metrics.OutcomeInvalidInput
	default:
		return metrics.OutcomeError
	}
}

// IsInvalidInput reports whether err was caused by the content of the input rather than the environment.
func IsInvalidInput(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidTickerFormat,
		domain.ErrInvalidRateFormat,
		domain.ErrZeroOrNegativeRate,
		domain.ErrInvalidAmountFormat,
		domain.ErrNegativeAmount,
		domain.ErrMalformedInput,
		domain.ErrQuoteCountMismatch,
		domain.ErrDuplicatePair,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
