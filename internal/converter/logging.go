package converter

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vadiminshakov/crossrate/internal/domain"
)

// loggingService decorates a Service with logging.
type loggingService struct {
	logger *zap.Logger
	next   Service
}

// NewLoggingService returns a Service that logs every conversion.
func NewLoggingService(logger *zap.Logger, s Service) Service {
	return &loggingService{
		logger: logger,
		next:   s,
	}
}

func (s *loggingService) Convert(ctx context.Context, quotes []domain.Quote, req domain.ConversionRequest) (conv domain.Conversion, err error) {
	defer func(begin time.Time) {
		fields := []zap.Field{
			zap.String("method", "convert"),
			zap.String("origin", Origin(ctx)),
			zap.String("source", req.Source.String()),
			zap.String("target", req.Target.String()),
			zap.String("notional", req.Notional.String()),
			zap.Int("quotes", len(quotes)),
			zap.Duration("took", time.Since(begin)),
		}
		if err != nil {
			s.logger.Warn("conversion failed", append(fields, zap.Error(err))...)
			return
		}
		s.logger.Info("conversion done", append(fields,
			zap.Int("hops", conv.Hops()),
			zap.String("route", conv.Route()),
			zap.String("amount", conv.Amount.String()),
		)...)
	}(time.Now())

	return s.next.Convert(ctx, quotes, req)
}
