package converter

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vadiminshakov/crossrate/internal/domain"
	"github.com/vadiminshakov/crossrate/internal/storage/journal"
)

//go:generate mockery --name journalStore --structname JournalStore --filename JournalStore.go
type journalStore interface {
	Save(entry journal.Entry) error
}

// journalingService records every conversion attempt.
type journalingService struct {
	store  journalStore
	logger *zap.Logger
	now    func() time.Time
	next   Service
}

// NewJournalingService returns a Service that appends each attempt to store.
// A failed journal write is logged and never changes the conversion result.
func NewJournalingService(store journalStore, logger *zap.Logger, s Service) Service {
	return &journalingService{
		store:  store,
		logger: logger,
		now:    time.Now,
		next:   s,
	}
}

func (s *journalingService) Convert(ctx context.Context, quotes []domain.Quote, req domain.ConversionRequest) (domain.Conversion, error) {
	conv, err := s.next.Convert(ctx, quotes, req)

	entry := journal.NewEntry(Origin(ctx), req, conv, err, s.now())
	if saveErr := s.store.Save(entry); saveErr != nil {
		s.logger.Error("failed to journal conversion",
			zap.String("id", entry.ID),
			zap.String("origin", entry.Origin),
			zap.Error(saveErr),
		)
	}

	return conv, err
}
