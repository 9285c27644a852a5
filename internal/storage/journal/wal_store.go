// Package journal persists conversion attempts in a write-ahead log.
package journal

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/vadiminshakov/crossrate/internal/domain"
)

const (
	DefaultDir   = "./wal/conversions"
	segmentLimit = 100
	maxSegments  = 10

	entryKeyPrefix = "conversion_"
)

// ErrNotInitialized store was nil or already closed.
var ErrNotInitialized = errors.New("conversion journal is not initialized")

// Entry one conversion attempt, successful or not.
type Entry struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Origin   string    `json:"origin,omitempty"`
	Source   string    `json:"source"`
	Target   string    `json:"target"`
	Notional string    `json:"notional"`
	Exact    string    `json:"exact,omitempty"`
	Amount   string    `json:"amount,omitempty"`
	Hops     int       `json:"hops"`
	Route    string    `json:"route,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Succeeded reports whether the attempt produced an amount.
func (e Entry) Succeeded() bool {
	return e.Error == ""
}

// NewEntry describes the outcome of converting req. conv is ignored when err is not nil.
func NewEntry(origin string, req domain.ConversionRequest, conv domain.Conversion, err error, at time.Time) Entry {
	entry := Entry{
		ID:       uuid.New().String(),
		Time:     at.UTC(),
		Origin:   origin,
		Source:   req.Source.String(),
		Target:   req.Target.String(),
		Notional: req.Notional.String(),
	}

	if err != nil {
		entry.Error = err.Error()
		return entry
	}

	entry.Exact = conv.Exact.String()
	entry.Amount = conv.Amount.String()
	entry.Hops = conv.Hops()
	entry.Route = conv.Route()

	return entry
}

// Record entry together with its WAL index.
type Record struct {
	Index uint64
	Entry Entry
}

// WALStore persists entries in a WAL.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed journal in dir, DefaultDir when empty.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           entryKeyPrefix,
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init conversion WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Save appends entry to the WAL.
func (s *WALStore) Save(entry Entry) error {
	if s == nil || s.wal == nil {
		return ErrNotInitialized
	}
	if entry.ID == "" {
		return errors.New("conversion entry id is required")
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "marshal conversion entry")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, entryKeyPrefix+entry.ID, payload)
}

// EntriesAfter returns all entries written after the provided WAL index.
// Entries in segments already rotated away are skipped.
func (s *WALStore) EntriesAfter(index uint64) ([]Record, error) {
	if s == nil || s.wal == nil {
		return nil, ErrNotInitialized
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	records := make([]Record, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(key, entryKeyPrefix) {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(payload, &entry); err != nil {
			return nil, errors.Wrap(err, "decode conversion entry")
		}
		records = append(records, Record{Index: idx, Entry: entry})
	}

	return records, nil
}

// Last returns up to n most recent entries, oldest first.
func (s *WALStore) Last(n int) ([]Record, error) {
	if n <= 0 {
		return nil, nil
	}

	current := s.CurrentIndex()
	var from uint64
	if current > uint64(n) {
		from = current - uint64(n)
	}

	return s.EntriesAfter(from)
}

// CurrentIndex returns the latest WAL index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return ErrNotInitialized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.wal.Close()
	s.wal = nil
	return err
}
