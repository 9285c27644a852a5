// Package input reads conversion files:
//
//	EUR;550;JPY
//	6
//	AUD;CHF;0.9661
//	...
//
// Line 1 is the request, line 2 the number of quotes, then one FROM;TO;RATE quote per line.
package input

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/crossrate/internal/domain"
	"github.com/vadiminshakov/crossrate/pkg/retrier"
)

const (
	separator = ";"
	fields    = 3
)

// Document parsed content of one input file.
type Document struct {
	Request domain.ConversionRequest
	// Quotes in file order. The order decides ties between equally short paths.
	Quotes []domain.Quote
}

// Options tune parsing and loading.
type Options struct {
	// RejectDuplicatePairs fails on a pair quoted twice, in either direction.
	RejectDuplicatePairs bool
	// Retrier retries transient read errors. nil means a single attempt.
	Retrier *retrier.Retrier
}

// LineError pins a parse failure to a 1-based line of the file.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying error for github.com/pkg/errors.Cause.
func (e *LineError) Cause() error {
	return e.Err
}

// Load reads and parses the file at path.
func Load(ctx context.Context, path string, opts Options) (*Document, error) {
	r := opts.Retrier
	if r == nil {
		r = retrier.New(retrier.WithMaxRetries(0))
	}

	data, err := retrier.DoWithData(r, ctx, func(context.Context) ([]byte, error) {
		return os.ReadFile(path)
	})
	if err != nil {
		return nil, errors.Wrap(err, "read input file")
	}

	return Parse(bytes.NewReader(data), opts)
}

// IsTransient reports whether a read error may go away on retry.
func IsTransient(err error) bool {
	return !errors.Is(err, os.ErrNotExist) && !errors.Is(err, os.ErrPermission)
}

type line struct {
	number int
	text   string
}

// Parse reads a document from r. Blank lines are ignored and CRLF endings are accepted.
func Parse(r io.Reader, opts Options) (*Document, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, errors.Wrap(domain.ErrMalformedInput, "expected a request line and a quote count")
	}

	req, err := parseRequest(lines[0].text)
	if err != nil {
		return nil, &LineError{Line: lines[0].number, Err: err}
	}

	count, err := strconv.Atoi(lines[1].text)
	if err != nil || count < 0 {
		return nil, &LineError{Line: lines[1].number, Err: errors.Wrapf(domain.ErrMalformedInput, "quote count %q should be a non-negative integer", lines[1].text)}
	}
	quoteLines := lines[2:]
	if count != len(quoteLines) {
		return nil, &LineError{Line: lines[1].number, Err: errors.Wrapf(domain.ErrQuoteCountMismatch, "declared %d, found %d", count, len(quoteLines))}
	}

	quotes := make([]domain.Quote, 0, count)
	seen := make(map[domain.Pair]int, count)
	for _, l := range quoteLines {
		q, err := parseQuote(l.text)
		if err != nil {
			return nil, &LineError{Line: l.number, Err: err}
		}

		if opts.RejectDuplicatePairs {
			key := q.Pair().Unordered()
			if first, ok := seen[key]; ok {
				return nil, &LineError{Line: l.number, Err: errors.Wrapf(domain.ErrDuplicatePair, "%s already quoted on line %d", q.Pair(), first)}
			}
			seen[key] = l.number
		}

		quotes = append(quotes, q)
	}

	return &Document{Request: req, Quotes: quotes}, nil
}

func readLines(r io.Reader) ([]line, error) {
	var lines []line
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		lines = append(lines, line{number: n, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan input")
	}
	return lines, nil
}

func split(text string) ([]string, error) {
	parts := strings.Split(text, separator)
	if len(parts) != fields {
		return nil, errors.Wrapf(domain.ErrMalformedInput, "%q should have %d fields separated by %q", text, fields, separator)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func parseRequest(text string) (domain.ConversionRequest, error) {
	parts, err := split(text)
	if err != nil {
		return domain.ConversionRequest{}, err
	}

	notional, err := decimal.NewFromString(parts[1])
	if err != nil {
		return domain.ConversionRequest{}, errors.Wrapf(domain.ErrInvalidAmountFormat, "amount %q", parts[1])
	}

	return domain.NewConversionRequest(parts[0], parts[2], notional)
}

func parseQuote(text string) (domain.Quote, error) {
	parts, err := split(text)
	if err != nil {
		return domain.Quote{}, err
	}

	from, err := domain.ParseTicker(parts[0])
	if err != nil {
		return domain.Quote{}, err
	}
	to, err := domain.ParseTicker(parts[1])
	if err != nil {
		return domain.Quote{}, err
	}
	rate, err := domain.ParseExchangeRate(parts[2])
	if err != nil {
		return domain.Quote{}, err
	}

	return domain.Quote{From: from, To: to, Rate: rate}, nil
}
