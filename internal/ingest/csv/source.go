package csv

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/ingest"
	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source streams transactions from a CSV document whose header names the
// type, client, tx and (optionally) amount columns, in any order. Rows are read one at a time.
type Source struct {
	reader  *csv.Reader
	closer  io.Closer
	started bool
	columns columns
	record  int // 1-based index of the last data row returned
}

// columns holds the position of each header field; amount is -1 when the column is absent.
type columns struct {
	kind, client, tx, amount int
}

// field returns fields[i], or "" when the row is too short to reach it.
func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

// NewSource wraps r. The caller keeps ownership of r unless it is also an io.Closer,
// in which case Close closes it.
func NewSource(r io.Reader) *Source {
	buffered := bufio.NewReader(r)
	// A leading UTF-8 byte order mark is not part of the first header name.
	if bom, err := buffered.Peek(len(utf8BOM)); err == nil && bytes.Equal(bom, utf8BOM) {
		_, _ = buffered.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1 // amount column is optional on dispute rows
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	s := &Source{reader: reader}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Open opens the CSV file at path.
func Open(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", path, err)
	}
	return NewSource(file), nil
}

func (s *Source) Next(ctx context.Context) (models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return models.Transaction{}, err
	}

	if !s.started {
		s.started = true
		if err := s.readHeader(); err != nil {
			return models.Transaction{}, err
		}
	}

	fields, err := s.reader.Read()
	if errors.Is(err, io.EOF) {
		return models.Transaction{}, io.EOF
	}
	s.record++
	if err != nil {
		return models.Transaction{}, fmt.Errorf("error reading CSV at record %d: %w", s.record, err)
	}

	if len(fields) > s.columns.width() {
		return models.Transaction{}, fmt.Errorf("error parsing record %d: %w: wrong number of fields in row: %d",
			s.record, ingest.ErrMalformedRecord, len(fields))
	}
	tx, err := ingest.ParseRecord(
		field(fields, s.columns.kind),
		field(fields, s.columns.client),
		field(fields, s.columns.tx),
		field(fields, s.columns.amount),
	)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("error parsing record %d: %w", s.record, err)
	}
	return tx, nil
}

func (s *Source) readHeader() error {
	header, err := s.reader.Read()
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	if err != nil {
		return fmt.Errorf("error reading CSV header: %w", err)
	}

	cols := columns{kind: -1, client: -1, tx: -1, amount: -1}
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))

		var slot *int
		switch name {
		case ingest.Header[0]:
			slot = &cols.kind
		case ingest.Header[1]:
			slot = &cols.client
		case ingest.Header[2]:
			slot = &cols.tx
		case ingest.Header[3]:
			slot = &cols.amount
		default:
			return fmt.Errorf("%w: unexpected CSV header column %q", ingest.ErrMalformedRecord, col)
		}
		if *slot != -1 {
			return fmt.Errorf("%w: duplicate CSV header column %q", ingest.ErrMalformedRecord, col)
		}
		*slot = i
	}

	if cols.kind == -1 || cols.client == -1 || cols.tx == -1 {
		return fmt.Errorf("%w: CSV header %v must name type, client and tx", ingest.ErrMalformedRecord, header)
	}
	s.columns = cols
	return nil
}

// width is the number of columns the header declared.
func (c columns) width() int {
	n := 0
	for _, i := range []int{c.kind, c.client, c.tx, c.amount} {
		if i+1 > n {
			n = i + 1
		}
	}
	return n
}

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

var _ interfaces.TransactionSource = (*Source)(nil)
