package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Column names of the raw job-postings export. Other columns are carried
// through untouched and only surface in sampled rows.
const (
	ColStatus      = "status_jobStatus"
	ColCompany     = "postedCompany_name"
	ColCategories  = "categories"
	ColExperience  = "minimumYearsExperience"
	ColSalary      = "average_salary"
	ColPostingDate = "metadata_newPostingDate"
	ColVacancies   = "numberOfVacancies"
)

// ErrSourceUnreadable marks a missing or corrupt raw source. It is fatal to
// the requested operation; per-cell parse failures never raise it.
var ErrSourceUnreadable = errors.New("source unreadable")

// BatchSize is the number of rows pulled per batch. It bounds peak memory
// and is deliberately not configurable.
const BatchSize = 20000

// Batch is one fixed-size window of raw rows sharing a header.
type Batch struct {
	cols map[string]int
	hdr  []string
	Rows [][]string
}

// NewBatch builds an in-memory batch from a header and rows.
func NewBatch(hdr []string, rows [][]string) *Batch {
	cols := make(map[string]int, len(hdr))
	for i, name := range hdr {
		cols[strings.TrimSpace(name)] = i
	}
	return &Batch{cols: cols, hdr: hdr, Rows: rows}
}

func (b *Batch) Len() int { return len(b.Rows) }

// HasColumn reports whether the source carries the named column at all.
func (b *Batch) HasColumn(name string) bool {
	_, ok := b.cols[name]
	return ok
}

// Field returns the cell at (row, col). ok is false only when the column is
// absent from the source; an empty cell returns ("", true), matching the
// missing-value-as-empty-string convention of the aggregators.
func (b *Batch) Field(row int, col string) (string, bool) {
	idx, ok := b.cols[col]
	if !ok {
		return "", false
	}
	r := b.Rows[row]
	if idx >= len(r) {
		return "", true
	}
	return r[idx], true
}

// Record materializes row i as a column->value map. Only sampled rows are
// ever materialized; everything else lives no longer than its batch.
func (b *Batch) Record(i int) map[string]string {
	rec := make(map[string]string, len(b.hdr))
	row := b.Rows[i]
	for j, name := range b.hdr {
		if j < len(row) {
			rec[name] = row[j]
		} else {
			rec[name] = ""
		}
	}
	return rec
}

// Reader streams a delimited source as a finite sequence of batches. It is
// single-use: a fresh pass requires reopening the source.
type Reader struct {
	closers []io.Closer
	csv     *csv.Reader
	cols    map[string]int
	hdr     []string
	done    bool
}

// Open opens the source at path and reads its header. Files ending in .gz
// are decompressed on the fly. Open and header failures wrap
// ErrSourceUnreadable.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}

	var in io.Reader = f
	closers := []io.Closer{f}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
		}
		in = gz
		closers = append(closers, gz)
	}

	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	hdr, err := cr.Read()
	if err != nil {
		for _, c := range closers {
			c.Close()
		}
		return nil, fmt.Errorf("%w: reading header: %v", ErrSourceUnreadable, err)
	}

	cols := make(map[string]int, len(hdr))
	for i, name := range hdr {
		cols[strings.TrimSpace(name)] = i
	}

	return &Reader{
		closers: closers,
		csv:     cr,
		cols:    cols,
		hdr:     hdr,
	}, nil
}

// Next returns the next batch, or io.EOF once the source is exhausted.
// Individual malformed lines are skipped rather than aborting the pass.
func (r *Reader) Next() (*Batch, error) {
	if r.done {
		return nil, io.EOF
	}
	rows := make([][]string, 0, BatchSize)
	for len(rows) < BatchSize {
		row, err := r.csv.Read()
		if err == io.EOF {
			r.done = true
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, io.EOF
	}
	return &Batch{cols: r.cols, hdr: r.hdr, Rows: rows}, nil
}

func (r *Reader) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if e := r.closers[i].Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
