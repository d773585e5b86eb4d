// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/health-extract/internal/census"
	"github.com/pdiddy/health-extract/internal/schema"
	"github.com/pdiddy/health-extract/internal/store"
)

// csvExt is the extension of every output file.
const csvExt = ".csv"

// Sink receives the rows of one record kind. Values arrive in the kind's
// schema order.
type Sink interface {
	Write(values []schema.Value) error
	// Rows returns the number of rows written so far.
	Rows() int
	Close() error
}

// csvSink writes one CSV file: the header on creation, then one formatted
// line per row.
type csvSink struct {
	path   string
	f      *os.File
	w      *bufio.Writer
	fields []schema.Field
	line   []byte
	rows   int
	closed bool
}

func createCSV(path string, kind schema.Kind) (*csvSink, error) {
	fields, err := schema.Fields(kind)
	if err != nil {
		return nil, err
	}
	header, err := schema.Header(kind)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	s := &csvSink{path: path, f: f, w: bufio.NewWriter(f), fields: fields}
	if _, err := s.w.WriteString(header + "\n"); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header to %s: %w", path, err)
	}
	return s, nil
}

func (s *csvSink) Write(values []schema.Value) error {
	if len(values) != len(s.fields) {
		return fmt.Errorf("%s: got %d values, want %d", s.path, len(values), len(s.fields))
	}
	s.line = s.line[:0]
	for i, f := range s.fields {
		text, err := schema.Format(values[i], f.Kind)
		if err != nil {
			return fmt.Errorf("%s: field %s: %w", s.path, f.Name, err)
		}
		if i > 0 {
			s.line = append(s.line, ',')
		}
		s.line = append(s.line, text...)
	}
	s.line = append(s.line, '\n')
	if _, err := s.w.Write(s.line); err != nil {
		return fmt.Errorf("writing to %s: %w", s.path, err)
	}
	s.rows++
	return nil
}

func (s *csvSink) Rows() int {
	return s.rows
}

// Close flushes and closes the file. Only the first call has any effect.
func (s *csvSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	flushErr := s.w.Flush()
	closeErr := s.f.Close()
	if err := errors.Join(flushErr, closeErr); err != nil {
		return fmt.Errorf("closing %s: %w", s.path, err)
	}
	return nil
}

// target groups the sinks fed by one discovered kind.
type target struct {
	census.Sink
	fields []schema.Field
	csv    *csvSink
	sinks  []Sink
}

// sinkSet owns every sink opened for a run and guarantees each is closed
// exactly once.
type sinkSet struct {
	byName map[string]*target
	order  []*target
	closed bool
}

func newSinkSet() *sinkSet {
	return &sinkSet{byName: make(map[string]*target)}
}

// open creates the CSV file for s in dir and, when db is non-nil, its
// table as well.
func (ss *sinkSet) open(ctx context.Context, dir string, s census.Sink, db *store.Store) error {
	if err := checkSinkName(s.Name); err != nil {
		return err
	}
	if prev, ok := ss.byName[s.Name]; ok {
		return fmt.Errorf("output name %q used by both %s and %s entries", s.Name, prev.Kind, s.Kind)
	}

	fields, err := schema.Fields(s.Kind)
	if err != nil {
		return err
	}
	t := &target{Sink: s, fields: fields}
	ss.byName[s.Name] = t
	ss.order = append(ss.order, t)

	csv, err := createCSV(filepath.Join(dir, s.Name+csvExt), s.Kind)
	if err != nil {
		return err
	}
	t.csv = csv
	t.sinks = append(t.sinks, csv)

	if db != nil {
		table, err := db.OpenSink(ctx, s.Name, s.Kind)
		if err != nil {
			return err
		}
		t.sinks = append(t.sinks, table)
	}
	return nil
}

// write sends one row to every sink of t.
func (t *target) write(values []schema.Value) error {
	for _, s := range t.sinks {
		if err := s.Write(values); err != nil {
			return err
		}
	}
	return nil
}

// verify checks that every sink of every target received exactly the rows
// the census counted for it.
func (ss *sinkSet) verify(c *census.Census) error {
	for _, t := range ss.order {
		want := c.Rows(t.Sink)
		for _, s := range t.sinks {
			if got := s.Rows(); got != want {
				return fmt.Errorf("output %s: wrote %d rows, counted %d", t.Name, got, want)
			}
		}
	}
	return nil
}

// Close closes every sink, reporting all failures.
func (ss *sinkSet) Close() error {
	if ss.closed {
		return nil
	}
	ss.closed = true
	var errs []error
	for _, t := range ss.order {
		for _, s := range t.sinks {
			if err := s.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func checkSinkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid output name %q", name)
	}
	return nil
}
