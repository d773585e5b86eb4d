// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document loads an Apple Health export.xml into the ordered list of
// top-level entries beneath its root element.
package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/health-extract/pkg/types"
)

// ErrMalformed is returned when the input is not a well-formed document with
// a single root element.
var ErrMalformed = errors.New("malformed export document")

// Load reads the export document at path. See Decode.
func Load(path string) ([]types.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	entries, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return entries, nil
}

// Decode parses r and returns the children of the root element in document
// order. Elements nested below a child are consumed but not returned; only
// the child's own attributes are kept. Attribute content is not validated,
// but literal tab, newline and carriage return characters inside attribute
// values are normalized to spaces as XML requires (see normalizeAttrSpace).
func Decode(r io.Reader) ([]types.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return decode(data)
}

func decode(data []byte) ([]types.Entry, error) {
	dec := xml.NewDecoder(bytes.NewReader(normalizeAttrSpace(data)))

	var (
		entries []types.Entry
		depth   int
		hasRoot bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, col := dec.InputPos()
			return nil, fmt.Errorf("%w: line %d, column %d: %v", ErrMalformed, line, col, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				if hasRoot {
					line, _ := dec.InputPos()
					return nil, fmt.Errorf("%w: line %d: second root element <%s>", ErrMalformed, line, t.Name.Local)
				}
				hasRoot = true
			case 2:
				entries = append(entries, entryOf(t))
			}
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				line, _ := dec.InputPos()
				return nil, fmt.Errorf("%w: line %d: text outside root element", ErrMalformed, line)
			}
		}
	}

	if !hasRoot {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}
	return entries, nil
}

func entryOf(se xml.StartElement) types.Entry {
	e := types.Entry{Tag: se.Name.Local}
	if len(se.Attr) > 0 {
		e.Attrs = make([]types.Attr, len(se.Attr))
		for i, a := range se.Attr {
			e.Attrs[i] = types.Attr{Name: a.Name.Local, Value: a.Value}
		}
	}
	return e
}
