// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package census normalizes loaded export entries and counts them by tag,
// attribute key and record kind in a single ordered pass.
package census

import (
	"fmt"

	"github.com/pdiddy/health-extract/internal/schema"
	"github.com/pdiddy/health-extract/internal/typename"
	"github.com/pdiddy/health-extract/pkg/types"
)

// Census holds the counts gathered by Classify. It is read-only once
// Classify returns.
type Census struct {
	// Tags counts every entry by tag.
	Tags Counter
	// Fields counts every attribute key across all entries.
	Fields Counter
	// RecordTypes counts Record entries by their shortened type.
	RecordTypes Counter
	// OtherTypes counts ActivitySummary and Workout entries by tag.
	OtherTypes Counter
	// Unknown lists the distinct unrecognized tags in first-seen order.
	Unknown []string
}

// Normalize returns a copy of entries in which every Record's type
// attribute is shortened. The input slice and its attribute slices are not
// modified. A Record without a type, or with a type that is not a HealthKit
// identifier, is an error naming the entry's position.
func Normalize(entries []types.Entry) ([]types.Entry, error) {
	out := make([]types.Entry, len(entries))
	for i, e := range entries {
		if schema.KindOf(e.Tag) != schema.KindRecord {
			out[i] = e
			continue
		}
		raw, ok := e.Attr(schema.TypeAttr)
		if !ok {
			return nil, fmt.Errorf("entry %d: %s without %s attribute: %w",
				i, e.Tag, schema.TypeAttr, typename.ErrUnrecognizedType)
		}
		short, err := typename.Shorten(raw)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out[i] = e.WithAttr(schema.TypeAttr, short)
	}
	return out, nil
}

// Classify counts normalized entries. Record entries are counted by type,
// ActivitySummary and Workout by tag, metadata tags are ignored, and any
// other tag is noted as unknown. Every entry contributes to the tag and
// attribute-key counters regardless of kind.
func Classify(entries []types.Entry) *Census {
	c := &Census{}
	seenUnknown := make(map[string]bool)

	for _, e := range entries {
		switch schema.KindOf(e.Tag) {
		case schema.KindRecord:
			t, _ := e.Attr(schema.TypeAttr)
			c.RecordTypes.Inc(t)
		case schema.KindActivitySummary, schema.KindWorkout:
			c.OtherTypes.Inc(e.Tag)
		case schema.KindMetadata:
		case schema.KindUnknown:
			if !seenUnknown[e.Tag] {
				seenUnknown[e.Tag] = true
				c.Unknown = append(c.Unknown, e.Tag)
			}
		}

		c.Tags.Inc(e.Tag)
		for _, a := range e.Attrs {
			c.Fields.Inc(a.Name)
		}
	}
	return c
}

// Sink identifies one output destination: its name (a Record subtype or a
// singular tag) and the kind whose schema it uses.
type Sink struct {
	Name string
	Kind schema.Kind
}

// Sinks lists every discovered destination: Record subtypes in first-seen
// order, followed by ActivitySummary and Workout in first-seen order.
// Kinds with zero entries never appear.
func (c *Census) Sinks() []Sink {
	sinks := make([]Sink, 0, c.RecordTypes.Len()+c.OtherTypes.Len())
	for _, t := range c.RecordTypes.Keys() {
		sinks = append(sinks, Sink{Name: t, Kind: schema.KindRecord})
	}
	for _, tag := range c.OtherTypes.Keys() {
		sinks = append(sinks, Sink{Name: tag, Kind: schema.KindOf(tag)})
	}
	return sinks
}

// Rows returns the number of rows expected for the named sink.
func (c *Census) Rows(s Sink) int {
	if s.Kind == schema.KindRecord {
		return c.RecordTypes.Count(s.Name)
	}
	return c.OtherTypes.Count(s.Name)
}

// SinkName returns the destination name for an entry and whether the entry
// produces a row at all.
func SinkName(e types.Entry) (string, schema.Kind, bool) {
	k := schema.KindOf(e.Tag)
	if !k.HasRows() {
		return "", k, false
	}
	if k == schema.KindRecord {
		t, _ := e.Attr(schema.TypeAttr)
		return t, k, true
	}
	return e.Tag, k, true
}
