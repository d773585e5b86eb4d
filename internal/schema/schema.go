// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema defines the closed set of record kinds found in an Apple
// Health export, the ordered column schema of each kind that produces rows,
// and the CSV formatting rule for each value kind.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSchema is returned when a schema is requested for a kind that does
// not produce rows.
var ErrNoSchema = errors.New("no schema for kind")

// Kind classifies a top-level export entry by its tag.
type Kind int

const (
	KindUnknown Kind = iota
	// KindRecord entries subdivide by their type attribute; each subtype
	// gets its own output file but all share one schema.
	KindRecord
	KindActivitySummary
	KindWorkout
	// KindMetadata covers container tags that carry no row data.
	KindMetadata
)

// Tag names as they appear in export.xml.
const (
	TagRecord          = "Record"
	TagActivitySummary = "ActivitySummary"
	TagWorkout         = "Workout"
	TagExportDate      = "ExportDate"
	TagMe              = "Me"
)

// TypeAttr is the Record attribute that carries the subtype identifier.
const TypeAttr = "type"

// KindOf maps an element tag to its Kind.
func KindOf(tag string) Kind {
	switch tag {
	case TagRecord:
		return KindRecord
	case TagActivitySummary:
		return KindActivitySummary
	case TagWorkout:
		return KindWorkout
	case TagExportDate, TagMe:
		return KindMetadata
	default:
		return KindUnknown
	}
}

func (k Kind) String() string {
	switch k {
	case KindRecord:
		return TagRecord
	case KindActivitySummary:
		return TagActivitySummary
	case KindWorkout:
		return TagWorkout
	case KindMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

// HasRows reports whether entries of kind k are written to a sink.
func (k Kind) HasRows() bool {
	for _, r := range RowKinds() {
		if k == r {
			return true
		}
	}
	return false
}

// Field describes one output column.
type Field struct {
	Name string
	Kind ValueKind
}

var recordFields = []Field{
	{"sourceName", String},
	{"sourceVersion", String},
	{"device", String},
	{"type", String},
	{"unit", String},
	{"creationDate", Timestamp},
	{"startDate", Timestamp},
	{"endDate", Timestamp},
	{"value", Number},
}

var activitySummaryFields = []Field{
	{"dateComponents", Timestamp},
	{"activeEnergyBurned", Number},
	{"activeEnergyBurnedGoal", Number},
	{"activeEnergyBurnedUnit", String},
	{"appleExerciseTime", String},
	{"appleExerciseTimeGoal", String},
	{"appleStandHours", Number},
	{"appleStandHoursGoal", Number},
}

var workoutFields = []Field{
	{"sourceName", String},
	{"sourceVersion", String},
	{"device", String},
	{"creationDate", Timestamp},
	{"startDate", Timestamp},
	{"endDate", Timestamp},
	{"workoutActivityType", String},
	{"duration", Number},
	{"durationUnit", String},
	{"totalDistance", Number},
	{"totalDistanceUnit", String},
	{"totalEnergyBurned", Number},
	{"totalEnergyBurnedUnit", String},
}

// RowKinds lists the kinds that produce output rows, in registry order.
func RowKinds() []Kind {
	return []Kind{KindRecord, KindActivitySummary, KindWorkout}
}

// Fields returns a copy of the ordered column schema for k.
func Fields(k Kind) ([]Field, error) {
	var fields []Field
	switch k {
	case KindRecord:
		fields = recordFields
	case KindActivitySummary:
		fields = activitySummaryFields
	case KindWorkout:
		fields = workoutFields
	default:
		return nil, fmt.Errorf("%w %s", ErrNoSchema, k)
	}
	return append([]Field(nil), fields...), nil
}

// Header returns the comma-joined column names for k.
func Header(k Kind) (string, error) {
	fields, err := Fields(k)
	if err != nil {
		return "", err
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return strings.Join(names, ","), nil
}
