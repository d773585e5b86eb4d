// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownValueKind is returned by Format for a ValueKind outside the
// closed set. It indicates a programming error, not bad input data.
var ErrUnknownValueKind = errors.New("unknown value kind")

// ValueKind selects how a field is rendered in CSV.
type ValueKind int

const (
	String ValueKind = iota + 1
	Number
	Timestamp
)

func (v ValueKind) String() string {
	switch v {
	case String:
		return "string"
	case Number:
		return "number"
	case Timestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(v))
	}
}

// Value is one resolved attribute. Valid is false when the attribute was
// absent from the entry.
type Value struct {
	Text  string
	Valid bool
}

// Present returns a valid Value holding s.
func Present(s string) Value {
	return Value{Text: s, Valid: true}
}

// Value implements driver.Valuer; absent attributes become NULL.
func (v Value) Value() (driver.Value, error) {
	if !v.Valid {
		return nil, nil
	}
	return v.Text, nil
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Format renders v as a CSV field of kind vk. Absent values render empty
// for every kind. Strings are double-quoted with backslashes doubled and
// quotes backslash-escaped; numbers and timestamps pass through verbatim.
func Format(v Value, vk ValueKind) (string, error) {
	switch vk {
	case String, Number, Timestamp:
	default:
		return "", fmt.Errorf("formatting value: %w %s", ErrUnknownValueKind, vk)
	}
	if !v.Valid {
		return "", nil
	}
	if vk == String {
		return `"` + stringEscaper.Replace(v.Text) + `"`, nil
	}
	return v.Text, nil
}
