// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package typename shortens HealthKit type identifiers such as
// "HKQuantityTypeIdentifierStepCount" to their short form ("StepCount").
package typename

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUnrecognizedType is returned when a type identifier does not carry the
// HealthKit prefix. Output file names and counter keys derive from the
// short form, so callers treat it as fatal.
var ErrUnrecognizedType = errors.New("unrecognized type identifier")

var prefixRE = regexp.MustCompile(`^HK.*TypeIdentifier(.+)$`)

// Shorten strips the "HK...TypeIdentifier" prefix from name.
func Shorten(name string) (string, error) {
	m := prefixRE.FindStringSubmatch(name)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedType, name)
	}
	return m[1], nil
}
