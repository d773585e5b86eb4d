// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package typename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShorten(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HKQuantityTypeIdentifierStepCount", "StepCount"},
		{"HKQuantityTypeIdentifierHeartRate", "HeartRate"},
		{"HKCategoryTypeIdentifierSleepAnalysis", "SleepAnalysis"},
		{"HKDataTypeIdentifierHeartbeatSeries", "HeartbeatSeries"},
		{"HKTypeIdentifierX", "X"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Shorten(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			_, err = Shorten(got)
			assert.ErrorIs(t, err, ErrUnrecognizedType, "short form no longer carries the prefix")
		})
	}
}

func TestShorten_Unrecognized(t *testing.T) {
	for _, in := range []string{
		"",
		"StepCount",
		"HKQuantityTypeIdentifier",
		"xHKQuantityTypeIdentifierStepCount",
		"HKWorkoutActivityTypeRunning",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := Shorten(in)
			assert.ErrorIs(t, err, ErrUnrecognizedType)
			assert.Contains(t, err.Error(), in)
		})
	}
}
