// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pdiddy/health-extract/pkg/types"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE HealthData [
<!ELEMENT HealthData (ExportDate,Me,(Record|Workout|ActivitySummary)*)>
<!ATTLIST HealthData locale CDATA #REQUIRED>
]>
<HealthData locale="en_US">
 <ExportDate value="2024-03-01 10:00:00 +0100"/>
 <Me HKCharacteristicTypeIdentifierDateOfBirth="1980-01-01"/>
 <Record type="HKQuantityTypeIdentifierStepCount" sourceName="Phone" unit="count" value="120">
  <MetadataEntry key="HKWasUserEntered" value="1"/>
 </Record>
 <Workout workoutActivityType="HKWorkoutActivityTypeRunning" duration="30.5">
  <WorkoutEvent type="HKWorkoutEventTypePause"/>
 </Workout>
 <ActivitySummary dateComponents="2024-02-29" activeEnergyBurned="410.2"/>
</HealthData>
`

func TestDecode(t *testing.T) {
	got, err := Decode(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := []types.Entry{
		{Tag: "ExportDate", Attrs: []types.Attr{{Name: "value", Value: "2024-03-01 10:00:00 +0100"}}},
		{Tag: "Me", Attrs: []types.Attr{{Name: "HKCharacteristicTypeIdentifierDateOfBirth", Value: "1980-01-01"}}},
		{Tag: "Record", Attrs: []types.Attr{
			{Name: "type", Value: "HKQuantityTypeIdentifierStepCount"},
			{Name: "sourceName", Value: "Phone"},
			{Name: "unit", Value: "count"},
			{Name: "value", Value: "120"},
		}},
		{Tag: "Workout", Attrs: []types.Attr{
			{Name: "workoutActivityType", Value: "HKWorkoutActivityTypeRunning"},
			{Name: "duration", Value: "30.5"},
		}},
		{Tag: "ActivitySummary", Attrs: []types.Attr{
			{Name: "dateComponents", Value: "2024-02-29"},
			{Name: "activeEnergyBurned", Value: "410.2"},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_EmptyRoot(t *testing.T) {
	got, err := Decode(strings.NewReader(`<HealthData/>`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
}

func TestDecode_EntityInAttribute(t *testing.T) {
	got, err := Decode(strings.NewReader(`<HealthData><Record sourceName="Tom &amp; &quot;Jerry&quot;"/></HealthData>`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, _ := got[0].Attr("sourceName")
	if v != `Tom & "Jerry"` {
		t.Errorf("sourceName = %q", v)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"whitespace only", "  \n"},
		{"unclosed root", `<HealthData><Record type="x"/>`},
		{"mismatched tags", `<HealthData><Record></Workout></HealthData>`},
		{"unquoted attribute", `<HealthData><Record type=x/></HealthData>`},
		{"two roots", `<HealthData/><HealthData/>`},
		{"trailing text", `<HealthData/>junk`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("err = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xml")
	if err := os.WriteFile(path, []byte(sampleExport), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("got %d entries, want 5", len(got))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.xml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestLoad_MalformedIncludesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xml")
	if err := os.WriteFile(path, []byte("<HealthData>"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name %s", err, path)
	}
}
