// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/health-extract/internal/census"
)

// Output describes one written CSV file.
type Output struct {
	// Name is the Record subtype or singular tag the file holds.
	Name string `json:"name" yaml:"name"`
	// Schema is the tag whose column schema the file uses.
	Schema string `json:"schema" yaml:"schema"`
	Path   string `json:"path" yaml:"path"`
	Rows   int    `json:"rows" yaml:"rows"`
}

// Summary reports the counts gathered during a run. Count lists are in
// descending frequency; ties keep document order.
type Summary struct {
	Input       string         `json:"input" yaml:"input"`
	Entries     int            `json:"entries" yaml:"entries"`
	Tags        []census.Count `json:"tags" yaml:"tags"`
	Fields      []census.Count `json:"fields" yaml:"fields"`
	RecordTypes []census.Count `json:"record_types" yaml:"record_types"`
	OtherTypes  []census.Count `json:"other_types" yaml:"other_types"`
	Unknown     []string       `json:"unknown_tags,omitempty" yaml:"unknown_tags,omitempty"`
	Outputs     []Output       `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Database    string         `json:"database,omitempty" yaml:"database,omitempty"`
}

func newSummary(input string, c *census.Census) *Summary {
	return &Summary{
		Input:       input,
		Entries:     c.Tags.Total(),
		Tags:        c.Tags.MostCommon(),
		Fields:      c.Fields.MostCommon(),
		RecordTypes: c.RecordTypes.MostCommon(),
		OtherTypes:  c.OtherTypes.MostCommon(),
		Unknown:     c.Unknown,
	}
}

// String renders the summary as titled sections of "key: count" lines.
func (s *Summary) String() string {
	var b strings.Builder
	writeCounts(&b, "Tags", s.Tags)
	writeCounts(&b, "Fields", s.Fields)
	writeCounts(&b, "Record Types", s.RecordTypes)
	writeCounts(&b, "Other Types", s.OtherTypes)
	if len(s.Unknown) > 0 {
		b.WriteString("\nUnknown Tags\n")
		for _, tag := range s.Unknown {
			fmt.Fprintln(&b, tag)
		}
	}
	return b.String()
}

func writeCounts(b *strings.Builder, title string, counts []census.Count) {
	fmt.Fprintf(b, "\n%s\n", title)
	for _, kc := range counts {
		fmt.Fprintf(b, "%s: %d\n", kc.Key, kc.Count)
	}
}

// WriteFile writes the summary as JSON when path ends in .json and as YAML
// otherwise.
func (s *Summary) WriteFile(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(s, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing summary %s: %w", path, err)
	}
	return nil
}
