// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultOutputDir is the output directory used when none is configured.
const DefaultOutputDir = "data"

// ExtractionConfig holds settings for one extraction run.
type ExtractionConfig struct {
	// InputPath is the path to the Apple Health export.xml document.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputDir receives one CSV file per discovered record kind (default "data").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// SQLitePath, when set, also loads every row into a SQLite database
	// with one table per record kind.
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`

	// SummaryFile, when set, receives the run summary as YAML or JSON,
	// chosen by file extension.
	SummaryFile string `json:"summary_file,omitempty" yaml:"summary_file,omitempty"`
}

// OutputDirOrDefault returns OutputDir, or DefaultOutputDir when it is empty.
func (c ExtractionConfig) OutputDirOrDefault() string {
	if c.OutputDir == "" {
		return DefaultOutputDir
	}
	return c.OutputDir
}
