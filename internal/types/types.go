// =============================================================================
// ublkit - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - converter
//   - csvwriter / jsonwriter / xlsxwriter
//   - flatten
//
// =============================================================================

package types

import (
	"time"
)

// =============================================================================
// OUTPUT FORMATS
// =============================================================================

// Output formats accepted by the converters.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ValidFormat reports whether format is one of the supported output formats.
// The comparison is case-sensitive; callers normalize with strings.ToLower first.
func ValidFormat(format string) bool {
	switch format {
	case FormatJSON, FormatCSV, FormatXLSX:
		return true
	}
	return false
}

// =============================================================================
// FLATTENED RECORDS
// =============================================================================

// KeyValuePair is a single entry of a flattened document.
//
// Key holds the path segments from the document root down to the value
// (element names, "@attr" for attributes, "value" for element text).
// Segments are joined with the configured separator only at write time, so
// the same record can be rendered with different separators.
type KeyValuePair struct {
	// Key is the ordered sequence of path segments.
	Key []string

	// Value is the raw text of the leaf. No coercion is applied; CSV output
	// always works on the original string.
	Value string

	// SourceFile is the base name of the originating XML file. It is carried
	// into every CSV/XLSX row so per-file boundaries survive a merge.
	SourceFile string
}

// =============================================================================
// CONVERSION RESULTS
// =============================================================================

// ConversionResult is the outcome of converting a single XML file in memory.
//
// Convert never fails out to the caller: any per-document failure is recorded
// here with Success=false and a descriptive ErrorMessage. The struct is not
// mutated after construction.
type ConversionResult struct {
	// Success indicates whether the conversion completed.
	Success bool `json:"success"`

	// ErrorMessage describes the failure. Empty when Success is true.
	ErrorMessage string `json:"error_message"`

	// ProcessingTime is the wall-clock duration of the parse+flatten+serialize
	// sequence.
	ProcessingTime time.Duration `json:"-"`

	// ProcessingTimeSeconds mirrors ProcessingTime for the JSON summary shape.
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`

	// SourceFile is the path of the input file.
	SourceFile string `json:"source_file"`

	// FileSizeBytes is the size of the input file. Zero on failure.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// UBLDocumentType is the local name of the root element
	// (e.g. "Invoice", "CreditNote", "Order"). Empty on failure.
	UBLDocumentType string `json:"ubl_document_type"`

	// OutputFormat is the requested format: "json", "csv" or "xlsx".
	OutputFormat string `json:"output_format"`

	// Content holds the converted data:
	//   - json: the nested map[string]any document
	//   - csv/xlsx: the ordered []KeyValuePair flattened record
	// Nil on failure.
	Content any `json:"content,omitempty"`
}

// ProcessingResult is the per-file outcome of a batch run. Unlike
// ConversionResult it tracks the written output files instead of carrying the
// converted content in memory.
type ProcessingResult struct {
	// FilePath is the path of the input file.
	FilePath string `json:"file"`

	// Success indicates whether processing completed.
	Success bool `json:"success"`

	// OutputPaths lists every file written for this input (CSV output may
	// split across several shards). Nil on failure or dry run.
	OutputPaths []string `json:"output_paths,omitempty"`

	// ErrorMessage describes the failure. Empty when Success is true.
	ErrorMessage string `json:"error_message,omitempty"`

	// ProcessingTimeSeconds is the wall-clock duration for this file.
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`

	// FileSizeBytes is the size of the input file. Zero on failure.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// UBLDocumentType is the local name of the root element. Empty on failure.
	UBLDocumentType string `json:"ubl_document_type"`
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary aggregates the results of one batch run. It is built
// incrementally by the collector as worker results arrive and finalized when
// all workers complete. Results keep arrival order; no cross-file ordering is
// guaranteed beyond "all results present".
type ProcessingSummary struct {
	// RunID uniquely identifies this batch run.
	RunID string `json:"run_id"`

	// TotalFiles is the number of input files dispatched.
	TotalFiles int `json:"total_files"`

	// Successful is the number of files that converted without error.
	Successful int `json:"successful"`

	// Failed is the number of files whose conversion failed.
	Failed int `json:"failed"`

	// OutputFormat is the format of this run.
	OutputFormat string `json:"output_format"`

	// DryRun indicates the run only inspected inputs and wrote nothing.
	DryRun bool `json:"dry_run,omitempty"`

	// StartTime / EndTime bound the whole batch run.
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// TotalDurationSeconds is EndTime-StartTime, set when the run finishes.
	TotalDurationSeconds float64 `json:"total_duration_seconds"`

	// Results holds one entry per input file, in arrival order.
	Results []ProcessingResult `json:"results"`
}

// Add appends a result and updates the counters.
func (s *ProcessingSummary) Add(result ProcessingResult) {
	s.Results = append(s.Results, result)
	s.TotalFiles++
	if result.Success {
		s.Successful++
	} else {
		s.Failed++
	}
}

// Duration returns the elapsed wall-clock time of the run.
func (s *ProcessingSummary) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
