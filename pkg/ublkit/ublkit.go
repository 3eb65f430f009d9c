// =============================================================================
// ublkit - Public API
// =============================================================================
//
// The two library entry points wrapping the converters:
//
//   ConvertFile  - convert one UBL XML file in memory, nothing written.
//   ConvertBatch - convert a directory with a worker pool, outputs and a
//                  JSON summary written to disk.
//
// Both load the YAML configuration themselves so callers only handle paths.
// Result types are re-exported as aliases so callers never import internal
// packages.
//
// =============================================================================

package ublkit

import (
	"github.com/sherozshaikh/ublkit/internal/config"
	"github.com/sherozshaikh/ublkit/internal/converter"
	"github.com/sherozshaikh/ublkit/internal/types"
)

// Re-exported result types.
type (
	ConversionResult  = types.ConversionResult
	ProcessingResult  = types.ProcessingResult
	ProcessingSummary = types.ProcessingSummary
	KeyValuePair      = types.KeyValuePair
	BatchOptions      = converter.BatchOptions
)

// ConvertFile converts a single UBL XML file to the given format ("json",
// "csv" or "xlsx") entirely in memory; no files are written.
//
// Configuration and format errors are returned directly and are the caller's
// to handle. Every per-document failure is reported inside the result with
// Success=false; ConvertFile never fails for those.
func ConvertFile(xmlPath, outputFormat, configPath string) (ConversionResult, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return ConversionResult{}, err
	}
	conv, err := converter.NewSingleFile(cfg, outputFormat)
	if err != nil {
		return ConversionResult{}, err
	}
	return conv.Convert(xmlPath), nil
}

// ConvertBatch converts every *.xml file in inputDir, writes outputs under
// outputDir plus a JSON summary under output.summary_dir, and returns the
// summary. Per-file failures are recorded in the summary; only configuration
// or directory-level problems produce an error.
func ConvertBatch(inputDir, outputDir, outputFormat, configPath string, opts BatchOptions) (ProcessingSummary, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return ProcessingSummary{}, err
	}
	batch, err := converter.NewBatch(cfg, outputFormat, inputDir, outputDir, opts)
	if err != nil {
		return ProcessingSummary{}, err
	}
	return batch.Convert()
}
