// =============================================================================
// ublkit - Single-File Converter
// =============================================================================
//
// Orchestrates parse -> flatten -> serialize for one input file.
//
// CONTRACT:
//   Convert never fails out to the caller. Every per-document failure
//   (missing file, malformed XML, unreadable content) is caught and reported
//   as Success=false with a descriptive ErrorMessage; the function always
//   returns a well-formed result. Fatal errors - an unsupported output format
//   or invalid configuration - surface from the constructor instead, before
//   any file is touched.
//
// =============================================================================

package converter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sherozshaikh/ublkit/internal/config"
	"github.com/sherozshaikh/ublkit/internal/csvwriter"
	"github.com/sherozshaikh/ublkit/internal/flatten"
	"github.com/sherozshaikh/ublkit/internal/jsonwriter"
	"github.com/sherozshaikh/ublkit/internal/types"
	"github.com/sherozshaikh/ublkit/internal/xlsxwriter"
	"github.com/sherozshaikh/ublkit/internal/xmlparser"
)

// SingleFileConverter converts one XML file at a time, entirely in memory.
// It is safe for concurrent use: all mutable state lives in the per-call
// element tree.
type SingleFileConverter struct {
	cfg    *config.Config
	format string

	jsonw *jsonwriter.Writer
	csvw  *csvwriter.Writer
	xlsxw *xlsxwriter.Writer
}

// NewSingleFile creates a converter for the given output format. A format
// outside {json, csv, xlsx} is a *types.UnsupportedFormatError; this is the
// only error path, and it is fatal for the call. A nil cfg uses the defaults.
func NewSingleFile(cfg *config.Config, format string) (*SingleFileConverter, error) {
	format = strings.ToLower(format)
	if !types.ValidFormat(format) {
		return nil, &types.UnsupportedFormatError{Format: format}
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &SingleFileConverter{
		cfg:    cfg,
		format: format,
		jsonw:  jsonwriter.NewWriter(cfg.JSON),
		csvw:   csvwriter.NewWriter(cfg.CSV),
		xlsxw:  xlsxwriter.NewWriter(cfg.CSV),
	}, nil
}

// Format returns the normalized output format of this converter.
func (c *SingleFileConverter) Format() string { return c.format }

// Convert converts one XML file and returns the result with the converted
// content held in memory. Nothing is written to disk. Wall-clock duration is
// measured around the whole parse+flatten+serialize sequence.
func (c *SingleFileConverter) Convert(path string) (result types.ConversionResult) {
	start := time.Now()
	result = types.ConversionResult{
		SourceFile:   path,
		OutputFormat: c.format,
	}

	defer func() {
		// Unexpected internal failures become the failure variant instead of
		// escaping to the caller.
		if r := recover(); r != nil {
			result.Success = false
			result.Content = nil
			result.ErrorMessage = fmt.Sprintf("internal error: %v", r)
		}
		result.ProcessingTime = time.Since(start)
		result.ProcessingTimeSeconds = result.ProcessingTime.Seconds()
		if !result.Success {
			slog.Error("conversion failed", "file", path, "error", result.ErrorMessage)
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		result.ErrorMessage = (&types.IOError{Op: "read", Path: path, Err: err}).Error()
		return result
	}

	root, encoding, err := xmlparser.ParseFile(path, c.cfg.EncodingPriority())
	if err != nil {
		result.ErrorMessage = err.Error()
		return result
	}
	slog.Debug("parsed XML file", "file", path, "encoding", encoding)

	result.FileSizeBytes = info.Size()
	result.UBLDocumentType = xmlparser.DocumentType(root)

	switch c.format {
	case types.FormatJSON:
		if c.cfg.JSON.Flatten {
			result.Content = flatten.FlatMap(root, c.cfg.JSON.Separator)
		} else {
			result.Content = flatten.ToMap(root)
		}
	case types.FormatCSV, types.FormatXLSX:
		result.Content = flatten.Flatten(root, filepath.Base(path))
	}

	result.Success = true
	return result
}

// WriteOutput persists the content of a successful result to outputPath,
// using the writer matching the converter's format. CSV and XLSX output may
// split across shards; the returned slice lists every file created.
func (c *SingleFileConverter) WriteOutput(result types.ConversionResult, outputPath string) ([]string, error) {
	if !result.Success {
		return nil, fmt.Errorf("cannot write a failed conversion result for %s", result.SourceFile)
	}

	switch c.format {
	case types.FormatJSON:
		if err := c.jsonw.WriteFile(result.Content, outputPath); err != nil {
			return nil, err
		}
		return []string{outputPath}, nil

	case types.FormatCSV:
		pairs, ok := result.Content.([]types.KeyValuePair)
		if !ok {
			return nil, fmt.Errorf("unexpected content type for CSV output")
		}
		return c.csvw.Write(pairs, outputPath)

	case types.FormatXLSX:
		pairs, ok := result.Content.([]types.KeyValuePair)
		if !ok {
			return nil, fmt.Errorf("unexpected content type for XLSX output")
		}
		return c.xlsxw.Write(pairs, outputPath)
	}

	return nil, &types.UnsupportedFormatError{Format: c.format}
}
