// =============================================================================
// ublkit - XLSX Record Writer
// =============================================================================
//
// Serializes flattened records into an XLSX workbook with a single "Records"
// sheet holding the same three columns as the CSV writer. Values are written
// as string cells, so no preservation transform is needed: native spreadsheet
// cells are not re-interpreted the way CSV imports are.
//
// Output splits across files at the same row threshold and with the same
// _partNNN naming as the CSV writer.
//
// =============================================================================

package xlsxwriter

import (
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sherozshaikh/ublkit/internal/config"
	"github.com/sherozshaikh/ublkit/internal/types"
	"github.com/sherozshaikh/ublkit/pkg/utils"
)

// sheetName is the single worksheet every workbook carries.
const sheetName = "Records"

// Writer serializes flattened records into XLSX workbooks.
type Writer struct {
	separator  string
	maxRecords int
}

// NewWriter creates a Writer. The row threshold and key separator are shared
// with the CSV configuration so both table formats stay interchangeable.
func NewWriter(cfg config.CSVConfig) *Writer {
	return &Writer{
		separator:  cfg.KeySeparator,
		maxRecords: cfg.MaxRecordsPerFile,
	}
}

// Write writes the flattened record to outputPath, splitting into numbered
// workbooks once the row threshold is exceeded. It returns the paths of every
// file created, in order. An empty record creates no files.
func (w *Writer) Write(pairs []types.KeyValuePair, outputPath string) ([]string, error) {
	if len(pairs) == 0 {
		slog.Warn("no data to write to XLSX", "output", outputPath)
		return nil, nil
	}

	numFiles := (len(pairs) + w.maxRecords - 1) / w.maxRecords

	var created []string
	for i := 0; i < numFiles; i++ {
		start := i * w.maxRecords
		end := min(start+w.maxRecords, len(pairs))

		path := outputPath
		if numFiles > 1 {
			path = utils.SplitFilename(outputPath, i+1)
		}
		if err := w.writeFile(path, pairs[start:end]); err != nil {
			return created, err
		}
		created = append(created, path)
	}
	return created, nil
}

// writeFile writes one workbook using the stream writer, which keeps memory
// flat for the 50k-row default threshold.
func (w *Writer) writeFile(path string, pairs []types.KeyValuePair) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}

	if err := sw.SetRow("A1", []any{"Key", "Value", "Filename"}); err != nil {
		return err
	}
	for i, p := range pairs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{strings.Join(p.Key, w.separator), p.Value, p.SourceFile}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	slog.Debug("wrote XLSX shard", "path", path, "rows", len(pairs))
	return nil
}
