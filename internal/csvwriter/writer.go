// =============================================================================
// ublkit - CSV Record Writer
// =============================================================================
//
// This module serializes flattened records into CSV rows and splits the
// output across size-bounded files.
//
// Each row has three columns: the joined key path, the (preserved) value and
// the originating source filename. The filename column lets per-file
// boundaries be reconstructed from a merged CSV.
//
// PRESERVATION:
//   Spreadsheet applications mangle values that look like numbers or dates
//   ("0012" -> 12, "1/2" -> Jan 2). The preservation method applies exactly
//   one transform per value before it is written:
//     none       - pass-through (the default)
//     apostrophe - prepend a single quote (append-only, not reversible)
//     quotes     - wrap in double quotes (reversible: strip the wrapper)
//     brackets   - wrap in [ ] (reversible: strip the wrapper)
//   The wrappers are plain: no inner escaping, so stripping them recovers the
//   original text exactly. CSV-level quoting stays encoding/csv's job.
//
// SPLITTING:
//   ceil(R/N) output files for R rows and a threshold of N. A single shard
//   keeps the base name; multiple shards are named <stem>_partNNN<ext>.
//   Rows are atomic and keep their order across consecutive shards.
//
// =============================================================================

package csvwriter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"strings"

	"github.com/sherozshaikh/ublkit/internal/config"
	"github.com/sherozshaikh/ublkit/internal/types"
	"github.com/sherozshaikh/ublkit/pkg/utils"
)

// bom is the UTF-8 byte order mark, written once per shard so Excel on
// Windows detects the encoding.
var bom = []byte{0xEF, 0xBB, 0xBF}

// header is the fixed column row of every shard.
var header = []string{"Key", "Value", "Filename"}

// Writer serializes flattened records according to the csv configuration.
type Writer struct {
	separator  string
	method     string
	maxRecords int
}

// NewWriter creates a Writer from the csv configuration section. The
// preservation method has already been validated at config load time.
func NewWriter(cfg config.CSVConfig) *Writer {
	return &Writer{
		separator:  cfg.KeySeparator,
		method:     cfg.PreservationMethod,
		maxRecords: cfg.MaxRecordsPerFile,
	}
}

// Write writes the flattened record to outputPath, splitting into numbered
// shards once the row threshold is exceeded. It returns the paths of every
// file created, in order. An empty record creates no files.
func (w *Writer) Write(pairs []types.KeyValuePair, outputPath string) ([]string, error) {
	if len(pairs) == 0 {
		slog.Warn("no data to write to CSV", "output", outputPath)
		return nil, nil
	}

	numFiles := (len(pairs) + w.maxRecords - 1) / w.maxRecords
	if numFiles > 1 {
		slog.Info("splitting CSV output",
			"records", len(pairs), "files", numFiles, "records_per_file", w.maxRecords)
	}

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

// writeFile writes one shard: BOM, header, then one row per pair.
func (w *Writer) writeFile(path string, pairs []types.KeyValuePair) error {
	f, err := os.Create(path)
	if err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	defer f.Close()

	if _, err := f.Write(bom); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	for _, p := range pairs {
		row := []string{
			strings.Join(p.Key, w.separator),
			w.Preserve(p.Value),
			p.SourceFile,
		}
		if err := cw.Write(row); err != nil {
			return &types.IOError{Op: "write", Path: path, Err: err}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}

	slog.Debug("wrote CSV shard", "path", path, "rows", len(pairs))
	return nil
}

// Preserve applies the configured preservation transform to one value.
// Empty values pass through untouched under every method.
func (w *Writer) Preserve(value string) string {
	if value == "" {
		return value
	}
	switch w.method {
	case "apostrophe":
		return "'" + value
	case "quotes":
		return `"` + value + `"`
	case "brackets":
		return "[" + value + "]"
	}
	return value
}
