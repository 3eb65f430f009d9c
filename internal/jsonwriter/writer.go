// =============================================================================
// ublkit - JSON Record Writer
// =============================================================================
//
// Serializes the nested document mapping (or the flattened single-level
// mapping when json.flatten is enabled) with ojg. Keys are sorted so output
// is deterministic regardless of Go map iteration order.
//
// =============================================================================

package jsonwriter

import (
	"os"
	"path/filepath"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"

	"github.com/sherozshaikh/ublkit/internal/config"
	"github.com/sherozshaikh/ublkit/internal/types"
)

// Writer serializes JSON documents according to the json configuration.
type Writer struct {
	opts ojg.Options
}

// NewWriter creates a Writer from the json configuration section.
func NewWriter(cfg config.JSONConfig) *Writer {
	return &Writer{opts: ojg.Options{Indent: cfg.Indent, Sort: true}}
}

// Marshal renders data as indented JSON with sorted keys.
func (w *Writer) Marshal(data any) ([]byte, error) {
	out, err := oj.Marshal(data, &w.opts)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// WriteFile renders data and writes it to path, creating parent directories
// as needed.
func (w *Writer) WriteFile(data any, path string) error {
	out, err := w.Marshal(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &types.IOError{Op: "write", Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
