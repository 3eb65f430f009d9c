// =============================================================================
// ublkit - File Manager Utility
// =============================================================================
//
// File-system helpers shared by the converters and writers:
//   - Input discovery (non-recursive *.xml scan)
//   - Directory management
//   - Split-file and summary-file naming
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DiscoverXMLFiles lists the XML files directly inside dir, sorted by name.
// The scan is non-recursive and uses a fixed ".xml" extension filter;
// subdirectories are ignored.
func DiscoverXMLFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) == ".xml" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// SplitFilename names the n-th shard of a split output file by inserting a
// 1-based, zero-padded part number before the extension:
//
//	SplitFilename("out/invoice.csv", 2) -> "out/invoice_part002.csv"
func SplitFilename(base string, n int) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_part%03d%s", stem, n, ext)
}

// SummaryFilename returns a fresh path for a batch summary file under dir.
// The name carries a timestamp for humans and a short uuid so concurrent
// batch runs never collide:
//
//	summaries/ublkit_summary_2026_01_02_15_04_05_1a2b3c4d.json
func SummaryFilename(dir string) string {
	stamp := time.Now().Format("2006_01_02_15_04_05")
	short := uuid.NewString()[:8]
	return filepath.Join(dir, fmt.Sprintf("ublkit_summary_%s_%s.json", stamp, short))
}

// OutputBase maps a source XML path to an output path under outputDir with
// the given extension:
//
//	OutputBase("in/invoice.xml", "out", ".csv") -> "out/invoice.csv"
func OutputBase(sourcePath, outputDir, ext string) string {
	name := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(outputDir, stem+ext)
}
