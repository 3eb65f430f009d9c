// =============================================================================
// ublkit - Main Entry Point
// =============================================================================
//
// CLI entry point for the UBL XML to JSON/CSV/XLSX converter.
//
// USAGE:
//   ublkit convert <file> --format {json,csv,xlsx} --output <path>
//   ublkit batch <input_dir> <output_dir> --format {json,csv,xlsx} [--dry-run]
//   ublkit version
//
// ARCHITECTURE:
//   - cmd/        : CLI command definitions (Cobra)
//   - internal/   : core conversion logic (not for external import)
//   - pkg/ublkit/ : public library API (single-file and batch conversion)
//   - pkg/utils/  : shared file-system utilities
//
// =============================================================================

package main

import (
	"github.com/sherozshaikh/ublkit/cmd"
)

func main() {
	cmd.Execute()
}
