// =============================================================================
// ublkit - Batch Command
// =============================================================================
//
// Directory conversion:
//
//   ublkit batch <input_dir> <output_dir> --format {json,csv,xlsx} [--dry-run]
//
// All *.xml files directly under input_dir are converted across a worker pool
// of processing.max_workers goroutines. Per-file failures are recorded in the
// JSON summary (written under output.summary_dir) and do NOT change the exit
// code; only errors that prevent the batch from starting - missing config,
// bad format, missing input directory - exit non-zero.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sherozshaikh/ublkit/internal/converter"
)

var (
	// batchFormat is the output format: json, csv or xlsx.
	batchFormat string

	// batchDryRun inspects inputs without writing anything. Requires
	// features.enable_dry_run in the configuration.
	batchDryRun bool
)

// batchCmd represents the 'batch' command.
var batchCmd = &cobra.Command{
	Use:   "batch <input_dir> <output_dir>",
	Short: "Convert every UBL XML file in a directory",
	Long: `Convert every *.xml file directly under <input_dir> and write the results
to <output_dir>, one output per source file (CSV/XLSX may split into numbered
part files). A JSON summary of the run is written to output.summary_dir.

Processing is concurrent; errors in one file do not affect the others and are
reported in the summary rather than through the exit code.

With --dry-run each file is only parsed to confirm it is well-formed UBL XML;
nothing is written. Dry run must be enabled via features.enable_dry_run.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(
		&batchFormat,
		"format",
		"f",
		"",
		"Output format: json, csv or xlsx",
	)
	batchCmd.Flags().BoolVar(
		&batchDryRun,
		"dry-run",
		false,
		"Parse inputs and report what would be written, without writing",
	)
	batchCmd.MarkFlagRequired("format")
}

func runBatch(inputDir, outputDir string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	batch, err := converter.NewBatch(cfg, batchFormat, inputDir, outputDir, converter.BatchOptions{
		DryRun: batchDryRun,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Batch converting: %s -> %s (%s)\n", inputDir, outputDir, batchFormat)
	if batchDryRun {
		fmt.Println("DRY RUN MODE - no files will be written")
	}

	summary, err := batch.Convert()
	if err != nil {
		return err
	}

	fmt.Println("\n=== Conversion Complete ===")
	fmt.Printf("Total files: %d\n", summary.TotalFiles)
	fmt.Printf("Successful:  %d\n", summary.Successful)
	fmt.Printf("Failed:      %d\n", summary.Failed)
	fmt.Printf("Duration:    %.2fs\n", summary.TotalDurationSeconds)

	if summary.Failed > 0 {
		// Per-file failures are visible in the summary and logs only; the
		// batch itself still exits 0.
		fmt.Printf("\n%d file(s) failed - see the summary for details\n", summary.Failed)
	}
	return nil
}
