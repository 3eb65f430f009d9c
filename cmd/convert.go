// =============================================================================
// ublkit - Convert Command
// =============================================================================
//
// Single-file conversion:
//
//   ublkit convert <xml-file> --format {json,csv,xlsx} --output <path>
//
// The conversion itself runs in memory; on success the content is written to
// the --output path with the format's writer (CSV/XLSX may split into
// _partNNN shards around the base name). A failed conversion exits non-zero
// with the error on stderr.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sherozshaikh/ublkit/internal/converter"
)

var (
	// convertFormat is the output format: json, csv or xlsx.
	convertFormat string

	// convertOutput is the output file path.
	convertOutput string
)

// convertCmd represents the 'convert' command.
var convertCmd = &cobra.Command{
	Use:   "convert <xml-file>",
	Short: "Convert a single UBL XML file",
	Long: `Convert a single UBL XML file to JSON, CSV or XLSX.

The document is parsed, flattened and serialized in memory, then written to
the --output path. CSV and XLSX output splits into numbered part files once
csv.max_records_per_file rows are exceeded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args[0])
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(
		&convertFormat,
		"format",
		"f",
		"",
		"Output format: json, csv or xlsx",
	)
	convertCmd.Flags().StringVarP(
		&convertOutput,
		"output",
		"o",
		"",
		"Output file path",
	)
	convertCmd.MarkFlagRequired("format")
	convertCmd.MarkFlagRequired("output")
}

func runConvert(xmlPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	conv, err := converter.NewSingleFile(cfg, convertFormat)
	if err != nil {
		return err
	}

	fmt.Printf("Converting: %s\n", xmlPath)

	result := conv.Convert(xmlPath)
	if !result.Success {
		return fmt.Errorf("conversion failed: %s", result.ErrorMessage)
	}

	outputs, err := conv.WriteOutput(result, convertOutput)
	if err != nil {
		return err
	}

	fmt.Println("Success!")
	fmt.Printf("  Document type:   %s\n", result.UBLDocumentType)
	fmt.Printf("  Processing time: %.3fs\n", result.ProcessingTimeSeconds)
	fmt.Printf("  Output:          %s\n", strings.Join(outputs, ", "))
	return nil
}
