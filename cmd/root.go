// =============================================================================
// ublkit - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// (convert, batch, version) are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ublkit)
//   ├── convertCmd (ublkit convert)
//   ├── batchCmd   (ublkit batch)
//   └── versionCmd (ublkit version)
//
// The root command owns the persistent flags (--config, --verbose). Each
// subcommand loads the configuration and initializes logging itself, so
// `ublkit version` and `ublkit --help` work without a config file.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sherozshaikh/ublkit/internal/config"
	"github.com/sherozshaikh/ublkit/internal/logging"
)

// cfgFile holds the path to the configuration file, overridable with --config.
var cfgFile string

// verbose forces debug logging and mirrors log lines to stderr.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ublkit",
	Short: "Convert UBL XML documents to JSON, CSV or XLSX",
	Long: `ublkit parses UBL (Universal Business Language) XML documents - invoices,
credit notes, orders and related e-commerce document types - and re-emits
their content as JSON, flattened CSV or XLSX.

Example Usage:
  ublkit convert invoice.xml --format json --output invoice.json
  ublkit convert invoice.xml --format csv --output invoice.csv --config ublkit.yaml
  ublkit batch ./xml_files ./output --format csv
  ublkit batch ./xml_files ./output --format json --dry-run`,

	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand: print help.
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	// Errors are printed here in one place; per-file batch failures never
	// reach this path (they live in the summary).
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"ublkit.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Force debug logging and mirror logs to stderr",
	)
}

// loadConfig loads the configuration file and sets up logging. Every error
// here is fatal: the operation must not start on a broken configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if _, err := logging.Setup(cfg, verbose); err != nil {
		return nil, err
	}
	return cfg, nil
}
