// =============================================================================
// ublkit - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   ublkit version
//
// OUTPUT:
//   ublkit
//   Version:    0.1.3
//   Build Date: unknown
//   Go Version: go1.24.11
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is the application version. Set at build time using ldflags:
//
//	go build -ldflags "-X 'github.com/sherozshaikh/ublkit/cmd.Version=0.1.3'"
var Version = "0.1.3"

// BuildDate is the date the application was built. Set at build time using
// ldflags.
var BuildDate = "unknown"

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Long:  `Display the application version, build date, and Go runtime version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ublkit")
		fmt.Printf("Version:    %s\n", Version)
		fmt.Printf("Build Date: %s\n", BuildDate)
		fmt.Printf("Go Version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
