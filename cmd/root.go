package cmd

import (
	"fmt"
	"os"

	"github.com/earable/s3-lzma-to-data/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	outDir     string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "s3-lzma-to-data",
	Short: "Decode compressed wearable sensor captures into sample files",
	Long: `Decode LZMA-compressed raw recordings from the wearable headband into
validated per-sensor sample files.

The decoder splits a capture into its EEG, IMU, PPG, HR and SPO2 streams,
reconstructs a Unix timestamp for every sample from the anchors embedded in
the raw stream, checks the result for NaN/Inf values and timestamp glitches,
and writes one flat float64 .dat file per sensor.

Quick Start:
  s3-lzma-to-data process RAW_DATA_<device>_<millis>   # decode a session
  s3-lzma-to-data read ./extracted                     # inspect decoded data
  s3-lzma-to-data quality ./extracted                  # per-sensor health`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML pipeline config")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
