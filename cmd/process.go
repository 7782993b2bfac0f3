package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/earable/s3-lzma-to-data/internal"
	"github.com/spf13/cobra"
)

var (
	productKey string

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")).
		Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <archive>",
	Short: "Decode a capture archive into per-sensor sample files",
	Long: `Decode a compressed capture archive into validated per-sensor .dat files.

The archive is either a single .lzma file or a RAW_DATA session directory of
per-source .lzma segments. One file per sensor kind is written under the
output directory, each write atomic, and the session is recorded in the
catalog for later listing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archive := args[0]

		cfg, err := internal.LoadConfig(configPath)
		if err != nil {
			return err
		}

		// License validation is an external collaborator; this gate only
		// carries its verdict into the pipeline.
		authorized := productKey != ""

		pipeline := internal.NewPipeline(archive, resolveOutDir(archive), cfg, authorized)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		results, err := pipeline.Run(ctx)
		if err != nil {
			return err
		}

		catalog, err := internal.OpenCatalog(pipeline.OutDir)
		if err != nil {
			internal.LogWarn("catalog unavailable: %v", err)
		} else {
			defer catalog.Close()
			if err := catalog.RecordSession(pipeline.SessionID(), archive, results); err != nil {
				internal.LogWarn("failed to record session in catalog: %v", err)
			}
		}

		displayResults(pipeline.SessionID(), results)
		return nil
	},
}

func resolveOutDir(archive string) string {
	if outDir != "" {
		return outDir
	}
	base := strings.TrimSuffix(filepath.Base(archive), ".lzma")
	return "extracted_" + base
}

func displayResults(sessionID string, results map[internal.Kind]*internal.SensorResult) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Session %s", sessionID)))

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Sensor")+"\t"+titleStyle.Render("Samples")+"\t"+titleStyle.Render("Duration")+"\t"+titleStyle.Render("Health")+"\t"+titleStyle.Render("File")+"\t")

	for _, kind := range internal.AllKinds {
		res, ok := results[kind]
		if !ok {
			_, _ = fmt.Fprintf(w, "%s\t%s\t\t\t\t\n", strings.ToUpper(kind.String()), dimStyle.Render("absent"))
			continue
		}
		health := okStyle.Render("ok")
		if !res.Report.Healthy() {
			health = warnStyle.Render(fmt.Sprintf("nan=%d inf=%d clamps=%d",
				res.Report.NaNCount, res.Report.InfCount, res.Report.MonotonicityViolations))
		}
		if res.Report.SkippedRecords > 0 {
			health += dimStyle.Render(fmt.Sprintf(" skipped=%d", res.Report.SkippedRecords))
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%.1fs\t%s\t%s\t\n",
			strings.ToUpper(kind.String()), res.Report.SampleCount,
			res.Table.Duration(), health, dimStyle.Render(res.Path))
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: extracted_<session> next to the archive)")
	processCmd.Flags().StringVar(&productKey, "product-key", "", "Product key checked by the licensing service")
}
