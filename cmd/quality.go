package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/earable/s3-lzma-to-data/internal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	qualityKind    string
	qualitySession string
	qualityYAML    bool
)

// qualityCmd represents the quality command
var qualityCmd = &cobra.Command{
	Use:   "quality <dir>",
	Short: "Report data quality for decoded sample files",
	Long: `Report per-sensor quality for an output directory: NaN/Inf counts,
timestamp range and monotonicity.

With --session the reports stored in the directory's catalog are served
without re-reading the .dat files, falling back to a fresh recompute when the
catalog has no entry for that session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		kinds := internal.AllKinds
		if qualityKind != "" {
			kind, err := internal.ParseKind(qualityKind)
			if err != nil {
				return err
			}
			kinds = []internal.Kind{kind}
		}

		var reports []*internal.QualityReport
		if qualitySession != "" {
			reports = catalogReports(dir, qualitySession, kinds)
		}
		if reports == nil {
			reader := internal.NewReader(dir)
			for _, kind := range kinds {
				report, err := reader.QualityReport(kind)
				if err != nil {
					var nfe *internal.NotFoundError
					if errors.As(err, &nfe) && qualityKind == "" {
						continue
					}
					return err
				}
				reports = append(reports, report)
			}
		}
		if len(reports) == 0 {
			return fmt.Errorf("no sample files found in %s", dir)
		}

		if qualityYAML {
			return yaml.NewEncoder(os.Stdout).Encode(reports)
		}
		displayReports(reports)
		return nil
	},
}

// catalogReports serves stored reports from the catalog. A nil return means
// the catalog cannot answer and the caller recomputes from the .dat files.
func catalogReports(dir, sessionID string, kinds []internal.Kind) []*internal.QualityReport {
	catalog, err := internal.OpenCatalog(dir)
	if err != nil {
		internal.LogWarn("catalog unavailable, recomputing: %v", err)
		return nil
	}
	defer catalog.Close()

	stored, err := catalog.Reports(sessionID)
	if err != nil {
		internal.LogWarn("failed to read catalog, recomputing: %v", err)
		return nil
	}
	var reports []*internal.QualityReport
	for _, kind := range kinds {
		if r, ok := stored[kind]; ok {
			reports = append(reports, r)
		}
	}
	if len(reports) == 0 {
		internal.LogWarn("no catalog entry for session %s, recomputing", sessionID)
		return nil
	}
	return reports
}

func displayReports(reports []*internal.QualityReport) {
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Sensor")+"\t"+titleStyle.Render("Samples")+"\t"+titleStyle.Render("NaN")+"\t"+titleStyle.Render("Inf")+"\t"+titleStyle.Render("Clamps")+"\t"+titleStyle.Render("Skipped")+"\t"+titleStyle.Render("Health")+"\t")

	for _, r := range reports {
		health := okStyle.Render("ok")
		if !r.Healthy() {
			health = warnStyle.Render("check")
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%s\t\n",
			strings.ToUpper(r.Kind), r.SampleCount, r.NaNCount, r.InfCount,
			r.MonotonicityViolations, r.SkippedRecords, health)
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(qualityCmd)
	qualityCmd.Flags().StringVar(&qualityKind, "kind", "", "Limit to one sensor kind (eeg, imu, ppg, hr, spo2)")
	qualityCmd.Flags().StringVar(&qualitySession, "session", "", "Serve stored reports for this session from the catalog")
	qualityCmd.Flags().BoolVar(&qualityYAML, "yaml", false, "Emit reports as YAML")
}
