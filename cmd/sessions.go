package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/earable/s3-lzma-to-data/internal"
	"github.com/spf13/cobra"
)

// sessionsCmd represents the sessions command
var sessionsCmd = &cobra.Command{
	Use:   "sessions <dir>",
	Short: "List sessions recorded in an output directory's catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := internal.OpenCatalog(args[0])
		if err != nil {
			return err
		}
		defer catalog.Close()

		entries, err := catalog.Sessions()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println(dimStyle.Render("No processed sessions found."))
			return nil
		}

		w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, titleStyle.Render("Session")+"\t"+titleStyle.Render("Sensors")+"\t"+titleStyle.Render("Processed")+"\t"+titleStyle.Render("Archive")+"\t")
		for _, e := range entries {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t\n",
				e.SessionID, e.SensorCount, dimStyle.Render(e.ProcessedAt), dimStyle.Render(e.ArchivePath))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}
