package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/earable/s3-lzma-to-data/internal"
	"github.com/spf13/cobra"
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read <dir>",
	Short: "Inspect decoded sample files",
	Long: `Read back the per-sensor .dat files from an output directory and print
their shapes, time ranges and a short sample preview.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := internal.NewReader(args[0])
		tables, err := reader.ReadAllSensors()
		if err != nil {
			return err
		}
		if len(tables) == 0 {
			return fmt.Errorf("no sample files found in %s", args[0])
		}

		for _, kind := range internal.AllKinds {
			table, ok := tables[kind]
			if !ok {
				continue
			}
			printTable(table)
		}
		return nil
	},
}

func printTable(t *internal.SampleTable) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("%s (%d samples x %d channels)",
		strings.ToUpper(t.Kind.String()), len(t.Samples), t.Kind.ChannelCount())))
	if len(t.Samples) == 0 {
		fmt.Println(dimStyle.Render("  empty"))
		return
	}

	first := t.Samples[0].Timestamp
	last := t.Samples[len(t.Samples)-1].Timestamp
	fmt.Printf("  time range: %.3f -> %.3f (%s, %.1fs)\n",
		first, last, time.Unix(int64(first), 0).UTC().Format(time.RFC3339), last-first)

	for i := 0; i < len(t.Samples) && i < 3; i++ {
		s := t.Samples[i]
		vals := make([]string, len(s.Channels))
		for ch, v := range s.Channels {
			vals[ch] = fmt.Sprintf("%8.1f", v)
		}
		fmt.Printf("  sample %d: [%s] @ %.3f\n", i, strings.Join(vals, " "), s.Timestamp)
	}

	for ch := 0; ch < t.Kind.ChannelCount(); ch++ {
		lo, hi := t.Samples[0].Channels[ch], t.Samples[0].Channels[ch]
		for _, s := range t.Samples {
			if s.Channels[ch] < lo {
				lo = s.Channels[ch]
			}
			if s.Channels[ch] > hi {
				hi = s.Channels[ch]
			}
		}
		fmt.Println(dimStyle.Render(fmt.Sprintf("  channel %d: %.1f .. %.1f", ch+1, lo, hi)))
	}
}

func init() {
	rootCmd.AddCommand(readCmd)
}
