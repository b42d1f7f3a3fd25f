package summary

import (
	"fmt"
	"os"

	"github.com/RedTeamPentesting/slotfuzz/recorder"
	"github.com/RedTeamPentesting/slotfuzz/reporter"
	"github.com/spf13/cobra"
)

// Options collect options for the command.
type Options struct {
	Interesting bool
}

var opts Options

// AddCommand adds the command to c.
func AddCommand(c *cobra.Command) {
	c.AddCommand(cmd)

	fs := cmd.Flags()
	fs.SortFlags = false

	fs.BoolVarP(&opts.Interesting, "interesting", "i", false, "also list all interesting records")
}

var cmd = &cobra.Command{
	Use:                   "summary [options] [LOGFILE...]",
	DisableFlagsInUseLine: true,

	Short:   helpShort,
	Long:    helpLong,
	Example: helpExamples,

	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{recorder.DefaultLogFile}
		}

		p := reporter.WriterPrinter{Writer: os.Stdout}
		for _, filename := range args {
			err := show(p, &opts, filename)
			if err != nil {
				return err
			}
		}

		return nil
	},
}

func show(p reporter.Printer, opts *Options, filename string) error {
	records, err := recorder.LoadLog(filename)
	if err != nil {
		return fmt.Errorf("load %v: %w", filename, err)
	}

	p.Print(reporter.Bold("Log file:") + " " + filename)

	if opts.Interesting {
		for _, rec := range records {
			if !rec.Interesting() {
				continue
			}

			p.Print(fmt.Sprintf("%7d %8d   %-12s %-16s %s", rec.StatusCode, rec.ContentLength,
				rec.Pattern, rec.EncodedPattern, rec.ArtifactFile))
		}
	}

	summary := reporter.Summarize(records, reporter.Span(records))
	summary.Print(p, "", "")

	return nil
}
