package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/shelf/pkg/commands/options"
	"tableflip.dev/shelf/pkg/runner/report"
	"tableflip.dev/shelf/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display recently completed chapters grouped by book",
		Long: `Report lists chapters completed within the specified time window, grouped by book.

Examples:
  shelf report
  shelf report --last 3d
  shelf report --last 1mo2w`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}
			r := report.Report{
				Last:    last,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
				Service: svc,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w, 1mo)")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
