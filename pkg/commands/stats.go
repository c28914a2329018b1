package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/shelf/pkg/commands/options"
	"tableflip.dev/shelf/pkg/runner/stats"
)

func addStats(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals for books and chapters",
		Example: `
shelf stats
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := stats.Stats{JSON: oo.JSON, Out: cmd.OutOrStdout(), Service: svc}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
