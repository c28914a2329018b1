package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/shelf/pkg/commands/options"
	"tableflip.dev/shelf/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	so := &options.SearchOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every book, newest first",
		Example: `
shelf list
shelf list --search dune --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}
			l := list.List{
				Search:  so.Search,
				ShowID:  ido.ShowID,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
				Service: svc,
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddSearchArgs(cmd, so)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
