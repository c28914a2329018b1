package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/shelf/pkg/commands/options"
	"tableflip.dev/shelf/pkg/runner/recent"
)

func addRecent(topLevel *cobra.Command) {
	so := &options.SearchOptions{}
	iop := &options.InteractiveOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "recent",
		Aliases: []string{"browse"},
		Short:   "Browse the most recently added books",
		Example: `
shelf recent
shelf recent --search herbert
shelf recent --plain
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService()
			if err != nil {
				return err
			}
			r := recent.Recent{
				Search:      so.Search,
				Interactive: iop.Interactive(),
				ShowID:      ido.ShowID,
				Out:         cmd.OutOrStdout(),
				Service:     svc,
			}
			return r.Do(cmd.Context())
		},
	}

	options.AddSearchArgs(cmd, so)
	options.InteractiveArgs(cmd, iop)
	options.AddShowIDArgs(cmd, ido)

	topLevel.AddCommand(cmd)
}
