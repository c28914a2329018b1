package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/shelf/pkg/commands/options"
	"tableflip.dev/shelf/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	bo := &options.BookOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the shelf",
		Example: `
shelf add
shelf add --title Dune --author "Frank Herbert" --cover ./dune.jpg \
  --chapter "Book One" --chapter "Book Two" --completed 1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}
			a := add.Add{
				Interactive: !bo.FromFlags(cmd),
				Title:       bo.Title,
				Author:      bo.Author,
				Cover:       bo.Cover,
				Chapters:    bo.Chapters,
				Completed:   bo.Completed,
				JSON:        oo.JSON,
				Out:         cmd.OutOrStdout(),
				Service:     svc,
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddBookArgs(cmd, bo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
