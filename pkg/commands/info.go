package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/shelf/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about where books are stored.",
		Example: `
shelf info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService()
			if err != nil {
				return err
			}
			i := info.Info{Service: svc, Out: cmd.OutOrStdout()}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
