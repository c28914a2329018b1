package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/shelf/pkg/app"
	"tableflip.dev/shelf/pkg/commands/options"
	"tableflip.dev/shelf/pkg/store"
)

func New() *cobra.Command {
	logOpts := &options.LogOptions{}

	cmd := &cobra.Command{
		Use:   "shelf",
		Short: base.Wrap80("Track the books you are reading, chapter by chapter, from the command line."),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logOpts.ConfigureLogging(cmd, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddLogArgs(cmd, logOpts)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addRecent(topLevel)
	addList(topLevel)
	addStats(topLevel)
	addReport(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// newService opens the configured store.
func newService() (*app.Service, error) {
	p, err := store.Load(nil)
	if err != nil {
		return nil, err
	}
	return &app.Service{Persistence: p}, nil
}
