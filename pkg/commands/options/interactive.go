package options

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// InteractiveOptions
type InteractiveOptions struct {
	Plain bool
}

func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVar(&o.Plain, "plain", false,
		`Print plain output instead of opening the terminal screen.`)
}

// Interactive is true unless --plain was given or stdin/stdout is not a
// terminal.
func (o *InteractiveOptions) Interactive() bool {
	return !o.Plain && isTerminal(os.Stdout) && isTerminal(os.Stdin)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
