package options

import (
	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each book.")
}

// SearchOptions
type SearchOptions struct {
	Search string
}

func AddSearchArgs(cmd *cobra.Command, o *SearchOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only show books whose title or author contains this text.")
}
