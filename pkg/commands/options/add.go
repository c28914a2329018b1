package options

import (
	"github.com/spf13/cobra"
)

// BookOptions carries the non-interactive `add` fields.
type BookOptions struct {
	Title     string
	Author    string
	Cover     string
	Chapters  []string
	Completed []int
}

func AddBookArgs(cmd *cobra.Command, o *BookOptions) {
	cmd.Flags().StringVar(&o.Title, "title", "",
		"Book title. Skips the editor screen.")
	cmd.Flags().StringVar(&o.Author, "author", "",
		"Book author.")
	cmd.Flags().StringVar(&o.Cover, "cover", "",
		"Path to the cover image.")
	cmd.Flags().StringArrayVar(&o.Chapters, "chapter", nil,
		`Chapter name, repeat for each chapter. An empty name keeps the default "Chapter N".`)
	cmd.Flags().IntSliceVar(&o.Completed, "completed", nil,
		"1-based position of a finished chapter, repeatable.")
}

// FromFlags reports whether the book should be built from flags.
func (o *BookOptions) FromFlags(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("title")
}
