package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/shelf/pkg/app"
	"tableflip.dev/shelf/pkg/book"
)

// Report prints completed chapters grouped by book. label names the window,
// for example "1w".
func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	w := pp.out()
	header := fmt.Sprintf("Reading report · last %s", label)
	pp.TitleWithCount(header, len(result.Sections))
	_, _ = pp.style(color.Faint).Fprintf(w, "%s to %s\n\n",
		book.FormatDate(result.Since), book.FormatDate(result.Until))

	if len(result.Sections) == 0 {
		pp.none("none")
		return
	}

	title := pp.style(color.Bold)
	for _, section := range result.Sections {
		_, _ = title.Fprintf(w, "%s", section.Title)
		_, _ = pp.style(color.Faint).Fprintf(w, " by %s\n", section.Author)

		table := uitable.New()
		for _, item := range section.Entries {
			table.AddRow("  ✓", item.Chapter, book.FormatDate(item.CompletedAt))
		}
		_, _ = fmt.Fprintln(w, table)
		pp.NewLine()
	}
	noun := "chapters"
	if result.Total == 1 {
		noun = "chapter"
	}
	_, _ = pp.style(color.Faint).Fprintf(w, "%d %s completed\n", result.Total, noun)
}
