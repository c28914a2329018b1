// Package printers renders shelf data for plain terminal output.
package printers

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/termenv"

	"tableflip.dev/shelf/pkg/app"
	"tableflip.dev/shelf/pkg/book"
	"tableflip.dev/shelf/pkg/browse"
)

const NoResultsText = "No books match your search"

type PrettyPrint struct {
	// Out defaults to os.Stdout.
	Out io.Writer
	// ShowID adds the book id column.
	ShowID bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return os.Stdout
	}
	return pp.Out
}

// style returns a color that is disabled when the output has no colour
// support.
func (pp *PrettyPrint) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if termenv.NewOutput(pp.out()).ColorProfile() == termenv.Ascii {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	_, _ = pp.style(color.Bold, color.Underline).Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	w := pp.out()
	_, _ = pp.style(color.Bold, color.Underline).Fprint(w, title)
	c := pp.style(color.Faint)
	_, _ = c.Fprintf(w, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(w, " book")
	default:
		_, _ = c.Fprintln(w, " books")
	}
}

func (pp *PrettyPrint) none(text string) {
	_, _ = pp.style(color.Faint, color.Italic).Fprintf(pp.out(), " %s\n\n", text)
}

// Cards prints one row per card. noResults selects the search miss text
// over "none" when cards is empty.
func (pp *PrettyPrint) Cards(cards []browse.Card, noResults bool) {
	if len(cards) == 0 {
		if noResults {
			pp.none(NoResultsText)
		} else {
			pp.none("none")
		}
		return
	}

	table := uitable.New()
	table.MaxColWidth = 40
	id := pp.style(color.FgHiYellow, color.Italic, color.Faint)
	for _, c := range cards {
		row := []interface{}{
			c.Title,
			"by " + c.Author,
			fmt.Sprintf("%3d%%", c.Progress),
			fmt.Sprintf("%d/%d chapters", c.Completed, c.Total),
			"Added on " + c.Added,
		}
		if pp.ShowID {
			row = append([]interface{}{id.Sprint(c.ID)}, row...)
		}
		table.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), table)
	pp.NewLine()
}

func (pp *PrettyPrint) Stats(st app.Stats) {
	pp.Title("Shelf")
	table := uitable.New()
	table.AddRow("Books", st.Books)
	table.AddRow("Finished", st.FinishedBooks)
	table.AddRow("Chapters", st.Chapters)
	table.AddRow("Completed", fmt.Sprintf("%d (%d%%)", st.CompletedChapters, st.Progress()))
	_, _ = fmt.Fprintln(pp.out(), table)
}

func (pp *PrettyPrint) Saved(b *book.Book) {
	w := pp.out()
	_, _ = pp.style(color.FgGreen, color.Bold).Fprintln(w, "Book saved successfully!")
	_, _ = pp.style(color.Faint).Fprintf(w, "%s  %s\n", b.ID, b.String())
}
