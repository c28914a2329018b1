package list

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"

	"tableflip.dev/shelf/pkg/app"
	"tableflip.dev/shelf/pkg/book"
	"tableflip.dev/shelf/pkg/browse"
	"tableflip.dev/shelf/pkg/printers"
)

// List prints every stored book, newest first, optionally filtered.
type List struct {
	Search string
	ShowID bool
	JSON   bool
	Out    io.Writer

	Service *app.Service
}

func (n *List) out() io.Writer {
	if n.Out == nil {
		return os.Stdout
	}
	return n.Out
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return app.ErrNoPersistence
	}
	books, err := n.Service.Books(ctx)
	if err != nil {
		return err
	}
	term := book.NormalizeTerm(n.Search)
	books = browse.Filter(browse.Sorted(books), term)

	if n.JSON {
		if books == nil {
			books = []*book.Book{}
		}
		b, err := json.MarshalIndent(books, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(n.out(), string(b))
		return nil
	}

	pp := printers.PrettyPrint{Out: n.out(), ShowID: n.ShowID}
	pp.TitleWithCount("Books", len(books))
	pp.Cards(lo.Map(books, func(b *book.Book, _ int) browse.Card { return browse.CardFor(b) }), term != "")
	return nil
}
