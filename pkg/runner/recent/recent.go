package recent

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/shelf/pkg/app"
	"tableflip.dev/shelf/pkg/browse"
	"tableflip.dev/shelf/pkg/printers"
	"tableflip.dev/shelf/pkg/tui/browserview"
)

// Recent shows the newest books, in the browser screen when Interactive is
// set and as plain cards otherwise.
type Recent struct {
	Search      string
	Interactive bool
	ShowID      bool
	Out         io.Writer

	Service *app.Service
}

func (n *Recent) out() io.Writer {
	if n.Out == nil {
		return os.Stdout
	}
	return n.Out
}

func (n *Recent) Do(ctx context.Context) error {
	if n.Service == nil {
		return app.ErrNoPersistence
	}
	if n.Interactive {
		link, err := browserview.Run(ctx, n.Service, browserview.WithSearch(n.Search))
		if err != nil {
			return err
		}
		if link != "" {
			_, _ = fmt.Fprintln(n.out(), link)
		}
		return nil
	}

	books, err := n.Service.Books(ctx)
	if err != nil {
		return err
	}
	m := browse.New()
	m.Load(books)
	m.Search(n.Search)

	cards := m.Cards()
	pp := printers.PrettyPrint{Out: n.out(), ShowID: n.ShowID}
	title := "Recent Books"
	if m.Term() != "" {
		title = fmt.Sprintf("Books matching %q", m.Term())
	}
	pp.TitleWithCount(title, len(cards))
	pp.Cards(cards, m.NoResults())
	return nil
}
