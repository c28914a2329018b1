package add

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/shelf/pkg/app"
	"tableflip.dev/shelf/pkg/book"
	"tableflip.dev/shelf/pkg/cover"
	"tableflip.dev/shelf/pkg/editor"
	"tableflip.dev/shelf/pkg/printers"
	"tableflip.dev/shelf/pkg/tui/editorview"
)

// Add stores a new book, either from flags or through the editor screen.
type Add struct {
	Interactive bool

	Title    string
	Author   string
	Cover    string
	Chapters []string
	// Completed holds 1-based chapter positions to mark done.
	Completed []int

	JSON bool
	Out  io.Writer

	Service *app.Service
	// Session overrides editor.New, mostly for a fixed clock.
	Session *editor.Session
}

func (n *Add) out() io.Writer {
	if n.Out == nil {
		return os.Stdout
	}
	return n.Out
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return app.ErrNoPersistence
	}

	saved, err := n.save(ctx)
	if err != nil {
		return err
	}
	if saved == nil {
		_, _ = fmt.Fprintln(n.out(), "Nothing saved.")
		return nil
	}

	if n.JSON {
		b, err := json.MarshalIndent(saved, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(n.out(), string(b))
		return nil
	}
	pp := printers.PrettyPrint{Out: n.out()}
	pp.Saved(saved)
	return nil
}

func (n *Add) save(ctx context.Context) (*book.Book, error) {
	if n.Interactive {
		var opts []editorview.Option
		if n.Session != nil {
			opts = append(opts, editorview.WithSession(n.Session))
		}
		return editorview.Run(ctx, n.Service, opts...)
	}
	s, err := n.session()
	if err != nil {
		return nil, err
	}
	return n.Service.Save(ctx, s)
}

// session builds an editor session from the flag values.
func (n *Add) session() (*editor.Session, error) {
	s := n.Session
	if s == nil {
		s = editor.New()
	}
	s.SetTitle(n.Title)
	s.SetAuthor(n.Author)

	for i, name := range n.Chapters {
		if i >= s.Len() {
			s.AddChapter()
		}
		s.RenameChapter(i, name)
	}

	for _, pos := range n.Completed {
		if pos < 1 || pos > s.Len() {
			return nil, fmt.Errorf("add: completed chapter %d out of range 1-%d", pos, s.Len())
		}
		s.SetCompletion(pos-1, true)
	}

	// Title and author fail before the cover file is touched.
	if err := validate(s); err != nil && !isField(err, editor.FieldCover) {
		return nil, err
	}
	if n.Cover != "" {
		img, err := cover.Load(n.Cover)
		if err != nil {
			return nil, err
		}
		s.SetCover(img)
	}
	if err := validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

func validate(s *editor.Session) error {
	err := s.Validate()
	var verr *editor.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("add: --%s: %w", verr.Field, err)
	}
	return err
}

func isField(err error, field editor.Field) bool {
	var verr *editor.ValidationError
	return errors.As(err, &verr) && verr.Field == field
}
