package add

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tableflip.dev/shelf/pkg/app"
	"tableflip.dev/shelf/pkg/book"
	"tableflip.dev/shelf/pkg/editor"
	"tableflip.dev/shelf/pkg/store"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(store.PathConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return &app.Service{Persistence: p, NewID: func() string { return "book-1" }}
}

func writeCover(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cover.txt")
	if err := os.WriteFile(path, []byte("not really an image"), 0o644); err != nil {
		t.Fatalf("write cover: %v", err)
	}
	return path
}

func TestAddFromFlags(t *testing.T) {
	svc := newService(t)
	now := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
	var out bytes.Buffer
	a := Add{
		Title:     "  Dune ",
		Author:    "Frank Herbert",
		Cover:     writeCover(t),
		Chapters:  []string{"Prologue", "", "Arrakis"},
		Completed: []int{1, 3},
		Out:       &out,
		Service:   svc,
		Session:   editor.New(editor.WithClock(func() time.Time { return now })),
	}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out.String(), "Book saved successfully!") {
		t.Fatalf("unexpected output %q", out.String())
	}

	books, err := svc.Books(context.Background())
	if err != nil {
		t.Fatalf("books: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	b := books[0]
	if b.Title != "Dune" || b.ID != "book-1" {
		t.Fatalf("unexpected book %+v", b)
	}
	names := []string{b.Chapters[0].Name, b.Chapters[1].Name, b.Chapters[2].Name}
	if strings.Join(names, ",") != "Prologue,Chapter 2,Arrakis" {
		t.Fatalf("unexpected chapter names %v", names)
	}
	if !b.Chapters[0].Completed || b.Chapters[1].Completed || !b.Chapters[2].Completed {
		t.Fatalf("unexpected completion %+v", b.Chapters)
	}
	if !strings.HasPrefix(b.CoverImage, "data:text/plain;base64,") {
		t.Fatalf("unexpected cover %q", b.CoverImage)
	}
	if !b.DateAdded.Equal(now) {
		t.Fatalf("unexpected dateAdded %v", b.DateAdded)
	}
}

func TestAddJSON(t *testing.T) {
	var out bytes.Buffer
	a := Add{Title: "Dune", Author: "Frank Herbert", Cover: writeCover(t), JSON: true, Out: &out, Service: newService(t)}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	var b book.Book
	if err := json.Unmarshal(out.Bytes(), &b); err != nil {
		t.Fatalf("decode output: %v; out=%q", err, out.String())
	}
	if b.ID != "book-1" || len(b.Chapters) != 1 || b.Chapters[0].Name != "Chapter 1" {
		t.Fatalf("unexpected book %+v", b)
	}
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name string
		add  Add
		want string
	}{
		{name: "title", add: Add{Author: "A"}, want: "add: --title: Please enter a book title"},
		{name: "author", add: Add{Title: "T"}, want: "add: --author: Please enter a book author"},
		{name: "cover", add: Add{Title: "T", Author: "A"}, want: "add: --cover: Please select a book cover image"},
		{name: "title before unreadable cover", add: Add{Author: "A", Cover: "/nonexistent/missing.png"}, want: "add: --title: Please enter a book title"},
		{name: "author before unreadable cover", add: Add{Title: "T", Cover: "/nonexistent/missing.png"}, want: "add: --author: Please enter a book author"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newService(t)
			tc.add.Service = svc
			tc.add.Out = &bytes.Buffer{}
			err := tc.add.Do(context.Background())
			if err == nil || err.Error() != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
			var verr *editor.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected a validation error, got %T", err)
			}
			books, _ := svc.Books(context.Background())
			if len(books) != 0 {
				t.Fatalf("expected nothing stored")
			}
		})
	}
}

func TestAddCompletedOutOfRange(t *testing.T) {
	a := Add{Title: "T", Author: "A", Cover: writeCover(t), Completed: []int{2}, Out: &bytes.Buffer{}, Service: newService(t)}
	if err := a.Do(context.Background()); err == nil || !strings.Contains(err.Error(), "out of range 1-1") {
		t.Fatalf("expected range error, got %v", err)
	}
}

func TestAddMissingCover(t *testing.T) {
	a := Add{Title: "T", Author: "A", Cover: filepath.Join(t.TempDir(), "missing.png"), Out: &bytes.Buffer{}, Service: newService(t)}
	if err := a.Do(context.Background()); err == nil {
		t.Fatalf("expected error for missing cover")
	}
}

func TestAddNoService(t *testing.T) {
	a := Add{Title: "T"}
	if err := a.Do(context.Background()); !errors.Is(err, app.ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
}
