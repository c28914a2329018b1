// Package browse holds the state of the book browser: the loaded collection,
// the active search term and the cards derived from them.
package browse

import (
	"net/url"
	"sort"

	"github.com/samber/lo"

	"tableflip.dev/shelf/pkg/book"
)

// PageSize caps the unfiltered view.
const PageSize = 8

// State is the browser's display state.
type State int

const (
	StateLoading State = iota
	StateEmpty
	StatePopulated
	StateFiltered
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateFiltered:
		return "filtered"
	default:
		return "unknown"
	}
}

// Card is one rendered book.
type Card struct {
	ID         string
	Title      string
	Author     string
	CoverImage string
	Progress   int
	Completed  int
	Total      int
	Added      string
}

// Model is the browser state. The zero value is in StateLoading.
type Model struct {
	books   []*book.Book
	term    string
	state   State
	visible []*book.Book
}

// New returns a Model waiting for its first Load.
func New() *Model {
	return &Model{}
}

// Load replaces the collection, newest first, and re-applies the current
// search term.
func (m *Model) Load(books []*book.Book) {
	m.books = Sorted(books)
	m.apply()
}

// Sorted returns a copy of books without nils, newest first. Books added at
// the same instant keep their stored order.
func Sorted(books []*book.Book) []*book.Book {
	sorted := lo.Filter(books, func(b *book.Book, _ int) bool { return b != nil })
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateAdded.After(sorted[j].DateAdded.Time)
	})
	return sorted
}

// Filter returns the books matching the normalised term. An empty term
// matches everything.
func Filter(books []*book.Book, term string) []*book.Book {
	if term == "" {
		return books
	}
	return lo.Filter(books, func(b *book.Book, _ int) bool { return b.Matches(term) })
}

// Search sets the raw search input. An empty term restores the capped view;
// any other term filters the whole collection without a cap.
func (m *Model) Search(raw string) {
	m.term = book.NormalizeTerm(raw)
	if m.state == StateLoading {
		return
	}
	m.apply()
}

func (m *Model) apply() {
	switch {
	case len(m.books) == 0:
		m.state = StateEmpty
		m.visible = nil
	case m.term == "":
		m.state = StatePopulated
		m.visible = m.books[:min(PageSize, len(m.books))]
	default:
		m.state = StateFiltered
		m.visible = Filter(m.books, m.term)
	}
}

// State is the current display state.
func (m *Model) State() State {
	return m.state
}

// Term is the normalised search term.
func (m *Model) Term() string {
	return m.term
}

// Total is the size of the loaded collection.
func (m *Model) Total() int {
	return len(m.books)
}

// NoResults reports an active search that matched nothing.
func (m *Model) NoResults() bool {
	return m.state == StateFiltered && len(m.visible) == 0
}

// Books returns the books currently on screen.
func (m *Model) Books() []*book.Book {
	return m.visible
}

// Cards returns the cards currently on screen.
func (m *Model) Cards() []Card {
	return lo.Map(m.visible, func(b *book.Book, _ int) Card { return CardFor(b) })
}

// CardFor derives the card for a single book.
func CardFor(b *book.Book) Card {
	c := Card{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		CoverImage: b.CoverImage,
		Progress:   b.Progress(),
		Completed:  b.CompletedCount(),
		Total:      len(b.Chapters),
	}
	if !b.DateAdded.IsZero() {
		c.Added = book.FormatDate(b.DateAdded.Time)
	}
	return c
}

// DetailLink is the location of a book's detail view.
func DetailLink(id string) string {
	return "book-details?" + url.Values{"id": {id}}.Encode()
}
