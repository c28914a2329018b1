// Package browserview hosts the Bubble Tea screen listing recent books with
// a live search box.
package browserview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/rs/zerolog/log"

	"tableflip.dev/shelf/pkg/book"
	"tableflip.dev/shelf/pkg/browse"
	"tableflip.dev/shelf/pkg/store"
	"tableflip.dev/shelf/pkg/tui/theme"
)

// Texts shown in place of cards.
const (
	LoadingText   = "Loading books…"
	EmptyText     = "No books yet. Add one with 'shelf add'."
	NoResultsText = "No books match your search"
)

const (
	cardWidth = 34
	barWidth  = 18
)

// Source supplies the collection and its change notifications.
type Source interface {
	Books(ctx context.Context) ([]*book.Book, error)
	Watch(ctx context.Context) (<-chan store.Event, error)
}

type booksLoadedMsg struct {
	books []*book.Book
	err   error
}

type watchStartedMsg struct {
	events <-chan store.Event
	err    error
}

type booksChangedMsg struct{}

// Model is the browser screen.
type Model struct {
	ctx    context.Context
	src    Source
	state  *browse.Model
	theme  theme.Theme
	search textinput.Model
	events <-chan store.Event

	cursor   int
	selected string
	err      error
	quitting bool

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithSearch pre-fills the search box.
func WithSearch(term string) Option {
	return func(m *Model) {
		m.search.SetValue(term)
	}
}

// New constructs the browser screen over src.
func New(ctx context.Context, src Source, opts ...Option) *Model {
	search := textinput.New()
	search.Placeholder = "Search by title or author"
	search.Prompt = "Search: "
	search.CharLimit = 128

	m := &Model{
		ctx:    ctx,
		src:    src,
		state:  browse.New(),
		theme:  theme.Default(),
		search: search,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.search.CursorEnd()
	m.search.Focus()
	m.state.Search(m.search.Value())
	return m
}

// Browse exposes the underlying browser state.
func (m *Model) Browse() *browse.Model { return m.state }

// Selected returns the detail link of the chosen card, or "".
func (m *Model) Selected() string { return m.selected }

// Cursor returns the index of the highlighted card.
func (m *Model) Cursor() int { return m.cursor }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadBooks(), m.startWatch())
}

func (m *Model) loadBooks() tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		books, err := src.Books(ctx)
		return booksLoadedMsg{books: books, err: err}
	}
}

func (m *Model) startWatch() tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		events, err := src.Watch(ctx)
		return watchStartedMsg{events: events, err: err}
	}
}

func waitForChange(events <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return booksChangedMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case booksLoadedMsg:
		m.err = msg.err
		books := msg.books
		if msg.err != nil {
			books = nil
		}
		m.state.Load(books)
		m.clampCursor()
		return m, nil
	case watchStartedMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("live refresh disabled")
			return m, nil
		}
		m.events = msg.events
		return m, waitForChange(m.events)
	case booksChangedMsg:
		return m, tea.Batch(m.loadBooks(), waitForChange(m.events))
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit
	case "up":
		m.moveCursor(-1)
		return nil
	case "down":
		m.moveCursor(1)
		return nil
	case "enter":
		cards := m.state.Cards()
		if len(cards) == 0 {
			return nil
		}
		m.selected = browse.DetailLink(cards[m.cursor].ID)
		m.quitting = true
		return tea.Quit
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.state.Search(m.search.Value())
		m.cursor = 0
	}
	return cmd
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.state.Cards())
	m.cursor = max(0, min(m.cursor, n-1))
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	th := m.theme
	lines := []string{th.Panel.Title.Render("Recent Books"), m.search.View(), ""}

	switch {
	case m.state.State() == browse.StateLoading:
		lines = append(lines, th.Footer.Status.Render(LoadingText))
	case m.state.State() == browse.StateEmpty:
		lines = append(lines, th.Panel.Body.Render(EmptyText))
	case m.state.NoResults():
		lines = append(lines, th.Panel.Body.Render(NoResultsText))
	default:
		lines = append(lines, m.renderCards())
	}
	if m.err != nil {
		lines = append(lines, th.Footer.Error.Render("ERR: "+m.err.Error()))
	}
	lines = append(lines, "", th.Footer.Help.Render("type to search · ↑/↓ move · enter open · esc quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderCards() string {
	cards := m.state.Cards()
	perRow := 1
	if m.width > 0 {
		perRow = max(1, m.width/(cardWidth+6))
	}

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		row := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			row = append(row, m.renderCard(cards[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderCard(c browse.Card, selected bool) string {
	th := m.theme.Card
	frame := th.Frame
	if selected {
		frame = th.Selected
	}
	width := uint(cardWidth)
	progress := m.theme.Progress
	content := strings.Join([]string{
		th.Title.Render(truncate.StringWithTail(c.Title, width, "…")),
		th.Author.Render(truncate.StringWithTail("by "+c.Author, width, "…")),
		progress.Bar(c.Progress, barWidth) + " " + progress.Label.Render(fmt.Sprintf("%d%%", c.Progress)),
		th.Meta.Render(fmt.Sprintf("%d/%d chapters", c.Completed, c.Total)),
		th.Meta.Render("Added on " + c.Added),
	}, "\n")
	return frame.Width(cardWidth + 4).Render(content)
}

// Run launches the browser and returns the detail link of the selected
// book, or "" when the user quit without choosing.
func Run(ctx context.Context, src Source, opts ...Option) (string, error) {
	m := New(ctx, src, opts...)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return "", err
	}
	return m.selected, nil
}
