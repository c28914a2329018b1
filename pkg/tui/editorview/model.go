// Package editorview hosts the Bubble Tea screen for adding a book.
package editorview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/shelf/pkg/book"
	"tableflip.dev/shelf/pkg/cover"
	"tableflip.dev/shelf/pkg/editor"
	"tableflip.dev/shelf/pkg/tui/theme"
)

// Saver persists a finished editor session.
type Saver interface {
	Save(ctx context.Context, s *editor.Session) (*book.Book, error)
}

// CoverLoader reads a cover image from disk.
type CoverLoader func(path string) (*cover.Image, error)

// Focus targets before the chapter inputs.
const (
	focusTitle = iota
	focusAuthor
	focusCover
	focusFirstChapter
)

const barWidth = 24

type coverLoadedMsg struct {
	path string
	img  *cover.Image
	err  error
}

type savedMsg struct {
	book *book.Book
	err  error
}

// Model is the book editor screen.
type Model struct {
	ctx     context.Context
	saver   Saver
	load    CoverLoader
	session *editor.Session
	theme   theme.Theme

	title     textinput.Model
	author    textinput.Model
	coverPath textinput.Model
	chapters  []textinput.Model
	focus     int

	status    string
	statusErr bool

	saving       bool
	loadingCover bool
	saved        *book.Book
	quitting     bool

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithCoverLoader replaces cover.Load.
func WithCoverLoader(load CoverLoader) Option {
	return func(m *Model) {
		m.load = load
	}
}

// WithSession edits an existing session instead of a fresh one.
func WithSession(s *editor.Session) Option {
	return func(m *Model) {
		m.session = s
	}
}

// New constructs the editor screen. Saves run against saver with ctx.
func New(ctx context.Context, saver Saver, opts ...Option) *Model {
	m := &Model{
		ctx:   ctx,
		saver: saver,
		load:  cover.Load,
		theme: theme.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.session == nil {
		m.session = editor.New()
	}

	m.title = newInput("Enter book title")
	m.title.SetValue(m.session.Title())
	m.author = newInput("Enter author name")
	m.author.SetValue(m.session.Author())
	m.coverPath = newInput("Path to a cover image, enter to load")
	if img := m.session.Cover(); img != nil {
		m.coverPath.SetValue(img.Path)
	}
	for i := 0; i < m.session.Len(); i++ {
		in := newInput("")
		if name := m.session.ChapterName(i); name != book.DefaultChapterName(i) {
			in.SetValue(name)
		}
		m.chapters = append(m.chapters, in)
	}
	m.syncPlaceholders()
	m.title.Focus()
	return m
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = 256
	return in
}

// Session exposes the underlying editor state.
func (m *Model) Session() *editor.Session { return m.session }

// Saved returns the stored book once a save succeeded.
func (m *Model) Saved() *book.Book { return m.saved }

// Saving reports whether a save is in flight.
func (m *Model) Saving() bool { return m.saving }

// Status returns the current status line text.
func (m *Model) Status() string { return m.status }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case coverLoadedMsg:
		return m, m.handleCover(msg)
	case savedMsg:
		return m, m.handleSaved(msg)
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	return m, m.updateFocused(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}
	if m.saving {
		return nil
	}

	switch key {
	case "esc":
		m.quitting = true
		return tea.Quit
	case "tab", "down":
		return m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m.setFocus(m.focus - 1)
	case "ctrl+n":
		idx := m.session.AddChapter()
		m.chapters = append(m.chapters, newInput(""))
		m.syncPlaceholders()
		m.setStatus(fmt.Sprintf("Added %s", m.session.ChapterName(idx)), false)
		return m.setFocus(focusFirstChapter + idx)
	case "ctrl+x":
		return m.removeChapter()
	case "ctrl+t":
		idx, ok := m.focusedChapter()
		if !ok {
			m.setStatus("Focus a chapter to toggle it", true)
			return nil
		}
		m.session.ToggleCompletion(idx)
		return nil
	case "ctrl+s":
		return m.save()
	case "enter":
		if m.focus == focusCover {
			return m.loadCover()
		}
		return m.setFocus(m.focus + 1)
	}
	return m.updateFocused(msg)
}

func (m *Model) removeChapter() tea.Cmd {
	idx, ok := m.focusedChapter()
	if !ok {
		m.setStatus("Focus a chapter to remove it", true)
		return nil
	}
	if !m.session.RemoveChapter(idx) {
		m.setStatus("A book needs at least one chapter", true)
		return nil
	}
	m.chapters = append(m.chapters[:idx], m.chapters[idx+1:]...)
	m.syncPlaceholders()
	m.setStatus("Chapter removed", false)
	next := focusFirstChapter + min(idx, len(m.chapters)-1)
	return m.setFocus(next)
}

func (m *Model) loadCover() tea.Cmd {
	path := strings.TrimSpace(m.coverPath.Value())
	if path == "" {
		m.setStatus("Please select a book cover image", true)
		return nil
	}
	m.loadingCover = true
	m.setStatus("Loading cover…", false)
	load := m.load
	return func() tea.Msg {
		img, err := load(path)
		return coverLoadedMsg{path: path, img: img, err: err}
	}
}

func (m *Model) handleCover(msg coverLoadedMsg) tea.Cmd {
	m.loadingCover = false
	if m.saving {
		return nil
	}
	if strings.TrimSpace(m.coverPath.Value()) != msg.path {
		// The path changed while loading.
		return nil
	}
	if msg.err != nil {
		m.session.SetCover(nil)
		m.setStatus(msg.err.Error(), true)
		return nil
	}
	m.session.SetCover(msg.img)
	m.setStatus("Cover loaded", false)
	return nil
}

func (m *Model) save() tea.Cmd {
	if err := m.session.Validate(); err != nil {
		return m.showError(err)
	}
	m.saving = true
	m.setStatus("Saving…", false)
	ctx, saver, session := m.ctx, m.saver, m.session.Clone()
	return func() tea.Msg {
		b, err := saver.Save(ctx, session)
		return savedMsg{book: b, err: err}
	}
}

func (m *Model) handleSaved(msg savedMsg) tea.Cmd {
	m.saving = false
	if msg.err != nil {
		return m.showError(msg.err)
	}
	m.saved = msg.book
	m.quitting = true
	m.setStatus("Book saved successfully!", false)
	return tea.Quit
}

func (m *Model) showError(err error) tea.Cmd {
	m.setStatus(err.Error(), true)
	var verr *editor.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	switch verr.Field {
	case editor.FieldTitle:
		return m.setFocus(focusTitle)
	case editor.FieldAuthor:
		return m.setFocus(focusAuthor)
	case editor.FieldCover:
		return m.setFocus(focusCover)
	}
	return nil
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) focusCount() int {
	return focusFirstChapter + len(m.chapters)
}

func (m *Model) focusedChapter() (int, bool) {
	idx := m.focus - focusFirstChapter
	if idx < 0 || idx >= len(m.chapters) {
		return 0, false
	}
	return idx, true
}

func (m *Model) input(focus int) *textinput.Model {
	switch focus {
	case focusTitle:
		return &m.title
	case focusAuthor:
		return &m.author
	case focusCover:
		return &m.coverPath
	}
	idx := focus - focusFirstChapter
	if idx < 0 || idx >= len(m.chapters) {
		return nil
	}
	return &m.chapters[idx]
}

func (m *Model) setFocus(focus int) tea.Cmd {
	n := m.focusCount()
	focus = ((focus % n) + n) % n
	if in := m.input(m.focus); in != nil {
		in.Blur()
	}
	m.focus = focus
	in := m.input(focus)
	in.CursorEnd()
	return in.Focus()
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	in := m.input(m.focus)
	if in == nil {
		return nil
	}
	updated, cmd := in.Update(msg)
	*in = updated
	if !m.saving {
		m.syncValue()
	}
	return cmd
}

// syncValue copies the focused input into the session.
func (m *Model) syncValue() {
	switch m.focus {
	case focusTitle:
		m.session.SetTitle(m.title.Value())
	case focusAuthor:
		m.session.SetAuthor(m.author.Value())
	case focusCover:
		if img := m.session.Cover(); img != nil && img.Path != strings.TrimSpace(m.coverPath.Value()) {
			m.session.SetCover(nil)
		}
	default:
		if idx, ok := m.focusedChapter(); ok {
			m.session.RenameChapter(idx, m.chapters[idx].Value())
		}
	}
}

// syncPlaceholders shows each chapter's positional default name.
func (m *Model) syncPlaceholders() {
	for i := range m.chapters {
		m.chapters[i].Placeholder = book.DefaultChapterName(i)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	th := m.theme

	form := []string{th.Panel.Title.Render("Add a Book"), ""}
	form = append(form, m.field("Title", focusTitle, m.title.View()))
	form = append(form, m.field("Author", focusAuthor, m.author.View()))
	form = append(form, m.field("Cover", focusCover, m.coverPath.View()))
	form = append(form, th.Form.Muted.Render("  "+m.session.Cover().Describe()))
	form = append(form, "", th.Panel.Title.Render("Chapters"))
	for i := range m.chapters {
		form = append(form, m.field(fmt.Sprintf("%2d", i+1), focusFirstChapter+i, m.chapters[i].View()))
	}

	preview := []string{
		th.Card.Title.Render(m.session.PreviewTitle()),
		th.Card.Author.Render(m.session.PreviewAuthor()),
		th.Card.Meta.Render(m.session.Cover().Describe()),
		"",
		th.Progress.Bar(m.session.Progress(), barWidth) + " " +
			th.Progress.Label.Render(fmt.Sprintf("%d%%", m.session.Progress())),
		"",
	}
	for _, c := range m.session.Chapters() {
		mark := "[ ]"
		style := th.Form.Muted
		if c.Completed {
			mark = "[x]"
			style = th.Form.Done
		}
		preview = append(preview, fmt.Sprintf("%s %s  %s", mark, c.Name, style.Render(c.DateLabel)))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		th.Panel.Frame.Render(strings.Join(form, "\n")),
		" ",
		th.Panel.Frame.Render(strings.Join(preview, "\n")),
	)

	status := th.Footer.Status.Render(m.status)
	if m.statusErr {
		status = th.Footer.Error.Render(m.status)
	}
	help := th.Footer.Help.Render("tab/↑↓ move · ctrl+n add chapter · ctrl+x remove · ctrl+t toggle done · enter load cover · ctrl+s save · esc quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, status, help)
}

func (m *Model) field(label string, focus int, view string) string {
	style := m.theme.Form.Label
	marker := "  "
	if m.focus == focus {
		style = m.theme.Form.FocusedLabel
		marker = "→ "
	}
	return marker + style.Render(fmt.Sprintf("%-7s", label)) + " " + strings.TrimSuffix(view, "\n")
}

// Run launches the editor and returns the saved book, or nil when the user
// quit without saving.
func Run(ctx context.Context, saver Saver, opts ...Option) (*book.Book, error) {
	m := New(ctx, saver, opts...)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return nil, err
	}
	return m.saved, nil
}
