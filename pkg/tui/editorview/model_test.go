package editorview

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/shelf/pkg/book"
	"tableflip.dev/shelf/pkg/cover"
	"tableflip.dev/shelf/pkg/editor"
)

type fakeSaver struct {
	calls int
	err   error
}

func (f *fakeSaver) Save(_ context.Context, s *editor.Session) (*book.Book, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return s.Build("book-1")
}

func fakeLoader(path string) (*cover.Image, error) {
	if strings.Contains(path, "missing") {
		return nil, errors.New("cover: open " + path + ": no such file or directory")
	}
	return &cover.Image{Name: "dune.png", Path: path, MIME: "image/png", DataURI: "data:image/png;base64,AA==", Width: 2, Height: 3}, nil
}

func newTestModel(saver Saver) *Model {
	m := New(context.Background(), saver, WithCoverLoader(fakeLoader))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func press(m *Model, code rune, mod tea.KeyMod) tea.Cmd {
	_, cmd := m.Update(tea.KeyPressMsg{Code: code, Mod: mod})
	return cmd
}

func ctrl(m *Model, r rune) tea.Cmd {
	return press(m, r, tea.ModCtrl)
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// runCmd executes cmd and feeds the resulting message back into the model.
func runCmd(m *Model, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	_, next := m.Update(cmd())
	return next
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func fillForm(m *Model) {
	typeText(m, "Dune")
	press(m, tea.KeyTab, 0)
	typeText(m, "Frank Herbert")
	press(m, tea.KeyTab, 0)
	typeText(m, "/tmp/dune.png")
	runCmd(m, press(m, tea.KeyEnter, 0))
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestTypingUpdatesPreview(t *testing.T) {
	m := newTestModel(&fakeSaver{})
	view := stripANSI(m.View())
	if !strings.Contains(view, "Book Title") || !strings.Contains(view, "by Author Name") {
		t.Fatalf("expected placeholder preview; view=%q", view)
	}

	typeText(m, "Dune")
	press(m, tea.KeyTab, 0)
	typeText(m, "Frank Herbert")

	if got := m.Session().Title(); got != "Dune" {
		t.Fatalf("expected title Dune, got %q", got)
	}
	view = stripANSI(m.View())
	if !strings.Contains(view, "by Frank Herbert") {
		t.Fatalf("expected author in preview; view=%q", view)
	}
	if !strings.Contains(view, "No cover selected") {
		t.Fatalf("expected empty cover description; view=%q", view)
	}
}

func TestFocusWraps(t *testing.T) {
	m := newTestModel(&fakeSaver{})
	press(m, tea.KeyTab, tea.ModShift)
	if idx, ok := m.focusedChapter(); !ok || idx != 0 {
		t.Fatalf("expected shift+tab from title to wrap to the last chapter, focus=%d", m.focus)
	}
	press(m, tea.KeyTab, 0)
	if m.focus != focusTitle {
		t.Fatalf("expected tab to wrap to title, focus=%d", m.focus)
	}
}

func TestAddRenameAndRemoveChapters(t *testing.T) {
	m := newTestModel(&fakeSaver{})
	ctrl(m, 'n')
	ctrl(m, 'n')
	if m.Session().Len() != 3 {
		t.Fatalf("expected 3 chapters, got %d", m.Session().Len())
	}
	if idx, ok := m.focusedChapter(); !ok || idx != 2 {
		t.Fatalf("expected focus on the new chapter, focus=%d", m.focus)
	}

	typeText(m, "Epilogue")
	if got := m.Session().ChapterName(2); got != "Epilogue" {
		t.Fatalf("expected live rename, got %q", got)
	}
	if got := m.Session().ChapterName(1); got != "Chapter 2" {
		t.Fatalf("expected untouched chapter to keep its default, got %q", got)
	}

	press(m, tea.KeyUp, 0)
	ctrl(m, 'x')
	if m.Session().Len() != 2 {
		t.Fatalf("expected 2 chapters after remove, got %d", m.Session().Len())
	}
	if got := m.Session().ChapterName(1); got != "Epilogue" {
		t.Fatalf("expected Epilogue to shift up, got %q", got)
	}
	if got := m.chapters[1].Value(); got != "Epilogue" {
		t.Fatalf("expected chapter input to shift with it, got %q", got)
	}
}

func TestRemoveLastChapterBlocked(t *testing.T) {
	m := newTestModel(&fakeSaver{})
	m.setFocus(focusFirstChapter)
	ctrl(m, 'x')
	if m.Session().Len() != 1 {
		t.Fatalf("expected the sole chapter to stay")
	}
	if m.Status() != "A book needs at least one chapter" {
		t.Fatalf("unexpected status %q", m.Status())
	}
}

func TestToggleCompletion(t *testing.T) {
	m := newTestModel(&fakeSaver{})
	ctrl(m, 'n')
	ctrl(m, 'n')
	ctrl(m, 't')

	if m.Session().Progress() != 33 {
		t.Fatalf("expected 33%% progress, got %d", m.Session().Progress())
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "[x] Chapter 3") {
		t.Fatalf("expected completed marker; view=%q", view)
	}
	if !strings.Contains(view, "[ ] Chapter 1  Not completed yet") {
		t.Fatalf("expected pending chapter row; view=%q", view)
	}
	if !strings.Contains(view, "33%") {
		t.Fatalf("expected progress label; view=%q", view)
	}

	ctrl(m, 't')
	if m.Session().CompletedCount() != 0 {
		t.Fatalf("expected toggle back to pending")
	}
}

func TestSaveValidationFocusesField(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(saver)
	typeText(m, "Dune")
	press(m, tea.KeyTab, 0)
	press(m, tea.KeyTab, 0)

	ctrl(m, 's')
	if m.Status() != "Please enter a book author" {
		t.Fatalf("unexpected status %q", m.Status())
	}
	if m.focus != focusAuthor {
		t.Fatalf("expected focus on author, got %d", m.focus)
	}
	if m.Saving() || saver.calls != 0 {
		t.Fatalf("validation failure must not save")
	}
}

func TestSaveRequiresLoadedCover(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(saver)
	typeText(m, "Dune")
	press(m, tea.KeyTab, 0)
	typeText(m, "Frank Herbert")
	press(m, tea.KeyTab, 0)
	typeText(m, "/tmp/dune.png")

	ctrl(m, 's')
	if m.Status() != "Please select a book cover image" {
		t.Fatalf("unexpected status %q", m.Status())
	}
	if saver.calls != 0 {
		t.Fatalf("expected no save without a loaded cover")
	}
}

func TestCoverLoadFailure(t *testing.T) {
	m := newTestModel(&fakeSaver{})
	m.setFocus(focusCover)
	typeText(m, "/tmp/missing.png")
	runCmd(m, press(m, tea.KeyEnter, 0))
	if m.Session().Cover() != nil {
		t.Fatalf("expected no cover after failed load")
	}
	if !strings.Contains(m.Status(), "no such file") {
		t.Fatalf("unexpected status %q", m.Status())
	}
}

func TestEditingPathClearsCover(t *testing.T) {
	m := newTestModel(&fakeSaver{})
	fillForm(m)
	if m.Session().Cover() == nil {
		t.Fatalf("expected cover to load")
	}
	typeText(m, "x")
	if m.Session().Cover() != nil {
		t.Fatalf("expected edited path to drop the loaded cover")
	}
}

func TestSaveSuccessQuits(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(saver)
	fillForm(m)
	if m.Status() != "Cover loaded" {
		t.Fatalf("unexpected status %q", m.Status())
	}

	cmd := ctrl(m, 's')
	if !m.Saving() {
		t.Fatalf("expected saving state")
	}
	ctrl(m, 'n')
	if m.Session().Len() != 1 {
		t.Fatalf("expected input to be ignored while saving")
	}

	next := runCmd(m, cmd)
	if saver.calls != 1 {
		t.Fatalf("expected one save, got %d", saver.calls)
	}
	if m.Saved() == nil || m.Saved().Title != "Dune" {
		t.Fatalf("expected saved book, got %+v", m.Saved())
	}
	if !isQuit(next) {
		t.Fatalf("expected quit after save")
	}
	if m.View() != "" {
		t.Fatalf("expected empty view after quitting")
	}
}

func TestSaveFailureKeepsForm(t *testing.T) {
	saver := &fakeSaver{err: errors.New("app: save \"Dune\": store: write books: disk full")}
	m := newTestModel(saver)
	fillForm(m)

	next := runCmd(m, ctrl(m, 's'))
	if isQuit(next) {
		t.Fatalf("expected editor to stay open after a failed save")
	}
	if m.Saving() {
		t.Fatalf("expected saving state to clear")
	}
	if !strings.Contains(m.Status(), "disk full") {
		t.Fatalf("unexpected status %q", m.Status())
	}
	if m.Session().Title() != "Dune" {
		t.Fatalf("expected form contents to survive")
	}

	saver.err = nil
	if !isQuit(runCmd(m, ctrl(m, 's'))) {
		t.Fatalf("expected retry to save and quit")
	}
}

func TestEscQuitsWithoutSaving(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(saver)
	typeText(m, "Dune")
	if !isQuit(press(m, tea.KeyEscape, 0)) {
		t.Fatalf("expected esc to quit")
	}
	if saver.calls != 0 || m.Saved() != nil {
		t.Fatalf("expected nothing saved")
	}
}

type tickMsg struct{}

func TestSaveRunsOnSnapshot(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(saver)
	fillForm(m)
	m.setFocus(focusTitle)

	cmd := ctrl(m, 's')
	if cmd == nil {
		t.Fatalf("expected save command")
	}
	done := make(chan tea.Msg)
	go func() { done <- cmd() }()
	for i := 0; i < 100; i++ {
		m.Update(tickMsg{})
	}
	m.Update(coverLoadedMsg{path: "/tmp/dune.png"})
	msg := <-done

	if m.Session().Cover() == nil {
		t.Fatalf("expected a late cover message to be ignored while saving")
	}
	if !isQuit(runCmd(m, func() tea.Msg { return msg })) {
		t.Fatalf("expected quit after save")
	}
	if m.Saved() == nil || m.Saved().Title != "Dune" {
		t.Fatalf("expected saved book, got %+v", m.Saved())
	}
}
