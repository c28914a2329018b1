// Package editor holds the state of one book being assembled before save.
package editor

import (
	"maps"
	"slices"
	"sort"
	"strings"
	"time"

	"tableflip.dev/shelf/pkg/book"
	"tableflip.dev/shelf/pkg/cover"
)

const notCompletedLabel = "Not completed yet"

// Session owns the editor state for a single book. It is not safe for
// concurrent use; the UI loop is its only writer.
type Session struct {
	title  string
	author string
	cover  *cover.Image

	// names holds user-entered chapter names; "" means the chapter follows
	// its positional default.
	names []string
	// completed maps chapter index to the moment it was marked complete.
	completed map[int]time.Time

	now func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the clock used to stamp completions and DateAdded.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New starts a session with a single default chapter.
func New(opts ...Option) *Session {
	s := &Session{
		names:     []string{""},
		completed: make(map[int]time.Time),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clone returns an independent copy of the session. The cover image is
// shared; it is never modified after loading.
func (s *Session) Clone() *Session {
	c := *s
	c.names = slices.Clone(s.names)
	c.completed = maps.Clone(s.completed)
	return &c
}

// ChapterView is the rendered state of one chapter.
type ChapterView struct {
	Index       int
	Name        string
	Completed   bool
	CompletedAt time.Time
	DateLabel   string
}

// Len is the number of chapters.
func (s *Session) Len() int {
	return len(s.names)
}

// ChapterName returns the effective name at index.
func (s *Session) ChapterName(index int) string {
	if index < 0 || index >= len(s.names) {
		return ""
	}
	if s.names[index] == "" {
		return book.DefaultChapterName(index)
	}
	return s.names[index]
}

// Chapter returns the view of a single chapter.
func (s *Session) Chapter(index int) (ChapterView, bool) {
	if index < 0 || index >= len(s.names) {
		return ChapterView{}, false
	}
	v := ChapterView{
		Index:     index,
		Name:      s.ChapterName(index),
		DateLabel: notCompletedLabel,
	}
	if at, ok := s.completed[index]; ok {
		v.Completed = true
		v.CompletedAt = at
		v.DateLabel = book.FormatDate(at)
	}
	return v, true
}

// Chapters returns every chapter in order.
func (s *Session) Chapters() []ChapterView {
	out := make([]ChapterView, 0, len(s.names))
	for i := range s.names {
		v, _ := s.Chapter(i)
		out = append(out, v)
	}
	return out
}

// AddChapter appends a default-named chapter and returns its index.
func (s *Session) AddChapter() int {
	s.names = append(s.names, "")
	return len(s.names) - 1
}

// RenameChapter sets the name at index. A blank name reverts the chapter to
// its positional default.
func (s *Session) RenameChapter(index int, name string) bool {
	if index < 0 || index >= len(s.names) {
		return false
	}
	if strings.TrimSpace(name) == "" {
		name = ""
	}
	s.names[index] = name
	return true
}

// CanRemove reports whether a chapter may be removed; the last one may not.
func (s *Session) CanRemove() bool {
	return len(s.names) > 1
}

// RemoveChapter deletes the chapter at index and re-indexes the completion
// set. It is a no-op when only one chapter remains.
func (s *Session) RemoveChapter(index int) bool {
	if !s.CanRemove() || index < 0 || index >= len(s.names) {
		return false
	}
	s.names = append(s.names[:index], s.names[index+1:]...)

	shifted := make(map[int]time.Time, len(s.completed))
	for i, at := range s.completed {
		switch {
		case i == index:
			continue
		case i > index:
			shifted[i-1] = at
		default:
			shifted[i] = at
		}
	}
	s.completed = shifted
	return true
}

// SetCompletion marks the chapter at index complete or incomplete. The
// completion stamp is taken on the transition to complete only.
func (s *Session) SetCompletion(index int, done bool) bool {
	if index < 0 || index >= len(s.names) {
		return false
	}
	if !done {
		delete(s.completed, index)
		return true
	}
	if _, ok := s.completed[index]; !ok {
		s.completed[index] = s.now()
	}
	return true
}

// ToggleCompletion flips the completion state at index.
func (s *Session) ToggleCompletion(index int) bool {
	_, done := s.completed[index]
	return s.SetCompletion(index, !done)
}

// CompletedIndexes returns the completion set in ascending order.
func (s *Session) CompletedIndexes() []int {
	out := make([]int, 0, len(s.completed))
	for i := range s.completed {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// CompletedCount is the size of the completion set.
func (s *Session) CompletedCount() int {
	return len(s.completed)
}

// Progress is round(100*completed/total).
func (s *Session) Progress() int {
	return book.Progress(len(s.completed), len(s.names))
}
