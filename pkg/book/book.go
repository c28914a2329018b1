// Package book defines the persisted Book record and its chapters.
package book

import (
	"fmt"
	"math"
	"strings"
)

// Book is one tracked book. It is written once, as a unit, when the editor
// saves it.
type Book struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	CoverImage string    `json:"coverImage"`
	Chapters   []Chapter `json:"chapters"`
	DateAdded  Timestamp `json:"dateAdded"`
}

// Chapter is owned by its Book and identified only by its position.
// CompletedDate is set iff Completed.
type Chapter struct {
	Name          string     `json:"name"`
	Completed     bool       `json:"completed"`
	CompletedDate *Timestamp `json:"completedDate,omitempty"`
}

// DefaultChapterName is the name a chapter at index takes when left blank.
func DefaultChapterName(index int) string {
	return fmt.Sprintf("Chapter %d", index+1)
}

// Progress returns round(100*completed/total), or 0 for no chapters.
func Progress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// CompletedCount counts chapters marked complete.
func (b *Book) CompletedCount() int {
	n := 0
	for _, c := range b.Chapters {
		if c.Completed {
			n++
		}
	}
	return n
}

// Progress is the completion percentage of the book.
func (b *Book) Progress() int {
	return Progress(b.CompletedCount(), len(b.Chapters))
}

// Finished reports whether every chapter is complete.
func (b *Book) Finished() bool {
	return len(b.Chapters) > 0 && b.CompletedCount() == len(b.Chapters)
}

// NormalizeTerm lowercases and trims a raw search input.
func NormalizeTerm(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Matches tests an already normalised term against title or author.
func (b *Book) Matches(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Author), term)
}

func (b *Book) String() string {
	return fmt.Sprintf("%s by %s", b.Title, b.Author)
}
