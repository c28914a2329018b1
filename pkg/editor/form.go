package editor

import (
	"fmt"
	"strings"

	"tableflip.dev/shelf/pkg/book"
	"tableflip.dev/shelf/pkg/cover"
)

// Field names a form input that can fail validation.
type Field int

const (
	FieldTitle Field = iota
	FieldAuthor
	FieldCover
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldAuthor:
		return "author"
	case FieldCover:
		return "cover"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// ValidationError reports the first required field that is missing.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SetTitle updates the title input.
func (s *Session) SetTitle(title string) {
	s.title = title
}

// SetAuthor updates the author input.
func (s *Session) SetAuthor(author string) {
	s.author = author
}

// SetCover records the loaded cover image, nil clears it.
func (s *Session) SetCover(img *cover.Image) {
	s.cover = img
}

func (s *Session) Title() string {
	return s.title
}

func (s *Session) Author() string {
	return s.author
}

func (s *Session) Cover() *cover.Image {
	return s.cover
}

// PreviewTitle is the title shown on the live preview card.
func (s *Session) PreviewTitle() string {
	if s.title == "" {
		return "Book Title"
	}
	return s.title
}

// PreviewAuthor is the byline shown on the live preview card.
func (s *Session) PreviewAuthor() string {
	if s.author == "" {
		return "by Author Name"
	}
	return "by " + s.author
}

// Validate checks title, author and cover in that order and returns the
// first failure as a *ValidationError.
func (s *Session) Validate() error {
	switch {
	case strings.TrimSpace(s.title) == "":
		return &ValidationError{Field: FieldTitle, Message: "Please enter a book title"}
	case strings.TrimSpace(s.author) == "":
		return &ValidationError{Field: FieldAuthor, Message: "Please enter a book author"}
	case s.cover == nil:
		return &ValidationError{Field: FieldCover, Message: "Please select a book cover image"}
	}
	return nil
}

// Build validates the session and snapshots it into a Book with the given id.
func (s *Session) Build(id string) (*book.Book, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	chapters := make([]book.Chapter, 0, len(s.names))
	for _, v := range s.Chapters() {
		c := book.Chapter{Name: v.Name, Completed: v.Completed}
		if v.Completed {
			ts := book.Stamp(v.CompletedAt)
			c.CompletedDate = &ts
		}
		chapters = append(chapters, c)
	}
	return &book.Book{
		ID:         id,
		Title:      strings.TrimSpace(s.title),
		Author:     strings.TrimSpace(s.author),
		CoverImage: s.cover.DataURI,
		Chapters:   chapters,
		DateAdded:  book.Stamp(s.now()),
	}, nil
}
