// Package app wires editor sessions and the persisted collection together so
// the CLI and both terminal screens share one save/load path.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"tableflip.dev/shelf/pkg/book"
	"tableflip.dev/shelf/pkg/editor"
	"tableflip.dev/shelf/pkg/store"
)

// ErrNoPersistence is returned by every operation when the Service has no
// store configured.
var ErrNoPersistence = errors.New("app: no persistence configured")

// Service provides high-level operations over the book collection.
type Service struct {
	Persistence store.Persistence
	// NewID generates book ids; defaults to a random UUID.
	NewID func() string
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// Save validates the session, builds a Book and appends it to the
// collection. Validation failures are returned as *editor.ValidationError
// and nothing is written.
func (s *Service) Save(ctx context.Context, session *editor.Session) (*book.Book, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	if session == nil {
		return nil, errors.New("app: no editor session")
	}
	b, err := session.Build(s.newID())
	if err != nil {
		return nil, err
	}
	if err := s.Persistence.Append(ctx, b); err != nil {
		log.Error().Err(err).Str("title", b.Title).Msg("save failed")
		return nil, fmt.Errorf("app: save %q: %w", b.Title, err)
	}
	log.Info().Str("id", b.ID).Str("title", b.Title).Int("chapters", len(b.Chapters)).Msg("book saved")
	return b, nil
}

// Books returns the stored collection in stored order.
func (s *Service) Books(ctx context.Context) ([]*book.Book, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Books(ctx), nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Stats are the landing page counters.
type Stats struct {
	Books             int `json:"books"`
	Chapters          int `json:"chapters"`
	CompletedChapters int `json:"completedChapters"`
	FinishedBooks     int `json:"finishedBooks"`
}

// Progress is the completion percentage across every stored chapter.
func (st Stats) Progress() int {
	return book.Progress(st.CompletedChapters, st.Chapters)
}

// Stats totals the stored collection.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	books, err := s.Books(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Books:             len(books),
		Chapters:          lo.SumBy(books, func(b *book.Book) int { return len(b.Chapters) }),
		CompletedChapters: lo.SumBy(books, func(b *book.Book) int { return b.CompletedCount() }),
		FinishedBooks:     lo.CountBy(books, func(b *book.Book) bool { return b.Finished() }),
	}, nil
}
