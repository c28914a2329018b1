// Package store persists the book collection in a diskv key-value directory.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog/log"

	"tableflip.dev/shelf/pkg/book"
	"tableflip.dev/shelf/pkg/errs"
)

// BooksKey is the fixed key holding the whole collection.
const BooksKey = "books"

// Persistence defines the persistence contract for the book collection.
type Persistence interface {
	// Books returns the stored collection. Missing or corrupt data reads as
	// an empty collection.
	Books(ctx context.Context) []*book.Book
	// Append adds one book and writes the whole collection back.
	Append(ctx context.Context, b *book.Book) error
	Watch(ctx context.Context) (<-chan Event, error)
	BasePath() string
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) BasePath() string {
	return p.basePath
}

func (p *persistence) Books(_ context.Context) []*book.Book {
	books, err := p.read()
	if err != nil {
		log.Debug().Err(err).Str("key", BooksKey).Msg("store: unreadable collection, treating as empty")
		return []*book.Book{}
	}
	return books
}

// read always goes to disk; other processes write the same directory.
func (p *persistence) read() (books []*book.Book, err error) {
	if !p.d.Has(BooksKey) {
		return []*book.Book{}, nil
	}
	rc, err := p.d.ReadStream(BooksKey, true)
	if err != nil {
		return nil, err
	}
	defer errs.Capture(&err, rc.Close, "store: close")

	val, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return decodeBooks(val)
}

func (p *persistence) Append(ctx context.Context, b *book.Book) error {
	if b == nil {
		return errors.New("store: nil book")
	}
	all := p.Books(ctx)
	all = append(all, b)
	data, err := encodeBooks(all)
	if err != nil {
		return fmt.Errorf("store: encode books: %w", err)
	}
	if err := p.d.Write(BooksKey, data); err != nil {
		return fmt.Errorf("store: write books: %w", err)
	}
	log.Debug().Str("id", b.ID).Int("count", len(all)).Msg("store: wrote collection")
	return nil
}

func decodeBooks(data []byte) ([]*book.Book, error) {
	if len(data) == 0 {
		return []*book.Book{}, nil
	}
	var list []*book.Book
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	out := make([]*book.Book, 0, len(list))
	for _, b := range list {
		if b != nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func encodeBooks(books []*book.Book) ([]byte, error) {
	return json.MarshalIndent(books, "", "  ")
}
