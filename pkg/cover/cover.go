// Package cover turns a user-selected image file into a displayable cover.
package cover

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp" // register decoder

	"tableflip.dev/shelf/pkg/errs"
)

// Image is a loaded cover ready to embed in a Book record.
type Image struct {
	Name    string
	Path    string
	MIME    string
	DataURI string
	Size    int64
	// Width and Height are zero when the bytes are not a decodable image.
	Width  int
	Height int
}

// Load reads the file at path. Any readable file is accepted; type and size
// are not checked.
func Load(path string) (*Image, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("cover: no file selected")
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("cover: %w", err)
	}
	return read(path, f)
}

// read consumes and closes rc. A failed close discards the image.
func read(path string, rc io.ReadCloser) (img *Image, err error) {
	defer func() {
		errs.Capture(&err, rc.Close, "cover: close")
		if err != nil {
			img = nil
		}
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("cover: read %s: %w", path, err)
	}
	img = FromBytes(filepath.Base(path), data)
	img.Path = path
	return img, nil
}

// FromBytes builds an Image from raw file contents.
func FromBytes(name string, data []byte) *Image {
	mime := mimetype.Detect(data).String()
	// Drop parameters such as "; charset=utf-8", they are not valid in a
	// data URI media type.
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	img := &Image{
		Name:    name,
		MIME:    mime,
		Size:    int64(len(data)),
		DataURI: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width = cfg.Width
		img.Height = cfg.Height
	}
	return img
}

// Describe summarises the cover for a preview line, e.g.
// "cover.png · image/png · 300×450".
func (i *Image) Describe() string {
	if i == nil {
		return "No cover selected"
	}
	parts := []string{i.Name, i.MIME}
	if i.Width > 0 && i.Height > 0 {
		parts = append(parts, fmt.Sprintf("%d×%d", i.Width, i.Height))
	}
	return strings.Join(parts, " · ")
}
