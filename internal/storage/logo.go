// Package storage persists uploaded start-up logos and returns the public URL
// under which each logo is served.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/pkazala/work20/internal/domain"
)

// LogoStore saves logo images.
type LogoStore interface {
	// Put stores the image and returns its public URL.
	Put(ctx context.Context, logo Upload) (string, error)
}

// Upload is a logo file chosen in an admin form, read fully into memory.
// Logos are small and the request body is already capped by MAX_UPLOAD_BYTES.
type Upload struct {
	Filename string
	Data     []byte
}

// ReadUpload reads r into an Upload.
func ReadUpload(filename string, r io.Reader) (Upload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Upload{}, fmt.Errorf("storage.ReadUpload: %w", err)
	}
	return Upload{Filename: filename, Data: data}, nil
}

// logoTypes are the raster formats accepted as logos. SVG is left out: logos
// are served from the site's own origin and an SVG can carry script.
var logoTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

// sniff validates that the upload is an accepted image and returns its MIME
// type and file extension (with the leading dot).
func sniff(u Upload) (contentType, ext string, err error) {
	if len(u.Data) == 0 {
		return "", "", fmt.Errorf("%w: logo file is empty", domain.ErrValidation)
	}
	m := mimetype.Detect(u.Data)
	for _, t := range logoTypes {
		if m.Is(t) {
			return t, m.Extension(), nil
		}
	}
	return "", "", fmt.Errorf("%w: logo must be a PNG, JPEG, WebP or GIF image, got %s", domain.ErrValidation, m.String())
}

// objectName is the storage name for a new logo. Names are random so a
// replaced logo never collides with a cached copy of the old one.
func objectName(ext string) string {
	return "logos/" + uuid.NewString() + ext
}
