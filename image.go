package worldart

import (
	"context"
	"io"
)

// ImageDownloader retrieves a remote image and stores it under a local key.
type ImageDownloader interface {
	// Store downloads remoteURL and saves it as key. It returns the local
	// reference of the stored image.
	Store(ctx context.Context, remoteURL, key string) (ref string, err error)
}

// ImageStore persists image bytes under local keys.
type ImageStore interface {
	// HasImage reports whether an image is stored under key.
	HasImage(key string) (bool, error)

	// SaveImage writes the image read from r under key and returns its reference.
	SaveImage(key string, r io.Reader) (ref string, err error)
}
