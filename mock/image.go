package mock

import (
	"context"
	"io"

	"github.com/fwojciec/worldart"
)

var (
	_ worldart.ImageDownloader = (*ImageDownloader)(nil)
	_ worldart.ImageStore      = (*ImageStore)(nil)
)

// ImageDownloader is a mock implementation of worldart.ImageDownloader.
type ImageDownloader struct {
	StoreFn func(ctx context.Context, remoteURL, key string) (string, error)
}

func (d *ImageDownloader) Store(ctx context.Context, remoteURL, key string) (string, error) {
	return d.StoreFn(ctx, remoteURL, key)
}

// ImageStore is a mock implementation of worldart.ImageStore.
type ImageStore struct {
	HasImageFn  func(key string) (bool, error)
	SaveImageFn func(key string, r io.Reader) (string, error)
}

func (s *ImageStore) HasImage(key string) (bool, error) {
	return s.HasImageFn(key)
}

func (s *ImageStore) SaveImage(key string, r io.Reader) (string, error) {
	return s.SaveImageFn(key, r)
}
