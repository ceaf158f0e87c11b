package fs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/worldart"
	"github.com/fwojciec/worldart/bloom"
)

// Ensure ImageStore implements worldart.ImageStore at compile time.
var _ worldart.ImageStore = (*ImageStore)(nil)

// ImageStore keeps images as files below a root directory. Keys are
// slash-separated relative paths such as "world-art/1/1.jpg" and are
// returned unchanged as references.
type ImageStore struct {
	root  string
	known *bloom.Filter
}

// NewImageStore creates an ImageStore rooted at root and indexes the
// images already stored there.
func NewImageStore(root string) (*ImageStore, error) {
	s := &ImageStore{
		root:  root,
		known: bloom.NewFilter(100000, 0.01),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		s.known.Add(filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ImageStore) path(key string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(key)) {
		return "", worldart.Errorf(worldart.EINVALID, "invalid image key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// HasImage reports whether an image is stored under key.
func (s *ImageStore) HasImage(key string) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}
	if !s.known.Test(key) {
		return false, nil
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SaveImage writes the image read from r under key, replacing any
// existing image.
func (s *ImageStore) SaveImage(key string, r io.Reader) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := writeAtomic(path, r); err != nil {
		return "", err
	}
	s.known.Add(key)
	return key, nil
}
