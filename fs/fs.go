// Package fs provides file-based storage for catalog images and a page cache.
package fs

import (
	"io"
	"os"
	"path/filepath"
)

// writeAtomic writes the content of r to path through a temporary file in
// the same directory, renamed into place once complete.
func writeAtomic(path string, r io.Reader) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
