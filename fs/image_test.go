package fs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/worldart"
	"github.com/fwojciec/worldart/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Local Image Storage
// Covers and frames are kept as files keyed by their catalog path

func TestImageStore_SaveWritesFileUnderKey(t *testing.T) {
	t.Parallel()

	// Given an empty store
	root := t.TempDir()
	store, err := fs.NewImageStore(root)
	require.NoError(t, err)

	// When I save a cover
	ref, err := store.SaveImage("world-art/1/1.jpg", strings.NewReader("JPEG"))

	// Then the key is returned as reference
	require.NoError(t, err)
	assert.Equal(t, "world-art/1/1.jpg", ref)

	// And the file holds the image bytes
	b, err := os.ReadFile(filepath.Join(root, "world-art", "1", "1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "JPEG", string(b))

	// And the store reports it
	ok, err := store.HasImage("world-art/1/1.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestImageStore_HasImageIsFalseForUnknownKey(t *testing.T) {
	t.Parallel()

	store, err := fs.NewImageStore(t.TempDir())
	require.NoError(t, err)

	ok, err := store.HasImage("world-art/2/1.jpg")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestImageStore_IndexesExistingImages(t *testing.T) {
	t.Parallel()

	// Given a directory with an image saved by an earlier run
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "world-art", "7"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "world-art", "7", "3.png"), []byte("PNG"), 0644))

	// When I open a store on it
	store, err := fs.NewImageStore(root)
	require.NoError(t, err)

	// Then the image is known
	ok, err := store.HasImage("world-art/7/3.png")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestImageStore_CreatesMissingRoot(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "images")
	store, err := fs.NewImageStore(root)
	require.NoError(t, err)

	_, err = store.SaveImage("world-art/1/1.jpg", strings.NewReader("JPEG"))

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "world-art", "1", "1.jpg"))
}

func TestImageStore_RejectsKeysOutsideRoot(t *testing.T) {
	t.Parallel()

	store, err := fs.NewImageStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.SaveImage("../escape.jpg", strings.NewReader("x"))
	assert.Equal(t, worldart.EINVALID, worldart.ErrorCode(err))

	_, err = store.HasImage("/etc/passwd")
	assert.Equal(t, worldart.EINVALID, worldart.ErrorCode(err))
}
