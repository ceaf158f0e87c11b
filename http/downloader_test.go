package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/worldart"
	wahttp "github.com/fwojciec/worldart/http"
	"github.com/fwojciec/worldart/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryStore(saved map[string][]byte) *mock.ImageStore {
	return &mock.ImageStore{
		HasImageFn: func(key string) (bool, error) {
			_, ok := saved[key]
			return ok, nil
		},
		SaveImageFn: func(key string, r io.Reader) (string, error) {
			b, err := io.ReadAll(r)
			if err != nil {
				return "", err
			}
			saved[key] = b
			return key, nil
		},
	}
}

func TestDownloader_Store(t *testing.T) {
	t.Parallel()

	t.Run("saves downloaded image under key", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/animation/img/1000/1/1.jpg", r.URL.Path)
			_, _ = w.Write([]byte("JPEG"))
		}))
		defer server.Close()

		saved := map[string][]byte{}
		d := wahttp.NewDownloader(server.Client(), memoryStore(saved))

		ref, err := d.Store(context.Background(), server.URL+"/animation/img/1000/1/1.jpg", "world-art/1/1.jpg")

		require.NoError(t, err)
		assert.Equal(t, "world-art/1/1.jpg", ref)
		assert.Equal(t, []byte("JPEG"), saved["world-art/1/1.jpg"])
	})

	t.Run("skips download of stored image", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		}))
		defer server.Close()

		saved := map[string][]byte{"world-art/1/1.jpg": []byte("old")}
		d := wahttp.NewDownloader(server.Client(), memoryStore(saved))

		ref, err := d.Store(context.Background(), server.URL+"/1.jpg", "world-art/1/1.jpg")

		require.NoError(t, err)
		assert.Equal(t, "world-art/1/1.jpg", ref)
		assert.Equal(t, []byte("old"), saved["world-art/1/1.jpg"])
	})

	t.Run("fails on missing image", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		saved := map[string][]byte{}
		d := wahttp.NewDownloader(server.Client(), memoryStore(saved))

		_, err := d.Store(context.Background(), server.URL+"/1.jpg", "world-art/1/1.jpg")

		require.Error(t, err)
		assert.Equal(t, worldart.ENOTFOUND, worldart.ErrorCode(err))
		assert.Empty(t, saved)
	})
}
