package worldart_test

import (
	"testing"

	"github.com/fwojciec/worldart"
	"github.com/stretchr/testify/assert"
)

func TestStatusError(t *testing.T) {
	t.Parallel()

	t.Run("formats status and url", func(t *testing.T) {
		t.Parallel()

		err := &worldart.StatusError{StatusCode: 404, URL: "http://www.world-art.ru/animation/animation.php?id=0"}

		assert.EqualError(t, err, "HTTP 404 for http://www.world-art.ru/animation/animation.php?id=0")
	})

	t.Run("treats server errors and throttling as temporary", func(t *testing.T) {
		t.Parallel()

		for code, want := range map[int]bool{400: false, 403: false, 404: false, 408: true, 429: true, 500: true, 503: true} {
			assert.Equal(t, want, (&worldart.StatusError{StatusCode: code}).Temporary(), "status %d", code)
		}
	})
}
