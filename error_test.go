package worldart_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/worldart"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := worldart.Errorf(worldart.ENOTFOUND, "record %q not found", "test")

	assert.Equal(t, worldart.ENOTFOUND, worldart.ErrorCode(err))
	assert.Equal(t, "record \"test\" not found", worldart.ErrorMessage(err))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("filling page: %w", worldart.Errorf(worldart.ESTRUCTURE, "body block not found"))

	assert.Equal(t, worldart.ESTRUCTURE, worldart.ErrorCode(err))
	assert.Equal(t, "body block not found", worldart.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, worldart.EINTERNAL, worldart.ErrorCode(err))
	assert.Equal(t, "Internal error", worldart.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, worldart.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, worldart.ErrorMessage(nil))
}
