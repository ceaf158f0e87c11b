package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/worldart"
	main "github.com/fwojciec/worldart/cmd/worldart"
	"github.com/fwojciec/worldart/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints numbered candidates", func(t *testing.T) {
		t.Parallel()

		var got worldart.SearchRequest
		searcher := &mock.Searcher{
			SearchFn: func(_ context.Context, req worldart.SearchRequest) ([]worldart.Candidate, error) {
				got = req
				return []worldart.Candidate{
					{Name: "Акира", URL: "http://www.world-art.ru/animation/animation.php?id=17"},
					{Name: "Акира (1988)", URL: "http://www.world-art.ru/cinema/cinema.php?id=9"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Searcher: searcher,
		}

		cmd := &main.SearchCmd{Name: "Akira", Sector: "all"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Akira", got.Name)
		assert.Empty(t, got.Sector)
		output := stdout.String()
		assert.Contains(t, output, "1. Акира\n   http://www.world-art.ru/animation/animation.php?id=17")
		assert.Contains(t, output, "2. Акира (1988)")
	})

	t.Run("passes the sector through", func(t *testing.T) {
		t.Parallel()

		var got worldart.SearchRequest
		searcher := &mock.Searcher{
			SearchFn: func(_ context.Context, req worldart.SearchRequest) ([]worldart.Candidate, error) {
				got = req
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Searcher: searcher,
		}

		cmd := &main.SearchCmd{Name: "Akira", Sector: worldart.SectorCinema}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, worldart.SectorCinema, got.Sector)
		assert.Contains(t, stdout.String(), `Nothing found for "Akira"`)
	})

	t.Run("returns search errors", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(_ context.Context, _ worldart.SearchRequest) ([]worldart.Candidate, error) {
				return nil, worldart.Errorf(worldart.ENOTFOUND, "unknown redirect target")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Searcher: searcher,
		}

		cmd := &main.SearchCmd{Name: "Akira", Sector: "all"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: unknown redirect target")
	})
}
