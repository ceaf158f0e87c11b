package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/worldart"
	main "github.com/fwojciec/worldart/cmd/worldart"
	"github.com/fwojciec/worldart/etree"
	"github.com/fwojciec/worldart/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bebopRecord() *worldart.Record {
	return &worldart.Record{
		ID:       "rec-1",
		Name:     "Ковбой Бибоп",
		Type:     worldart.TypeTV,
		Episodes: worldart.EpisodeCount{N: 26},
		Genres:   []string{"Action"},
		Sources:  []string{bebopURL},
	}
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the formatted record", func(t *testing.T) {
		t.Parallel()

		var updated *worldart.Record
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Records: storedRecords(bebopRecord(), &updated),
		}

		err := (&main.ShowCmd{ID: "rec-1"}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "ID: rec-1")
		assert.Contains(t, output, "Name: Ковбой Бибоп")
		assert.Contains(t, output, "Episodes: 26")
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		var updated *worldart.Record
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Records: storedRecords(bebopRecord(), &updated),
		}

		err := (&main.ShowCmd{ID: "missing"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, worldart.ENOTFOUND, worldart.ErrorCode(err))
		assert.Contains(t, stderr.String(), "record not found")
	})
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes NFO to stdout", func(t *testing.T) {
		t.Parallel()

		var updated *worldart.Record
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Records:  storedRecords(bebopRecord(), &updated),
			Exporter: etree.NewEncoder(),
		}

		err := (&main.ExportCmd{ID: "rec-1"}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "<tvshow>")
		assert.Contains(t, output, "<title>Ковбой Бибоп</title>")
		assert.Contains(t, output, "<genre>Action</genre>")
	})

	t.Run("writes NFO to a file", func(t *testing.T) {
		t.Parallel()

		var updated *worldart.Record
		path := filepath.Join(t.TempDir(), "tvshow.nfo")
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Records:  storedRecords(bebopRecord(), &updated),
			Exporter: etree.NewEncoder(),
		}

		err := (&main.ExportCmd{ID: "rec-1", Output: path}).Run(deps)

		require.NoError(t, err)
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), "<uniqueid type=\"world-art\" default=\"true\">1</uniqueid>")
		assert.Contains(t, stdout.String(), "Exported")
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		err := (&main.DeleteCmd{ID: "rec-1"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, worldart.EINVALID, worldart.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes the record", func(t *testing.T) {
		t.Parallel()

		var deleted string
		records := &mock.RecordService{
			FindRecordByIDFn: func(_ context.Context, id string) (*worldart.Record, error) {
				return bebopRecord(), nil
			},
			DeleteRecordFn: func(_ context.Context, id string) error {
				deleted = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		err := (&main.DeleteCmd{ID: "rec-1", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "rec-1", deleted)
		assert.Contains(t, stdout.String(), `Deleted record "Ковбой Бибоп"`)
	})
}
