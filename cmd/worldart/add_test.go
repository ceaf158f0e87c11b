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

// completerFunc adapts a function to main.Completer.
type completerFunc func(ctx context.Context, rec *worldart.Record) error

func (f completerFunc) Complete(ctx context.Context, rec *worldart.Record) error {
	return f(ctx, rec)
}

func TestAddCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("completes and stores the record", func(t *testing.T) {
		t.Parallel()

		completer := completerFunc(func(_ context.Context, rec *worldart.Record) error {
			worldart.FillEmpty(rec, &worldart.Record{
				Name:    "Ковбой Бибоп",
				Names:   []string{"Cowboy Bebop"},
				Summary: "2071 год.",
				Sources: []string{bebopURL},
			})
			return nil
		})
		var created *worldart.Record
		records := &mock.RecordService{
			CreateRecordFn: func(_ context.Context, rec *worldart.Record) error {
				rec.ID = "rec-1"
				created = rec
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Records:   records,
			Completer: completer,
		}

		cmd := &main.AddCmd{Source: bebopURL, Name: "Bebop"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Bebop", created.Name)
		assert.Equal(t, []string{"Ковбой Бибоп", "Cowboy Bebop"}, created.Names)
		assert.Equal(t, "2071 год.", created.Summary)
		assert.Equal(t, []string{bebopURL}, created.Sources)
		assert.Contains(t, stdout.String(), `Added record "Bebop" (rec-1)`)
	})

	t.Run("does not store when completion fails", func(t *testing.T) {
		t.Parallel()

		completer := completerFunc(func(_ context.Context, _ *worldart.Record) error {
			return worldart.Errorf(worldart.ESTRUCTURE, "body block not found")
		})
		records := &mock.RecordService{
			CreateRecordFn: func(_ context.Context, _ *worldart.Record) error {
				t.Fatal("CreateRecord should not be called")
				return nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Records:   records,
			Completer: completer,
		}

		cmd := &main.AddCmd{Source: bebopURL}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "body block not found")
	})
}
