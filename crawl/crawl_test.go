package crawl_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/worldart"
	"github.com/fwojciec/worldart/crawl"
	"github.com/fwojciec/worldart/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemURL(id string) string {
	return "http://www.world-art.ru/animation/animation.php?id=" + id
}

func namingFiller() *mock.Filler {
	return &mock.Filler{
		FillFn: func(_ context.Context, req worldart.FillRequest) (*worldart.Record, error) {
			return &worldart.Record{Name: "item " + req.URL[len(req.URL)-1:], Sources: []string{req.URL}}, nil
		},
	}
}

func TestBatch_FillAll(t *testing.T) {
	t.Parallel()

	t.Run("returns records in input order without a store", func(t *testing.T) {
		t.Parallel()

		b := &crawl.Batch{Filler: namingFiller(), Concurrency: 3}

		result, err := b.FillAll(context.Background(), []string{itemURL("1"), itemURL("2"), itemURL("3")}, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Filled)
		assert.Zero(t, result.Saved)
		require.Len(t, result.Records, 3)
		assert.Equal(t, "item 1", result.Records[0].Name)
		assert.Equal(t, "item 2", result.Records[1].Name)
		assert.Equal(t, "item 3", result.Records[2].Name)
	})

	t.Run("skips repeated and empty urls", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		calls := map[string]int{}
		b := &crawl.Batch{
			Filler: &mock.Filler{
				FillFn: func(_ context.Context, req worldart.FillRequest) (*worldart.Record, error) {
					mu.Lock()
					calls[req.URL]++
					mu.Unlock()
					return &worldart.Record{Sources: []string{req.URL}}, nil
				},
			},
		}

		result, err := b.FillAll(context.Background(), []string{itemURL("1"), " ", itemURL("1") + " ", itemURL("2")}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Filled)
		assert.Equal(t, 2, result.Skipped)
		assert.Equal(t, map[string]int{itemURL("1"): 1, itemURL("2"): 1}, calls)
	})

	t.Run("passes frames flag to filler", func(t *testing.T) {
		t.Parallel()

		b := &crawl.Batch{
			Frames: true,
			Filler: &mock.Filler{
				FillFn: func(_ context.Context, req worldart.FillRequest) (*worldart.Record, error) {
					assert.True(t, req.Frames)
					return &worldart.Record{Name: "x"}, nil
				},
			},
		}

		_, err := b.FillAll(context.Background(), []string{itemURL("1")}, nil)

		require.NoError(t, err)
	})

	t.Run("counts failed and rejected pages", func(t *testing.T) {
		t.Parallel()

		b := &crawl.Batch{
			Filler: &mock.Filler{
				FillFn: func(_ context.Context, req worldart.FillRequest) (*worldart.Record, error) {
					switch req.URL {
					case itemURL("1"):
						return nil, worldart.Errorf(worldart.ESTRUCTURE, "incorrect data structure at %s", req.URL)
					case itemURL("2"):
						return nil, nil
					}
					return &worldart.Record{Name: "ok"}, nil
				},
			},
		}

		result, err := b.FillAll(context.Background(), []string{itemURL("1"), itemURL("2"), itemURL("3")}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Filled)
		assert.Equal(t, 2, result.Failed)
	})

	t.Run("creates new records and completes stored ones", func(t *testing.T) {
		t.Parallel()

		stored := &worldart.Record{ID: "rec-1", Name: "Бибоп", Sources: []string{itemURL("1")}}
		var created, updated []*worldart.Record
		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, filter worldart.RecordFilter) ([]*worldart.Record, error) {
				require.NotNil(t, filter.Source)
				if *filter.Source == itemURL("1") {
					return []*worldart.Record{stored}, nil
				}
				return nil, nil
			},
			CreateRecordFn: func(_ context.Context, rec *worldart.Record) error {
				created = append(created, rec)
				return nil
			},
			UpdateRecordFn: func(_ context.Context, rec *worldart.Record) error {
				updated = append(updated, rec)
				return nil
			},
		}
		b := &crawl.Batch{
			Filler: &mock.Filler{
				FillFn: func(_ context.Context, req worldart.FillRequest) (*worldart.Record, error) {
					return &worldart.Record{Name: "Ковбой Бибоп", Country: "JP", Sources: []string{req.URL}}, nil
				},
			},
			Records:     records,
			Concurrency: 1,
		}

		result, err := b.FillAll(context.Background(), []string{itemURL("1"), itemURL("2")}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Updated)
		require.Len(t, created, 1)
		assert.Equal(t, []string{itemURL("2")}, created[0].Sources)
		require.Len(t, updated, 1)
		assert.Equal(t, "Бибоп", updated[0].Name)
		assert.Equal(t, "JP", updated[0].Country)
		assert.Equal(t, []string{"Ковбой Бибоп"}, updated[0].Names)
		assert.Same(t, stored, result.Records[0])
	})

	t.Run("counts storage errors as failures", func(t *testing.T) {
		t.Parallel()

		b := &crawl.Batch{
			Filler: namingFiller(),
			Records: &mock.RecordService{
				FindRecordsFn: func(context.Context, worldart.RecordFilter) ([]*worldart.Record, error) {
					return nil, errors.New("database is locked")
				},
			},
		}

		result, err := b.FillAll(context.Background(), []string{itemURL("1")}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Filled)
		assert.Equal(t, 1, result.Failed)
		assert.Empty(t, result.Records)
	})

	t.Run("calls progress callback with events", func(t *testing.T) {
		t.Parallel()

		b := &crawl.Batch{
			Filler: &mock.Filler{
				FillFn: func(_ context.Context, req worldart.FillRequest) (*worldart.Record, error) {
					if req.URL == itemURL("2") {
						return nil, errors.New("HTTP 503")
					}
					return &worldart.Record{Name: "x"}, nil
				},
			},
			Concurrency: 1,
		}

		var events []crawl.ProgressEvent
		_, err := b.FillAll(context.Background(), []string{itemURL("1"), itemURL("2")}, func(e crawl.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4) // Started, two per-URL events, Finished

		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)

		var failed []crawl.ProgressEvent
		for _, e := range events[1:3] {
			if e.Type == crawl.ProgressFailed {
				failed = append(failed, e)
			}
		}
		require.Len(t, failed, 1)
		assert.Equal(t, itemURL("2"), failed[0].URL)
		assert.EqualError(t, failed[0].Error, "HTTP 503")
		assert.Equal(t, 2, events[2].Completed)

		assert.Equal(t, crawl.ProgressFinished, events[3].Type)
		assert.Equal(t, 2, events[3].Total)
	})

	t.Run("reports context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		b := &crawl.Batch{
			Filler: &mock.Filler{
				FillFn: func(ctx context.Context, _ worldart.FillRequest) (*worldart.Record, error) {
					return nil, ctx.Err()
				},
			},
		}

		result, err := b.FillAll(ctx, []string{itemURL("1")}, nil)

		assert.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, result)
		assert.Equal(t, 1, result.Failed)
	})
}
