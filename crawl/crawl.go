// Package crawl fills catalog records in bulk.
// It coordinates throttled, retried fetching, extraction and storage
// of many item pages.
package crawl

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/worldart"
	"github.com/fwojciec/worldart/bloom"
	"golang.org/x/sync/errgroup"
)

// Seen-URL filter configuration.
const (
	seenFalsePositiveRate = 0.0001
	defaultConcurrency    = 4
)

// Batch fills many item pages concurrently and stores the records.
type Batch struct {
	Filler worldart.Filler

	// Records stores filled records. Nil returns them without storing.
	Records worldart.RecordService

	Concurrency int

	// Frames requests frame harvesting for every page.
	Frames bool
}

// Result holds the outcome of a batch fill.
type Result struct {
	Filled  int
	Saved   int
	Updated int
	Failed  int
	Skipped int

	// Records are the filled (and, when stored, saved) records in input order.
	Records []*worldart.Record
}

// ProgressEvent reports progress during a batch fill.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// fillResult holds the outcome of filling a single URL.
type fillResult struct {
	position int
	url      string
	rec      *worldart.Record
	err      error
}

// FillAll fills every distinct URL of urls. Repeated URLs are skipped.
// The progress callback, if provided, receives events as filling proceeds.
func (b *Batch) FillAll(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	result := &Result{}
	unique := b.dedup(urls, result)
	total := len(unique)

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	resultCh := make(chan fillResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range unique {
			g.Go(func() error {
				resultCh <- b.fill(gctx, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]fillResult, total)
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       r.url,
		}
		if r.err != nil {
			event.Type = ProgressFailed
			event.Error = r.err
		}
		progress(event)
	}

	for _, r := range results {
		if r.err != nil {
			result.Failed++
			continue
		}
		result.Filled++

		rec := r.rec
		if b.Records != nil {
			stored, created, err := b.store(ctx, r.url, rec)
			if err != nil {
				result.Failed++
				continue
			}
			if created {
				result.Saved++
			} else {
				result.Updated++
			}
			rec = stored
		}
		result.Records = append(result.Records, rec)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// dedup drops empty and repeated URLs, counting them as skipped.
func (b *Batch) dedup(urls []string, result *Result) []string {
	seen := bloom.NewFilter(uint(len(urls))+1, seenFalsePositiveRate)
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || seen.TestAndAdd(u) {
			result.Skipped++
			continue
		}
		unique = append(unique, u)
	}
	return unique
}

func (b *Batch) fill(ctx context.Context, position int, url string) fillResult {
	r := fillResult{position: position, url: url}
	rec, err := b.Filler.Fill(ctx, worldart.FillRequest{URL: url, Frames: b.Frames})
	switch {
	case err != nil:
		r.err = err
	case rec == nil:
		r.err = worldart.Errorf(worldart.EINVALID, "no record extracted from %s", url)
	default:
		r.rec = rec
	}
	return r
}

// store saves rec, completing the record already stored for url if any.
func (b *Batch) store(ctx context.Context, url string, rec *worldart.Record) (*worldart.Record, bool, error) {
	existing, err := b.Records.FindRecords(ctx, worldart.RecordFilter{Source: &url, Limit: 1})
	if err != nil {
		return nil, false, err
	}
	if len(existing) == 0 {
		if err := b.Records.CreateRecord(ctx, rec); err != nil {
			return nil, false, err
		}
		return rec, true, nil
	}

	stored := existing[0]
	worldart.FillEmpty(stored, rec)
	if err := b.Records.UpdateRecord(ctx, stored); err != nil {
		return nil, false, err
	}
	return stored, false, nil
}
