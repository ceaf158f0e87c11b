package main

import (
	"fmt"

	"github.com/fwojciec/worldart"
	"github.com/fwojciec/worldart/crawl"
)

// Run executes the fill command.
func (c *FillCmd) Run(deps *Dependencies) error {
	if c.DryRun {
		return c.preview(deps)
	}

	batch := *deps.Batch
	batch.Frames = c.Frames
	if c.Concurrency > 0 {
		batch.Concurrency = c.Concurrency
	}

	progress := func(event crawl.ProgressEvent) {
		if event.Type == crawl.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, worldart.ErrorMessage(event.Error))
		}
	}

	result, err := batch.FillAll(deps.Ctx, c.URLs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error filling: %v\n", err)
		return err
	}

	for _, rec := range result.Records {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", rec.ID, rec.Name)
	}
	fmt.Fprintf(deps.Stdout, "Filled %d, saved %d, updated %d, failed %d, skipped %d\n",
		result.Filled, result.Saved, result.Updated, result.Failed, result.Skipped)

	if result.Filled == 0 && result.Failed > 0 {
		return worldart.Errorf(worldart.EINVALID, "no records filled")
	}
	return nil
}

func (c *FillCmd) preview(deps *Dependencies) error {
	for _, url := range c.URLs {
		rec, err := deps.Filler.Fill(deps.Ctx, worldart.FillRequest{URL: url, Frames: c.Frames})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", worldart.ErrorMessage(err))
			return err
		}
		if rec == nil {
			fmt.Fprintf(deps.Stderr, "skip %s: not a catalog item page\n", url)
			continue
		}
		fmt.Fprintln(deps.Stdout, worldart.FormatRecord(rec))
	}
	return nil
}
