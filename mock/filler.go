package mock

import (
	"context"

	"github.com/fwojciec/worldart"
)

var (
	_ worldart.Filler         = (*Filler)(nil)
	_ worldart.FrameHarvester = (*FrameHarvester)(nil)
	_ worldart.Searcher       = (*Searcher)(nil)
)

// Filler is a mock implementation of worldart.Filler.
type Filler struct {
	FillFn func(ctx context.Context, req worldart.FillRequest) (*worldart.Record, error)
}

func (f *Filler) Fill(ctx context.Context, req worldart.FillRequest) (*worldart.Record, error) {
	return f.FillFn(ctx, req)
}

// FrameHarvester is a mock implementation of worldart.FrameHarvester.
type FrameHarvester struct {
	FramesFn func(ctx context.Context, id int, d worldart.Dialect) ([]string, error)
}

func (h *FrameHarvester) Frames(ctx context.Context, id int, d worldart.Dialect) ([]string, error) {
	return h.FramesFn(ctx, id, d)
}

// Searcher is a mock implementation of worldart.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, req worldart.SearchRequest) ([]worldart.Candidate, error)
}

func (s *Searcher) Search(ctx context.Context, req worldart.SearchRequest) ([]worldart.Candidate, error) {
	return s.SearchFn(ctx, req)
}
