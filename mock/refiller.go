package mock

import (
	"context"

	"github.com/fwojciec/worldart"
)

var _ worldart.Refiller = (*Refiller)(nil)

// Refiller is a mock implementation of worldart.Refiller.
type Refiller struct {
	CanRefillFn              func(rec *worldart.Record, f worldart.Field) bool
	RefillFn                 func(ctx context.Context, rec *worldart.Record, f worldart.Field) error
	CanSearchFn              func(rec *worldart.Record, f worldart.Field) bool
	SearchFn                 func(ctx context.Context, rec *worldart.Record, f worldart.Field) ([]worldart.Candidate, error)
	RefillFromSearchResultFn func(ctx context.Context, rec *worldart.Record, f worldart.Field, c worldart.Candidate) error
}

func (r *Refiller) CanRefill(rec *worldart.Record, f worldart.Field) bool {
	return r.CanRefillFn(rec, f)
}

func (r *Refiller) Refill(ctx context.Context, rec *worldart.Record, f worldart.Field) error {
	return r.RefillFn(ctx, rec, f)
}

func (r *Refiller) CanSearch(rec *worldart.Record, f worldart.Field) bool {
	return r.CanSearchFn(rec, f)
}

func (r *Refiller) Search(ctx context.Context, rec *worldart.Record, f worldart.Field) ([]worldart.Candidate, error) {
	return r.SearchFn(ctx, rec, f)
}

func (r *Refiller) RefillFromSearchResult(ctx context.Context, rec *worldart.Record, f worldart.Field, c worldart.Candidate) error {
	return r.RefillFromSearchResultFn(ctx, rec, f, c)
}
