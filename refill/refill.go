// Package refill patches single fields of stored records from their
// catalog source pages.
package refill

import (
	"context"
	"fmt"

	"github.com/fwojciec/worldart"
)

// Ensure Refiller implements worldart.Refiller.
var _ worldart.Refiller = (*Refiller)(nil)

// Refiller re-extracts catalog pages and merges single fields into records.
type Refiller struct {
	Host     string
	Filler   worldart.Filler
	Frames   worldart.FrameHarvester
	Searcher worldart.Searcher
}

// NewRefiller creates a Refiller for the default catalog host.
func NewRefiller(filler worldart.Filler, frames worldart.FrameHarvester, searcher worldart.Searcher) *Refiller {
	return &Refiller{
		Host:     worldart.DefaultHost,
		Filler:   filler,
		Frames:   frames,
		Searcher: searcher,
	}
}

// SourceForFill returns the first source of rec on the catalog host, or "".
func (r *Refiller) SourceForFill(rec *worldart.Record) string {
	return rec.SourceOnHost(r.Host)
}

// CanRefill reports whether f is refillable and rec has a catalog source.
func (r *Refiller) CanRefill(rec *worldart.Record, f worldart.Field) bool {
	return f.Refillable() && r.SourceForFill(rec) != ""
}

// Refill re-extracts the catalog source of rec and merges field f into it.
// Returns EINVALID for a field outside the refillable set. Records without
// a catalog source are left unchanged.
func (r *Refiller) Refill(ctx context.Context, rec *worldart.Record, f worldart.Field) error {
	if !f.Refillable() {
		return worldart.Errorf(worldart.EINVALID, "field %s cannot be refilled", f)
	}
	source := r.SourceForFill(rec)
	if source == "" {
		return nil
	}

	if f == worldart.FieldImages {
		return r.refillFrames(ctx, rec, source)
	}

	fresh, err := r.Filler.Fill(ctx, worldart.FillRequest{URL: source})
	if err != nil {
		return fmt.Errorf("refilling %s: %w", f, err)
	}
	if fresh == nil {
		return nil
	}
	worldart.MergeField(rec, fresh, f)
	return nil
}

// refillFrames harvests the gallery afresh and adds the frames rec lacks.
func (r *Refiller) refillFrames(ctx context.Context, rec *worldart.Record, source string) error {
	if r.Frames == nil {
		return nil
	}
	id := worldart.ParseItemID(source)
	dialect, ok := worldart.DialectFromURL(source)
	if id == 0 || !ok {
		return nil
	}

	frames, err := r.Frames.Frames(ctx, id, dialect)
	if err != nil {
		return fmt.Errorf("refilling %s: %w", worldart.FieldImages, err)
	}
	worldart.MergeField(rec, &worldart.Record{Frames: frames}, worldart.FieldImages)
	return nil
}

// CanSearch reports whether Search can produce candidates for field f of rec.
func (r *Refiller) CanSearch(rec *worldart.Record, f worldart.Field) bool {
	if !f.Refillable() {
		return false
	}
	return r.CanRefill(rec, f) || rec.FirstName() != ""
}

// Search finds candidate sources for rec. A record that already has a
// catalog source yields a single candidate describing itself without a
// network call. Otherwise the catalog is searched by the record's first
// non-empty name.
func (r *Refiller) Search(ctx context.Context, rec *worldart.Record, f worldart.Field) ([]worldart.Candidate, error) {
	if source := r.SourceForFill(rec); source != "" {
		return []worldart.Candidate{{
			Name:        rec.Name,
			URL:         source,
			Link:        worldart.FillLink(source),
			Image:       rec.Cover,
			Description: rec.Summary,
		}}, nil
	}

	name := rec.FirstName()
	if name == "" || r.Searcher == nil {
		return nil, nil
	}
	found, err := r.Searcher.Search(ctx, worldart.SearchRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("searching for %s: %w", f, err)
	}

	candidates := make([]worldart.Candidate, 0, len(found))
	for _, c := range found {
		if u := worldart.ParseFillLink(c.Link); u != "" {
			c.URL = u
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// RefillFromSearchResult adds the candidate's source to rec and refills f.
// A candidate without a source URL leaves rec unchanged.
func (r *Refiller) RefillFromSearchResult(ctx context.Context, rec *worldart.Record, f worldart.Field, c worldart.Candidate) error {
	if !f.Refillable() {
		return worldart.Errorf(worldart.EINVALID, "field %s cannot be refilled", f)
	}
	source := c.URL
	if source == "" {
		source = worldart.ParseFillLink(c.Link)
	}
	if source == "" {
		return nil
	}
	rec.AddSource(source)
	return r.Refill(ctx, rec, f)
}

// Complete fills every empty field of a newly added record from a fresh
// extraction of its catalog source. Collection fields are merged.
func (r *Refiller) Complete(ctx context.Context, rec *worldart.Record) error {
	source := r.SourceForFill(rec)
	if source == "" {
		return nil
	}
	fresh, err := r.Filler.Fill(ctx, worldart.FillRequest{URL: source})
	if err != nil {
		return fmt.Errorf("completing record: %w", err)
	}
	if fresh == nil {
		return nil
	}
	worldart.FillEmpty(rec, fresh)
	return nil
}
