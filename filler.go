package worldart

import "context"

// FillRequest is the input of a fill operation.
type FillRequest struct {
	URL string `json:"url"`

	// Frames requests harvesting of the item's frame gallery.
	Frames bool `json:"frames"`
}

// Filler extracts a fresh record from one catalog page.
type Filler interface {
	// Fill fetches req.URL and extracts a record from it.
	// It returns a nil record and nil error when the request is rejected:
	// empty or foreign-host URL, unknown dialect, or an empty page.
	// Returns ESTRUCTURE when the page lacks the expected layout.
	Fill(ctx context.Context, req FillRequest) (*Record, error)
}

// FrameHarvester collects the frame images of an item.
type FrameHarvester interface {
	// Frames fetches the item's gallery page and stores every accepted
	// frame, returning local references in gallery order. Frames whose
	// download fails are dropped.
	Frames(ctx context.Context, id int, d Dialect) ([]string, error)
}
