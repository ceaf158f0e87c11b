package worldart

import (
	"context"
	"net/url"
)

// Search sectors accepted by the catalog.
const (
	SectorAll       = "all"
	SectorAnimation = "animation"
	SectorCinema    = "cinema"
)

// SearchRequest is the input of a search operation.
type SearchRequest struct {
	Name string `json:"name"`

	// Sector restricts the search to one dialect. Empty means all.
	Sector string `json:"type"`
}

// Candidate is one search result.
type Candidate struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Link        string `json:"link"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// Searcher looks up catalog items by name.
type Searcher interface {
	// Search returns the candidates matching req. An empty name returns
	// no candidates. Returns ENOTFOUND when the catalog redirects to an
	// item whose dialect cannot be determined.
	Search(ctx context.Context, req SearchRequest) ([]Candidate, error)
}

// FillLink builds the opaque link a candidate carries for filling it later.
func FillLink(source string) string {
	return "fill?" + url.Values{"url": {source}}.Encode()
}

// ParseFillLink extracts the source URL from a link built by FillLink.
func ParseFillLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Query().Get("url")
}
