package goquery

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/worldart"
	"golang.org/x/text/encoding/charmap"
)

// Ensure Searcher implements worldart.Searcher.
var _ worldart.Searcher = (*Searcher)(nil)

var resultCells = MustParsePath(`//center/table/tr/td/table/tr/td/table/tr/td`)

// Searcher queries the catalog search page.
type Searcher struct {
	Host    string
	Fetcher worldart.Fetcher
}

// NewSearcher creates a Searcher for the default catalog host.
func NewSearcher(fetcher worldart.Fetcher) *Searcher {
	return &Searcher{
		Host:    worldart.DefaultHost,
		Fetcher: fetcher,
	}
}

// SearchURL builds the search page URL. The catalog expects the query in
// windows-1251 before percent-encoding.
func (s *Searcher) SearchURL(name, sector string) (string, error) {
	encoded, err := charmap.Windows1251.NewEncoder().String(name)
	if err != nil {
		return "", worldart.Errorf(worldart.EINVALID, "name %q cannot be encoded for search", name)
	}
	if sector == "" {
		sector = worldart.SectorAll
	}
	return fmt.Sprintf("%ssearch.php?public_search=%s&global_sector=%s",
		hostRoot(s.Host), url.QueryEscape(encoded), url.QueryEscape(sector)), nil
}

// Search returns the candidates matching req.Name.
func (s *Searcher) Search(ctx context.Context, req worldart.SearchRequest) ([]worldart.Candidate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, nil
	}
	u, err := s.SearchURL(name, req.Sector)
	if err != nil {
		return nil, err
	}

	html, err := s.Fetcher.Fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetching search results: %w", err)
	}
	if html == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, worldart.Errorf(worldart.EINVALID, "failed to parse HTML: %v", err)
	}

	if target, ok := refreshTarget(doc); ok {
		c, err := s.redirectCandidate(name, target)
		if err != nil {
			return nil, err
		}
		return []worldart.Candidate{c}, nil
	}

	var candidates []worldart.Candidate
	resultCells.Select(doc.Selection).Each(func(_ int, cell *goquery.Selection) {
		if c, ok := s.listCandidate(cell); ok {
			candidates = append(candidates, c)
		}
	})
	return candidates, nil
}

// refreshTarget returns the target of a meta refresh redirect, which the
// catalog serves when exactly one item matches.
func refreshTarget(doc *goquery.Document) (string, bool) {
	var target string
	doc.Find("meta[http-equiv]").EachWithBreak(func(_ int, meta *goquery.Selection) bool {
		equiv, _ := meta.Attr("http-equiv")
		if !strings.EqualFold(equiv, "refresh") {
			return true
		}
		content, _ := meta.Attr("content")
		idx := strings.Index(strings.ToLower(content), "url=")
		if idx < 0 {
			return true
		}
		target = strings.TrimSpace(content[idx+len("url="):])
		return false
	})
	return target, target != ""
}

func (s *Searcher) redirectCandidate(name, target string) (worldart.Candidate, error) {
	target = resolveURL(hostRoot(s.Host), target)
	id := worldart.ParseItemID(target)
	dialect, ok := worldart.DialectFromURL(target)
	if id == 0 || !ok {
		return worldart.Candidate{}, worldart.Errorf(worldart.ENOTFOUND, "incorrect URL for found item: %s", target)
	}
	return worldart.Candidate{
		Name:  name,
		URL:   target,
		Link:  worldart.FillLink(target),
		Image: worldart.CoverURL(s.Host, id, dialect),
	}, nil
}

func (s *Searcher) listCandidate(cell *goquery.Selection) (worldart.Candidate, bool) {
	a := cell.ChildrenFiltered("a").First()
	if a.Length() == 0 {
		return worldart.Candidate{}, false
	}
	href, _ := a.Attr("href")
	name := a.Text()
	if href == "" || isNonHTTPLink(href) || strings.TrimSpace(name) == "" {
		return worldart.Candidate{}, false
	}
	id := worldart.ParseItemID(href)
	dialect, ok := worldart.DialectFromURL(href)
	if id == 0 || !ok {
		return worldart.Candidate{}, false
	}

	source := resolveURL(hostRoot(s.Host), href)
	return worldart.Candidate{
		Name:        strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\n", " ").Replace(name)),
		URL:         source,
		Link:        worldart.FillLink(source),
		Image:       worldart.CoverURL(s.Host, id, dialect),
		Description: strings.TrimSpace(strings.ReplaceAll(cell.Text(), name, "")),
	}, true
}
