package goquery

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/worldart"
)

// Ensure Filler implements worldart.Filler.
var _ worldart.Filler = (*Filler)(nil)

// Filler extracts records from catalog item pages.
type Filler struct {
	Host       string
	Fetcher    worldart.Fetcher
	Vocabulary worldart.Vocabulary

	// Images stores the cover. Nil leaves the cover unset.
	Images worldart.ImageDownloader

	// Frames harvests the frame gallery when a fill asks for it.
	// Nil disables frame harvesting.
	Frames worldart.FrameHarvester
}

// NewFiller creates a Filler for the default catalog host.
func NewFiller(fetcher worldart.Fetcher, vocab worldart.Vocabulary) *Filler {
	return &Filler{
		Host:       worldart.DefaultHost,
		Fetcher:    fetcher,
		Vocabulary: vocab,
	}
}

// Fill fetches the item page at req.URL and extracts a record from it.
func (f *Filler) Fill(ctx context.Context, req worldart.FillRequest) (*worldart.Record, error) {
	if req.URL == "" || !worldart.IsHostURL(f.Host, req.URL) {
		return nil, nil
	}
	dialect, ok := worldart.DialectFromURL(req.URL)
	if !ok {
		return nil, nil
	}
	tpl, ok := TemplateFor(dialect)
	if !ok {
		return nil, nil
	}

	html, err := f.Fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", req.URL, err)
	}
	if html == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, worldart.Errorf(worldart.EINVALID, "failed to parse HTML: %v", err)
	}

	return f.extract(ctx, doc, tpl, req)
}

func (f *Filler) extract(ctx context.Context, doc *goquery.Document, tpl Template, req worldart.FillRequest) (*worldart.Record, error) {
	cells := tpl.Cells.Select(doc.Selection)
	body := cells.Eq(tpl.BodyCell)
	if body.Length() == 0 {
		return nil, worldart.Errorf(worldart.ESTRUCTURE, "incorrect data structure at %s", req.URL)
	}

	id := worldart.ParseItemID(req.URL)
	rec := &worldart.Record{}
	rec.AddSource(req.URL)

	cells.Eq(tpl.LinksCell).ChildrenFiltered("a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if isExternalLink(f.Host, href) {
			rec.AddSource(href)
		}
	})

	if id != 0 && f.Images != nil {
		if ref, err := f.Images.Store(ctx, worldart.CoverURL(f.Host, id, tpl.Dialect), worldart.CoverKey(id)); err == nil {
			rec.Cover = ref
		}
	}

	if studio, ok := f.studio(doc); ok {
		rec.Studio = studio
	}

	if head := locateHead(body, tpl); head != nil {
		extractNames(rec, head, tpl)
		h := &headWalker{rec: rec, vocab: f.Vocabulary}
		h.walk(tpl.HeadFields.Select(head).First())
	}

	b := &bodyWalker{
		rec:    rec,
		tpl:    tpl,
		frames: f.Frames,
		id:     id,
		want:   req.Frames,
	}
	b.walk(ctx, body)

	return rec, nil
}

// locateHead returns the first head block matched by the template, or nil.
func locateHead(body *goquery.Selection, tpl Template) *goquery.Selection {
	for _, p := range tpl.Heads {
		if head := p.Select(body); head.Length() > 0 {
			return head.First()
		}
	}
	return nil
}

func extractNames(rec *worldart.Record, head *goquery.Selection, tpl Template) {
	var names []string
	matches := tpl.Names.Select(head)
	if tpl.SplitNames {
		names = strings.Split(plainText(matches.First()), "\n")
	} else {
		matches.Each(func(_ int, s *goquery.Selection) {
			names = append(names, s.Text())
		})
	}
	if len(names) == 0 {
		return
	}

	rec.Name = worldart.CleanTitle(names[0])
	for _, n := range names[1:] {
		rec.AddName(worldart.CleanName(n))
	}
}

var studioIDRe = regexp.MustCompile(`/(\d+)\.`)

// studio resolves the first company logo on the page with a known id.
func (f *Filler) studio(doc *goquery.Document) (string, bool) {
	prefix := strings.TrimRight(f.Host, "/") + "/img/company_new/"
	var studio string
	doc.Find("img[src]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		if !strings.HasPrefix(src, prefix) {
			return true
		}
		m := studioIDRe.FindStringSubmatch(src[len(prefix)-1:])
		if m == nil {
			return true
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return true
		}
		if name, ok := f.Vocabulary.ResolveStudio(id); ok {
			studio = name
			return false
		}
		return true
	})
	return studio, studio != ""
}
