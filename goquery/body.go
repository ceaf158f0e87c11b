package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/worldart"
)

// bodyWalker fills record fields from the section headings of the body block.
type bodyWalker struct {
	rec    *worldart.Record
	tpl    Template
	frames worldart.FrameHarvester
	id     int
	want   bool
	cur    *cursor

	harvested bool
}

func (b *bodyWalker) walk(ctx context.Context, body *goquery.Selection) {
	b.cur = newCursor(children(body))
	for ; !b.cur.done(); b.cur.pos++ {
		text := strings.TrimSpace(b.cur.current().Text())
		if text == "" {
			continue
		}
		switch b.tpl.parseMarker(text) {
		case markerSummary:
			b.summary()
		case markerEpisodes:
			b.episodes()
		case markerReleases:
			b.releases()
		case markerGallery:
			b.gallery(ctx)
		case markerNone:
		}
	}
}

func (b *bodyWalker) summary() {
	if block := b.cur.peek(2); block != nil {
		if p := b.tpl.Summary.Select(block); p.Length() > 0 {
			b.rec.Summary = plainText(p.First())
		}
	}
	b.cur.pos += 2
}

func (b *bodyWalker) episodes() {
	next := b.cur.peek(1)
	if next == nil {
		return
	}
	if strings.TrimSpace(next.Text()) == "" {
		if block := b.cur.peek(2); block != nil {
			b.rec.EpisodeList = plainText(block)
		}
		b.cur.pos += 2
		return
	}

	var lines []string
	b.tpl.EpisodeRows.Select(next).Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		fonts := row.ChildrenFiltered("font")
		line := fmt.Sprintf("%d. %s", i, strings.TrimSpace(fonts.Eq(0).Text()))
		if fonts.Length() > 1 {
			line += " (" + strings.TrimSpace(fonts.Eq(1).Text()) + ")"
		}
		lines = append(lines, line)
	})
	if len(lines) > 0 {
		b.rec.EpisodeList = strings.Join(lines, "\n")
	}
	b.cur.pos++
}

// releases keeps the earliest date of the release table as the premiere.
func (b *bodyWalker) releases() {
	table := b.cur.peek(1)
	if table == nil {
		return
	}
	b.tpl.ReleaseRows.Select(table).Each(func(_ int, cell *goquery.Selection) {
		d, ok := worldart.ParseReleaseDate(cell.Text())
		if !ok {
			return
		}
		if b.rec.DatePremiere.IsZero() || d.Before(b.rec.DatePremiere) {
			b.rec.DatePremiere = d
		}
	})
}

func (b *bodyWalker) gallery(ctx context.Context) {
	if !b.want || b.id == 0 || b.frames == nil || b.harvested {
		return
	}
	b.harvested = true
	frames, err := b.frames.Frames(ctx, b.id, b.tpl.Dialect)
	if err != nil {
		return
	}
	b.rec.Frames = append(b.rec.Frames, frames...)
}
