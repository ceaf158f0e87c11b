package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/worldart"
)

// headWalker fills record fields from the labeled list of the head block.
type headWalker struct {
	rec   *worldart.Record
	vocab worldart.Vocabulary
	cur   *cursor

	// premiere is set once a "Премьера" label has been seen; it outranks
	// a date taken from "Выпуск".
	premiere bool
}

func (h *headWalker) walk(fields *goquery.Selection) {
	if fields.Length() == 0 {
		return
	}
	h.cur = newCursor(children(fields))
	for ; !h.cur.done(); h.cur.pos++ {
		n := h.cur.current()
		if !isElement(n, "b") {
			continue
		}
		h.handle(parseLabel(n.Text()))
	}
}

func (h *headWalker) handle(l label) {
	switch l {
	case labelProduction:
		h.production()
	case labelGenre:
		h.genres()
	case labelType:
		h.compound()
	case labelPremiere:
		h.dates(true)
	case labelRelease:
		h.dates(false)
	case labelRuntime:
		h.runtime()
	case labelEpisodes:
		h.episodes()
	case labelNone:
		// Unrecognized labels carry no field.
	}
}

func (h *headWalker) production() {
	var name string
	h.cur.pos = h.cur.scanUntil(1, isBreak, func(i int, n *goquery.Selection) bool {
		switch {
		case isElement(n, "a"):
			name = n.Text()
		case isElement(n, "img"):
			name = textOf(h.cur.at(i + 1))
		default:
			return true
		}
		name = strings.TrimSpace(name)
		return name == ""
	})
	if name == "" {
		return
	}
	if country, ok := h.vocab.ResolveCountry(name); ok {
		h.rec.Country = country
	}
}

func (h *headWalker) genres() {
	h.cur.pos = h.cur.scanUntil(2, isBreak, func(_ int, n *goquery.Selection) bool {
		if isElement(n, "a") {
			if genre, ok := h.vocab.ResolveGenre(strings.TrimSpace(n.Text())); ok {
				h.rec.AddGenre(genre)
			}
		}
		return true
	})
}

func (h *headWalker) compound() {
	if c, ok := worldart.ParseCompound(textOf(h.cur.peek(1))); ok {
		c.Apply(h.rec, h.vocab)
	}
	h.cur.pos++
}

func (h *headWalker) dates(premiere bool) {
	var b strings.Builder
	h.cur.pos = h.cur.scanUntil(1, isBreak, func(_ int, n *goquery.Selection) bool {
		b.WriteString(n.Text())
		return true
	})

	start, end, ok := worldart.ParseDateRange(b.String())
	if !ok {
		return
	}
	if premiere || !h.premiere {
		h.rec.DatePremiere = start
	}
	if premiere {
		h.premiere = true
	}
	if !end.IsZero() {
		h.rec.DateEnd = end
	}
}

var digitsRe = regexp.MustCompile(`\d+`)

func (h *headWalker) runtime() {
	if m := digitsRe.FindString(textOf(h.cur.peek(1))); m != "" {
		h.rec.Duration, _ = strconv.Atoi(m)
	}
}

func (h *headWalker) episodes() {
	text := strings.Trim(textOf(h.cur.peek(1)), " :")
	unbounded := strings.Contains(text, ">")
	count, ok := worldart.ParseEpisodeCount(strings.ReplaceAll(text, ">", ""))
	if !ok {
		return
	}
	count.Unbounded = count.Unbounded || unbounded
	h.rec.Episodes = count
}
