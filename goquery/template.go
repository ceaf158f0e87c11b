package goquery

import (
	"strings"

	"github.com/fwojciec/worldart"
)

// Template describes where the fields of one page dialect live.
// All paths except Cells are relative to the block they are applied to.
type Template struct {
	Dialect worldart.Dialect

	// Cells locates the layout cells holding the links and body blocks.
	Cells     Path
	LinksCell int
	BodyCell  int

	// Heads are the candidate head block paths relative to the body block;
	// the first one that matches wins.
	Heads []Path

	// Names locates the title block relative to the head block. With
	// SplitNames the first match holds one name per line, otherwise every
	// match holds one name.
	Names      Path
	SplitNames bool

	// HeadFields locates the labeled field list inside the head block.
	HeadFields Path

	Summary     Path
	EpisodeRows Path
	ReleaseRows Path

	// GalleryTrigger is the body text announcing a frame gallery.
	GalleryTrigger string
}

var (
	layoutCells  = MustParsePath(`//center/table[@height="58%"]/tr/td/table[1]/tr/td`)
	fallbackHead = MustParsePath(`table[2]/tr[1]/td[3]`)
)

var templates = map[worldart.Dialect]Template{
	worldart.DialectAnimation: {
		Dialect:   worldart.DialectAnimation,
		Cells:     layoutCells,
		LinksCell: 1,
		BodyCell:  5,
		Heads: []Path{
			MustParsePath(`table[3]/tr[2]/td[3]`),
			fallbackHead,
		},
		Names:          MustParsePath(`table[1]/tr/td`),
		SplitNames:     true,
		HeadFields:     MustParsePath(`font[1]`),
		Summary:        MustParsePath(`tr/td/p[1]`),
		EpisodeRows:    MustParsePath(`tr/td[2]`),
		ReleaseRows:    MustParsePath(`tr/td/table/tr/td[3]`),
		GalleryTrigger: "кадры из аниме",
	},
	worldart.DialectCinema: {
		Dialect:   worldart.DialectCinema,
		Cells:     layoutCells,
		LinksCell: 1,
		BodyCell:  5,
		Heads: []Path{
			MustParsePath(`table[3]/tr[1]/td[3]`),
			fallbackHead,
		},
		Names:          MustParsePath(`table[1]/tr/td/table/tr/td`),
		HeadFields:     MustParsePath(`font[1]`),
		Summary:        MustParsePath(`tr/td/p[1]`),
		EpisodeRows:    MustParsePath(`tr/td[2]`),
		ReleaseRows:    MustParsePath(`tr/td/table/tr/td[3]`),
		GalleryTrigger: "Кадры из фильма",
	},
}

// TemplateFor returns the layout template of a dialect.
func TemplateFor(d worldart.Dialect) (Template, bool) {
	t, ok := templates[d]
	return t, ok
}

// label is a recognized head block field label.
type label int

const (
	labelNone label = iota
	labelProduction
	labelGenre
	labelType
	labelPremiere
	labelRelease
	labelRuntime
	labelEpisodes
)

var labels = map[string]label{
	"Производство": labelProduction,
	"Жанр":         labelGenre,
	"Тип":          labelType,
	"Премьера":     labelPremiere,
	"Выпуск":       labelRelease,
	"Хронометраж":  labelRuntime,
	"Кол-во серий": labelEpisodes,
}

// parseLabel maps label text to its label. Unrecognized text is labelNone.
func parseLabel(text string) label {
	return labels[strings.TrimSpace(text)]
}

// marker is a recognized body block section heading.
type marker int

const (
	markerNone marker = iota
	markerSummary
	markerEpisodes
	markerReleases
	markerGallery
)

var markers = map[string]marker{
	"Краткое содержание:":    markerSummary,
	"Эпизоды:":               markerEpisodes,
	"Даты премьер и релизов": markerReleases,
}

// parseMarker maps trimmed body text to its marker.
func (t Template) parseMarker(text string) marker {
	if m, ok := markers[text]; ok {
		return m
	}
	if t.GalleryTrigger != "" && strings.Contains(text, t.GalleryTrigger) {
		return markerGallery
	}
	return markerNone
}
