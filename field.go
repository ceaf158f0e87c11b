package worldart

import "context"

// Field names one field of a Record.
type Field int

// Record fields.
const (
	FieldUnknown Field = iota
	FieldNames
	FieldType
	FieldDuration
	FieldEpisodes
	FieldEpisodesNumber
	FieldDatePremiere
	FieldDateEnd
	FieldCountry
	FieldStudio
	FieldGenres
	FieldSummary
	FieldFileInfo
	FieldImages
	FieldCover
	FieldSources
)

var fieldNames = map[Field]string{
	FieldNames:          "names",
	FieldType:           "type",
	FieldDuration:       "duration",
	FieldEpisodes:       "episodes",
	FieldEpisodesNumber: "episodes_number",
	FieldDatePremiere:   "date_premiere",
	FieldDateEnd:        "date_end",
	FieldCountry:        "country",
	FieldStudio:         "studio",
	FieldGenres:         "genres",
	FieldSummary:        "summary",
	FieldFileInfo:       "file_info",
	FieldImages:         "images",
	FieldCover:          "cover",
	FieldSources:        "sources",
}

// String returns the wire name of the field.
func (f Field) String() string {
	return fieldNames[f]
}

// ParseField maps a wire name to a Field.
func ParseField(s string) (Field, error) {
	for f, name := range fieldNames {
		if name == s {
			return f, nil
		}
	}
	return FieldUnknown, Errorf(EINVALID, "unknown field %q", s)
}

// Refillable reports whether the field can be refilled from a source page.
func (f Field) Refillable() bool {
	switch f {
	case FieldDateEnd, FieldDatePremiere, FieldDuration, FieldEpisodes,
		FieldEpisodesNumber, FieldGenres, FieldImages, FieldCountry,
		FieldNames, FieldStudio, FieldSources, FieldSummary:
		return true
	}
	return false
}

// MergeField copies one field from src onto dst. src is never modified.
//
// Genres are added with set semantics. Names receive the primary name of
// src followed by its alternate names. Sources and frames are appended
// when not already present.
func MergeField(dst, src *Record, f Field) {
	switch f {
	case FieldNames:
		dst.AddName(src.Name)
		for _, n := range src.Names {
			dst.AddName(n)
		}
	case FieldType:
		dst.Type = src.Type
	case FieldDuration:
		dst.Duration = src.Duration
	case FieldEpisodes:
		dst.EpisodeList = src.EpisodeList
	case FieldEpisodesNumber:
		dst.Episodes = src.Episodes
	case FieldDatePremiere:
		dst.DatePremiere = src.DatePremiere
	case FieldDateEnd:
		dst.DateEnd = src.DateEnd
	case FieldCountry:
		dst.Country = src.Country
	case FieldStudio:
		dst.Studio = src.Studio
	case FieldGenres:
		for _, g := range src.Genres {
			dst.AddGenre(g)
		}
	case FieldSummary:
		dst.Summary = src.Summary
	case FieldFileInfo:
		dst.AppendFileInfo(src.FileInfo)
	case FieldImages:
		for _, ref := range src.Frames {
			if !dst.HasFrame(ref) {
				dst.Frames = append(dst.Frames, ref)
			}
		}
	case FieldCover:
		dst.Cover = src.Cover
	case FieldSources:
		for _, s := range src.Sources {
			if !containsString(dst.Sources, s) {
				dst.AddSource(s)
			}
		}
	}
}

// FillEmpty completes dst with every field of src that dst leaves unset.
// Collection fields (names, genres, sources) are merged instead.
func FillEmpty(dst, src *Record) {
	if dst.Name == "" {
		dst.Name = src.Name
	}
	for _, n := range append([]string{src.Name}, src.Names...) {
		if n != dst.Name {
			dst.AddName(n)
		}
	}
	if dst.Type == "" {
		dst.Type = src.Type
	}
	if dst.Duration == 0 {
		dst.Duration = src.Duration
	}
	if dst.Episodes.IsZero() {
		dst.Episodes = src.Episodes
	}
	if dst.EpisodeList == "" {
		dst.EpisodeList = src.EpisodeList
	}
	if dst.DatePremiere.IsZero() {
		dst.DatePremiere = src.DatePremiere
	}
	if dst.DateEnd.IsZero() {
		dst.DateEnd = src.DateEnd
	}
	if dst.Country == "" {
		dst.Country = src.Country
	}
	if dst.Studio == "" {
		dst.Studio = src.Studio
	}
	if dst.Summary == "" {
		dst.Summary = src.Summary
	}
	if dst.FileInfo == "" {
		dst.FileInfo = src.FileInfo
	}
	if dst.Cover == "" {
		dst.Cover = src.Cover
	}
	if len(dst.Frames) == 0 {
		dst.Frames = append(dst.Frames, src.Frames...)
	}
	MergeField(dst, src, FieldGenres)
	MergeField(dst, src, FieldSources)
}

// Refiller patches single fields of existing records from their source pages.
type Refiller interface {
	// CanRefill reports whether field is refillable and rec has a source
	// on the catalog host.
	CanRefill(rec *Record, f Field) bool

	// Refill re-extracts rec's catalog source and merges field f into rec.
	Refill(ctx context.Context, rec *Record, f Field) error

	// CanSearch reports whether Search can produce candidates for rec.
	CanSearch(rec *Record, f Field) bool

	// Search finds candidate sources for refilling field f of rec.
	Search(ctx context.Context, rec *Record, f Field) ([]Candidate, error)

	// RefillFromSearchResult adds the candidate source to rec and refills f.
	RefillFromSearchResult(ctx context.Context, rec *Record, f Field, c Candidate) error
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
