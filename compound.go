package worldart

import (
	"regexp"
	"strconv"
	"strings"
)

// Compound is the parsed form of the "Тип" field, which packs the item
// type, episode count, duration and free-form notes into one string, e.g.
// "ТВ (24 эп.), 24 мин." or "полнометражный фильм, 90 мин.".
type Compound struct {
	TypeName string
	Episodes EpisodeCount
	Duration int
	FileInfo string
}

var compoundRe = regexp.MustCompile(`([\p{L}\p{N}_\s-]+)(?: \((?:(>?\d+) эп\.)?(.*)\))?(?:, (\d{1,3}) мин\.)?$`)

// ParseCompound parses a compound type field. The duration clause is
// optional. It reports false when text does not start with a type name.
func ParseCompound(text string) (Compound, bool) {
	m := compoundRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Compound{}, false
	}

	c := Compound{
		TypeName: strings.TrimSpace(m[1]),
		FileInfo: strings.TrimSpace(m[3]),
	}
	if c.TypeName == "" {
		return Compound{}, false
	}
	if m[2] != "" {
		c.Episodes, _ = ParseEpisodeCount(m[2])
	}
	if m[4] != "" {
		c.Duration, _ = strconv.Atoi(m[4])
	}
	return c, true
}

// Apply copies the parsed values onto rec. The type is resolved through
// vocab; an unresolved type name leaves rec.Type untouched. Any resolved
// type other than tv without an explicit episode count gets one episode.
func (c Compound) Apply(rec *Record, vocab Vocabulary) {
	if t, ok := vocab.ResolveType(c.TypeName); ok {
		rec.Type = t
	}
	if c.Duration > 0 {
		rec.Duration = c.Duration
	}
	switch {
	case !c.Episodes.IsZero():
		rec.Episodes = c.Episodes
	case rec.Type != "" && rec.Type != TypeTV:
		rec.Episodes = EpisodeCount{N: 1}
	}
	rec.AppendFileInfo(c.FileInfo)
}
