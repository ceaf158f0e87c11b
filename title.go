package worldart

import (
	"regexp"
	"strings"
)

var (
	titleYearRe   = regexp.MustCompile(`\[\d{4}\]`)            // [2011]
	titleKindRe   = regexp.MustCompile(`\[?(ТВ|OVA|ONA)(-\d)?\]?`) // [ТВ-1]
	titleFilmRe   = regexp.MustCompile(`\(фильм [\p{L}\p{N}_]+\)`) // (фильм седьмой)
	nameCounterRe = regexp.MustCompile(`\(\d+\)`)
	spacesRe      = regexp.MustCompile(`\s+`)
)

// CleanTitle strips release year, series kind and film ordinal markers
// from a primary title.
func CleanTitle(s string) string {
	s = titleYearRe.ReplaceAllString(s, "")
	s = titleKindRe.ReplaceAllString(s, "")
	s = titleFilmRe.ReplaceAllString(s, "")
	return collapseSpaces(s)
}

// CleanName strips "(N)" counters from an alternate name.
func CleanName(s string) string {
	return collapseSpaces(nameCounterRe.ReplaceAllString(s, ""))
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}
