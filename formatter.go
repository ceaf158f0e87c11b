package worldart

import (
	"strconv"
	"strings"
)

// FormatRecord renders a record as labeled lines for display.
// Unset fields are omitted.
func FormatRecord(rec *Record) string {
	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	line("Name", rec.Name)
	line("Names", strings.Join(rec.Names, "; "))
	line("Type", string(rec.Type))
	if rec.Duration > 0 {
		line("Duration", strconv.Itoa(rec.Duration)+" min")
	}
	line("Episodes", rec.Episodes.String())
	line("Premiere", rec.DatePremiere.String())
	line("End", rec.DateEnd.String())
	line("Country", rec.Country)
	line("Studio", rec.Studio)
	line("Genres", strings.Join(rec.Genres, ", "))
	line("Cover", rec.Cover)
	if len(rec.Frames) > 0 {
		line("Frames", strconv.Itoa(len(rec.Frames)))
	}
	for _, s := range rec.Sources {
		line("Source", s)
	}
	if rec.Summary != "" {
		b.WriteString("\n" + rec.Summary + "\n")
	}
	if rec.EpisodeList != "" {
		b.WriteString("\n" + strings.TrimRight(rec.EpisodeList, "\n") + "\n")
	}
	if rec.FileInfo != "" {
		b.WriteString("\n" + rec.FileInfo + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
