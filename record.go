package worldart

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Type is the canonical kind of a catalog item.
type Type string

// Canonical item types.
const (
	TypeTV         Type = "tv"
	TypeSpecial    Type = "special"
	TypeOVA        Type = "ova"
	TypeONA        Type = "ona"
	TypeFeature    Type = "feature"
	TypeFeaturette Type = "featurette"
	TypeMusic      Type = "music"
	TypeCommercial Type = "commercial"
)

// EpisodeCount is the number of episodes of an item. When Unbounded is set
// the exact count is unknown and N is a lower bound.
// The zero value means the count is unset.
type EpisodeCount struct {
	N         int  `json:"n"`
	Unbounded bool `json:"unbounded"`
}

// IsZero reports whether the count is unset.
func (c EpisodeCount) IsZero() bool {
	return c.N == 0 && !c.Unbounded
}

// String renders the count as "12" or "12+".
func (c EpisodeCount) String() string {
	if c.IsZero() {
		return ""
	}
	s := strconv.Itoa(c.N)
	if c.Unbounded {
		s += "+"
	}
	return s
}

// ParseEpisodeCount parses "12", "12+" or ">12".
func ParseEpisodeCount(s string) (EpisodeCount, bool) {
	s = strings.TrimSpace(s)
	var c EpisodeCount
	if strings.HasPrefix(s, ">") {
		c.Unbounded = true
		s = strings.TrimSpace(s[1:])
	}
	if strings.HasSuffix(s, "+") {
		c.Unbounded = true
		s = s[:len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return EpisodeCount{}, false
	}
	c.N = n
	return c, true
}

// Record is a catalog entry extracted from one or more source pages.
type Record struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Names        []string     `json:"names"`
	Type         Type         `json:"type"`
	Duration     int          `json:"duration"`
	Episodes     EpisodeCount `json:"episodes"`
	DatePremiere Date         `json:"datePremiere"`
	DateEnd      Date         `json:"dateEnd"`
	Country      string       `json:"country"`
	Studio       string       `json:"studio"`
	Genres       []string     `json:"genres"`
	Summary      string       `json:"summary"`
	EpisodeList  string       `json:"episodeList"`
	FileInfo     string       `json:"fileInfo"`
	Cover        string       `json:"cover"`
	Frames       []string     `json:"frames"`
	Sources      []string     `json:"sources"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Name == "" && len(r.Sources) == 0 {
		return Errorf(EINVALID, "record name or source required")
	}
	return nil
}

// AddName appends an alternate name unless it is empty or already present.
func (r *Record) AddName(name string) {
	if name == "" {
		return
	}
	for _, n := range r.Names {
		if n == name {
			return
		}
	}
	r.Names = append(r.Names, name)
}

// AddGenre adds a canonical genre id, keeping the genre list a set.
func (r *Record) AddGenre(id string) {
	if id == "" {
		return
	}
	for _, g := range r.Genres {
		if g == id {
			return
		}
	}
	r.Genres = append(r.Genres, id)
}

// AddSource appends a source URL. Duplicates are kept.
func (r *Record) AddSource(url string) {
	if url == "" {
		return
	}
	r.Sources = append(r.Sources, url)
}

// HasFrame reports whether ref is already among the record's frames.
func (r *Record) HasFrame(ref string) bool {
	for _, f := range r.Frames {
		if f == ref {
			return true
		}
	}
	return false
}

// AppendFileInfo appends a line to the file info text.
func (r *Record) AppendFileInfo(info string) {
	info = strings.TrimSpace(info)
	if info == "" {
		return
	}
	if r.FileInfo != "" {
		r.FileInfo += "\n"
	}
	r.FileInfo += info
}

// SourceOnHost returns the first source URL located on host, or "".
func (r *Record) SourceOnHost(host string) string {
	for _, s := range r.Sources {
		if IsHostURL(host, s) {
			return s
		}
	}
	return ""
}

// FirstName returns the primary name, or the first non-empty alternate name.
func (r *Record) FirstName() string {
	if r.Name != "" {
		return r.Name
	}
	for _, n := range r.Names {
		if n != "" {
			return n
		}
	}
	return ""
}

// RecordService represents a service for persisting catalog records.
type RecordService interface {
	// CreateRecord stores a new record and assigns its ID.
	CreateRecord(ctx context.Context, rec *Record) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*Record, error)

	// FindRecords retrieves records matching the filter.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// UpdateRecord replaces all stored fields of an existing record.
	// Returns ENOTFOUND if the record does not exist.
	UpdateRecord(ctx context.Context, rec *Record) error

	// DeleteRecord permanently removes a record and its sources.
	// Returns ENOTFOUND if the record does not exist.
	DeleteRecord(ctx context.Context, id string) error
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	ID     *string `json:"id"`
	Name   *string `json:"name"`
	Source *string `json:"source"`
	Type   *Type   `json:"type"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
