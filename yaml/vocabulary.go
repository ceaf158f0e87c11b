// Package yaml provides a worldart.Vocabulary backed by YAML tables.
package yaml

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"github.com/fwojciec/worldart"
	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultTables []byte

var _ worldart.Vocabulary = (*Vocabulary)(nil)

// tables is the document layout of a vocabulary file.
type tables struct {
	Genres         map[string]string `yaml:"genres"`
	Types          map[string]string `yaml:"types"`
	Countries      map[string]string `yaml:"countries"`
	CountryAliases map[string]string `yaml:"country_aliases"`
	Studios        map[int]string    `yaml:"studios"`
}

// Vocabulary resolves catalog names through immutable lookup tables.
// It is safe for concurrent use.
type Vocabulary struct {
	genres         map[string]string
	types          map[string]worldart.Type
	countries      map[string]string
	countryAliases map[string]string
	studios        map[int]string
}

// Load reads vocabulary tables from r.
// Returns EINVALID when the document is malformed or maps a name to an
// unknown type.
func Load(r io.Reader) (*Vocabulary, error) {
	var t tables
	if err := yaml.NewDecoder(r).Decode(&t); err != nil && err != io.EOF {
		return nil, worldart.Errorf(worldart.EINVALID, "parsing vocabulary: %v", err)
	}

	types := make(map[string]worldart.Type, len(t.Types))
	for name, id := range t.Types {
		typ := worldart.Type(id)
		if !knownType(typ) {
			return nil, worldart.Errorf(worldart.EINVALID, "unknown type %q for %q", id, name)
		}
		types[name] = typ
	}

	return &Vocabulary{
		genres:         t.Genres,
		types:          types,
		countries:      t.Countries,
		countryAliases: t.CountryAliases,
		studios:        t.Studios,
	}, nil
}

var (
	defaultOnce  sync.Once
	defaultVocab *Vocabulary
)

// Default returns the vocabulary built from the embedded tables.
func Default() *Vocabulary {
	defaultOnce.Do(func() {
		v, err := Load(bytes.NewReader(defaultTables))
		if err != nil {
			panic(fmt.Sprintf("embedded vocabulary: %v", err))
		}
		defaultVocab = v
	})
	return defaultVocab
}

// ResolveGenre maps a genre name to its canonical id.
func (v *Vocabulary) ResolveGenre(name string) (string, bool) {
	id, ok := v.genres[name]
	return id, ok
}

// ResolveType maps a type name to its canonical type.
func (v *Vocabulary) ResolveType(name string) (worldart.Type, bool) {
	t, ok := v.types[name]
	return t, ok
}

// ResolveCountry maps a country name to its canonical id. Aliases are
// rewritten to their canonical name first.
func (v *Vocabulary) ResolveCountry(name string) (string, bool) {
	if alias, ok := v.countryAliases[name]; ok {
		name = alias
	}
	id, ok := v.countries[name]
	return id, ok
}

// ResolveStudio maps a catalog company id to its studio name.
func (v *Vocabulary) ResolveStudio(sourceID int) (string, bool) {
	s, ok := v.studios[sourceID]
	return s, ok
}

// Counts reports the size of each table.
func (v *Vocabulary) Counts() (genres, types, countries, studios int) {
	return len(v.genres), len(v.types), len(v.countries), len(v.studios)
}

func knownType(t worldart.Type) bool {
	switch t {
	case worldart.TypeTV, worldart.TypeSpecial, worldart.TypeOVA, worldart.TypeONA,
		worldart.TypeFeature, worldart.TypeFeaturette, worldart.TypeMusic, worldart.TypeCommercial:
		return true
	}
	return false
}
