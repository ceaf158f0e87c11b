package mock

import "github.com/fwojciec/worldart"

var _ worldart.Vocabulary = (*Vocabulary)(nil)

// Vocabulary is a mock implementation of worldart.Vocabulary.
// Nil functions resolve nothing.
type Vocabulary struct {
	ResolveGenreFn   func(name string) (string, bool)
	ResolveTypeFn    func(name string) (worldart.Type, bool)
	ResolveCountryFn func(name string) (string, bool)
	ResolveStudioFn  func(sourceID int) (string, bool)
}

func (v *Vocabulary) ResolveGenre(name string) (string, bool) {
	if v.ResolveGenreFn == nil {
		return "", false
	}
	return v.ResolveGenreFn(name)
}

func (v *Vocabulary) ResolveType(name string) (worldart.Type, bool) {
	if v.ResolveTypeFn == nil {
		return "", false
	}
	return v.ResolveTypeFn(name)
}

func (v *Vocabulary) ResolveCountry(name string) (string, bool) {
	if v.ResolveCountryFn == nil {
		return "", false
	}
	return v.ResolveCountryFn(name)
}

func (v *Vocabulary) ResolveStudio(sourceID int) (string, bool) {
	if v.ResolveStudioFn == nil {
		return "", false
	}
	return v.ResolveStudioFn(sourceID)
}
