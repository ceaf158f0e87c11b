package worldart

// Vocabulary maps source-language names used by the catalog to canonical
// identifiers. Lookups are exact-match; unresolved names report false.
type Vocabulary interface {
	ResolveGenre(name string) (string, bool)
	ResolveType(name string) (Type, bool)
	ResolveCountry(name string) (string, bool)
	ResolveStudio(sourceID int) (string, bool)
}
