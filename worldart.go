// Package worldart extracts structured media-catalog records from
// world-art.ru animation and cinema pages.
//
// This package contains domain types, pure field parsers and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, http/).
package worldart

// DefaultHost is the catalog site all source links are resolved against.
const DefaultHost = "http://www.world-art.ru"

// SourceName prefixes every image key stored on behalf of this catalog.
const SourceName = "world-art"
