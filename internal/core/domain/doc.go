// Package domain defines the core business entities for dealwatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - KeywordCategory: A named, user-editable group of keywords
//   - Query: A subject combined with the active keyword set
//   - RawResult: An unvalidated hit returned by the search provider
//   - SearchResult: A hit that survived client-side keyword filtering
//
// It also holds the pure functions that operate on them: keyword
// collection mutators, query construction, result filtering and
// term highlighting.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
