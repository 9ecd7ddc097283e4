// Package domain defines the core entities for addrbook.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Contact: An address book entry with native field values
//   - FieldValue: The closed set of native value shapes (Text, Blob, Sequence, Labeled)
//   - NormalizedValue: The plain, serialisable form of a field value
//   - Record / FetchResult: The flattened output of a fetch
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
