package doublesmod

import "github.com/rubiojr/stringdoubles/doubles"

// --- string_doubles module ---

type StringDoubles struct{}

// CountDoubles returns the number of letter pairs in val,
// e.g. "abbcCddef" has 2.
func (*StringDoubles) CountDoubles(val string) uint64 {
	return doubles.Count(val)
}

// CountDoublesBytes is CountDoubles over the UTF-8 encoding of val.
// It differs from CountDoubles once val holds multi-byte characters.
func (*StringDoubles) CountDoublesBytes(val string) uint64 {
	return doubles.CountBytes(val)
}
