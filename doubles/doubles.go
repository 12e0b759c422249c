// Package doubles counts adjacent equal elements in text.
//
// Two element models are supported. Count walks the decoded code points of a
// string, CountBytes walks its raw UTF-8 bytes. For ASCII text both agree;
// once a code point needs more than one byte the results can differ in either
// direction, so the two are kept as separate loops.
//
// Input is expected to be valid UTF-8. Callers exposing these functions to
// untrusted input validate it first (see package textio).
package doubles

import (
	"fmt"
	"strings"
)

// Count returns the number of positions i where code point i equals code
// point i+1.
func Count(s string) uint64 {
	var total uint64
	first := true
	var prev rune
	for _, r := range s {
		if !first && r == prev {
			total++
		}
		prev = r
		first = false
	}
	return total
}

// CountBytes returns the number of positions i where byte i equals byte i+1.
func CountBytes(s string) uint64 {
	var total uint64
	for i := 1; i < len(s); i++ {
		if s[i-1] == s[i] {
			total++
		}
	}
	return total
}

// Model selects which element sequence a text is viewed as.
type Model int

const (
	CodePoints Model = iota
	Bytes
)

func (m Model) String() string {
	switch m {
	case CodePoints:
		return "codepoints"
	case Bytes:
		return "bytes"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// ParseModel parses a model name as printed by Model.String.
// "runes" and "chars" are accepted as aliases for code points.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "codepoints", "codepoint", "runes", "chars":
		return CodePoints, nil
	case "bytes", "byte":
		return Bytes, nil
	}
	return 0, fmt.Errorf("unknown element model %q (want codepoints or bytes)", s)
}

// CountAs counts adjacent duplicates of s under model m.
func CountAs(m Model, s string) uint64 {
	if m == Bytes {
		return CountBytes(s)
	}
	return Count(s)
}
