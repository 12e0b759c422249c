package doubles

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		runes uint64
		bytes uint64
	}{
		{"empty", "", 0, 0},
		{"single", "a", 0, 0},
		{"pair", "aa", 1, 1},
		{"two pairs", "aabb", 2, 2},
		{"run of three", "aaa", 2, 2},
		{"no doubles", "abcdef", 0, 0},
		{"case sensitive", "abbcCddef", 2, 2},
		{"spaces", "a  b", 1, 1},
		// é is C3 A9: the code points repeat but no two adjacent bytes do.
		{"repeated two-byte", "éé", 1, 0},
		// U+1041 is E1 81 81: one code point, one equal byte pair inside it.
		{"three-byte inner pair", "၁", 0, 1},
		{"repeated three-byte", "၁၁", 1, 2},
		// U+10000 is F0 90 80 80.
		{"four-byte inner pair", "\U00010000", 0, 1},
		{"mixed", "xééy", 1, 0},
		{"euro", "€€", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.runes, Count(tt.input), "code points")
			assert.Equal(t, tt.bytes, CountBytes(tt.input), "bytes")
		})
	}
}

// The byte expectations above are derived by hand; this checks them against
// the encoded form so a mistyped literal shows up here rather than as a
// confusing count mismatch.
func TestMultiByteEncodings(t *testing.T) {
	assert.Equal(t, []byte{0xC3, 0xA9, 0xC3, 0xA9}, []byte("éé"))
	assert.Equal(t, []byte{0xE1, 0x81, 0x81}, []byte("၁"))
	assert.Equal(t, []byte{0xF0, 0x90, 0x80, 0x80}, []byte("\U00010000"))
}

func TestCountAs(t *testing.T) {
	assert.Equal(t, uint64(1), CountAs(CodePoints, "éé"))
	assert.Equal(t, uint64(0), CountAs(Bytes, "éé"))
	assert.Equal(t, uint64(2), CountAs(Model(42), "aabb"), "unknown models fall back to code points")
}

func TestParseModel(t *testing.T) {
	for in, want := range map[string]Model{
		"codepoints": CodePoints,
		"runes":      CodePoints,
		"chars":      CodePoints,
		" Bytes ":    Bytes,
		"byte":       Bytes,
	} {
		got, err := ParseModel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseModel("graphemes")
	assert.ErrorContains(t, err, "graphemes")
}

func TestModelString(t *testing.T) {
	assert.Equal(t, "codepoints", CodePoints.String())
	assert.Equal(t, "bytes", Bytes.String())
	assert.Equal(t, "Model(7)", Model(7).String())
}

func TestIdempotent(t *testing.T) {
	s := strings.Repeat("aab၁၁é", 50)
	first, firstBytes := Count(s), CountBytes(s)
	for range 3 {
		assert.Equal(t, first, Count(s))
		assert.Equal(t, firstBytes, CountBytes(s))
	}
}

func TestLongRun(t *testing.T) {
	s := strings.Repeat("z", 10000)
	assert.Equal(t, uint64(9999), Count(s))
	assert.Equal(t, uint64(9999), CountBytes(s))
}

// naiveRunes and naiveBytes count over materialized slices, the plain
// zip-with-successor formulation.
func naiveRunes(s string) uint64 {
	rs := []rune(s)
	var n uint64
	for i := 0; i+1 < len(rs); i++ {
		if rs[i] == rs[i+1] {
			n++
		}
	}
	return n
}

func naiveBytes(s string) uint64 {
	bs := []byte(s)
	var n uint64
	for i := 0; i+1 < len(bs); i++ {
		if bs[i] == bs[i+1] {
			n++
		}
	}
	return n
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func FuzzCount(f *testing.F) {
	for _, seed := range []string{"", "a", "aabb", "éé", "၁၁", "\U00010000", "abbcCddef"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			t.Skip("invalid UTF-8 is rejected before counting")
		}
		c, cb := Count(s), CountBytes(s)

		if c != naiveRunes(s) {
			t.Fatalf("Count(%q) = %d, want %d", s, c, naiveRunes(s))
		}
		if cb != naiveBytes(s) {
			t.Fatalf("CountBytes(%q) = %d, want %d", s, cb, naiveBytes(s))
		}

		if n := utf8.RuneCountInString(s); n > 0 && c > uint64(n-1) {
			t.Fatalf("Count(%q) = %d exceeds %d pairs", s, c, n-1)
		}
		if n := len(s); n > 0 && cb > uint64(n-1) {
			t.Fatalf("CountBytes(%q) = %d exceeds %d pairs", s, cb, n-1)
		}

		if isASCII(s) && c != cb {
			t.Fatalf("ASCII %q: Count = %d, CountBytes = %d", s, c, cb)
		}
	})
}

func benchInput() string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	var sb strings.Builder
	x := uint32(1)
	for range 1_000_000 {
		x = x*1664525 + 1013904223
		sb.WriteByte(letters[(x>>16)%uint32(len(letters))])
	}
	return sb.String()
}

func BenchmarkCount(b *testing.B) {
	s := benchInput()
	b.SetBytes(int64(len(s)))
	b.ResetTimer()
	for b.Loop() {
		Count(s)
	}
}

func BenchmarkCountBytes(b *testing.B) {
	s := benchInput()
	b.SetBytes(int64(len(s)))
	b.ResetTimer()
	for b.Loop() {
		CountBytes(s)
	}
}
