// internal/absurdle/pattern.go
//
// Feedback generation for a single (word, guess) pair.
// Defines:
//   - Tile: per-letter feedback (absent / present / correct).
//   - Pattern: ordered tiles for a whole guess, with glyph and ASCII renderings.
//   - PatternFor: the two-pass Wordle scoring algorithm.

package absurdle

import (
	"fmt"
	"strings"
)

// Tile is the feedback for one letter of a guess.
// The numeric order (Absent < Present < Correct) defines pattern ordering.
type Tile uint8

const (
	Absent  Tile = iota // letter not in the word (or all its occurrences already used)
	Present             // letter in the word at another position
	Correct             // letter in the right position
)

// Glyph returns the square shown to players for this tile.
func (t Tile) Glyph() string {
	switch t {
	case Correct:
		return "🟩"
	case Present:
		return "🟨"
	default:
		return "⬜"
	}
}

// String returns the tile name used in JSON payloads and logs.
func (t Tile) String() string {
	switch t {
	case Correct:
		return "correct"
	case Present:
		return "present"
	default:
		return "absent"
	}
}

// MarshalText encodes a tile as its name.
func (t Tile) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Pattern is the per-position feedback for a guess, left to right.
type Pattern []Tile

// String renders the pattern as glyphs, e.g. "⬜🟨🟩⬜⬜".
func (p Pattern) String() string {
	var b strings.Builder
	for _, t := range p {
		b.WriteString(t.Glyph())
	}
	return b.String()
}

// Code renders the pattern in ASCII: '.' absent, 'y' present, 'g' correct.
func (p Pattern) Code() string {
	b := make([]byte, len(p))
	for i, t := range p {
		switch t {
		case Correct:
			b[i] = 'g'
		case Present:
			b[i] = 'y'
		default:
			b[i] = '.'
		}
	}
	return string(b)
}

// ParseCode is the inverse of Code.
func ParseCode(s string) (Pattern, error) {
	p := make(Pattern, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'g':
			p[i] = Correct
		case 'y':
			p[i] = Present
		case '.':
			p[i] = Absent
		default:
			return nil, fmt.Errorf("absurdle: bad pattern code %q at %d", s[i], i)
		}
	}
	return p, nil
}

// Compare orders patterns lexicographically by tile value.
// A shorter pattern that is a prefix of a longer one sorts first.
func (p Pattern) Compare(q Pattern) int {
	for i := 0; i < len(p) && i < len(q); i++ {
		if p[i] != q[i] {
			if p[i] < q[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(p) < len(q):
		return -1
	case len(p) > len(q):
		return 1
	}
	return 0
}

// Equal reports whether both patterns have the same tiles position by position.
func (p Pattern) Equal(q Pattern) bool { return p.Compare(q) == 0 }

// Solved reports whether every tile is Correct.
func (p Pattern) Solved() bool {
	if len(p) == 0 {
		return false
	}
	for _, t := range p {
		if t != Correct {
			return false
		}
	}
	return true
}

// PatternFor scores guess against word using the standard two-pass algorithm.
//
// Pass 1 marks every exact match Correct and consumes that letter once.
// Pass 2 walks the remaining positions left to right; a letter is Present only
// while unconsumed occurrences remain in word, otherwise Absent.
//
// word and guess must have equal length and contain only lowercase a–z.
// Nothing is validated here; callers own that contract.
func PatternFor(word, guess string) Pattern {
	n := len(word)
	res := make(Pattern, n)
	matched := make([]bool, n)

	remaining := make(map[byte]int, n)
	for i := 0; i < n; i++ {
		remaining[word[i]]++
	}

	for i := 0; i < n; i++ {
		if guess[i] == word[i] {
			res[i] = Correct
			matched[i] = true
			remaining[guess[i]]--
		}
	}

	for i := 0; i < n; i++ {
		if matched[i] {
			continue
		}
		c := guess[i]
		if remaining[c] > 0 {
			res[i] = Present
			remaining[c]--
		} else {
			res[i] = Absent
		}
	}
	return res
}
