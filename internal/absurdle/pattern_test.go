package absurdle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func code(t *testing.T, s string) Pattern {
	t.Helper()
	p, err := ParseCode(s)
	require.NoError(t, err)
	return p
}

func TestPatternForExactMatch(t *testing.T) {
	p := PatternFor("abcde", "abcde")
	assert.Equal(t, "ggggg", p.Code())
	assert.Equal(t, "🟩🟩🟩🟩🟩", p.String())
	assert.True(t, p.Solved())
}

func TestPatternFor(t *testing.T) {
	cases := []struct {
		word, guess, want string
	}{
		{"speed", "erase", "y..yy"}, // two e's in word, both e's in guess are credited
		{"crepe", "eerie", "y.y.g"}, // green e consumed first, only one e left for yellow
		{"abbey", "kebab", ".ygyy"},
		{"world", "hello", "...gy"}, // first l is gray: the only l went green in pass 1
		{"fresh", "hello", "yy..."},
		{"fancy", "hello", "....."},
		{"aaxxx", "xaaxa", "ygyg."},
		{"a", "b", "."},
	}
	for _, tc := range cases {
		t.Run(tc.word+"/"+tc.guess, func(t *testing.T) {
			assert.Equal(t, tc.want, PatternFor(tc.word, tc.guess).Code())
		})
	}
}

// Correct and Present marks for a letter never exceed its count in the word.
func TestPatternForLetterBound(t *testing.T) {
	words := []string{"speed", "erase", "eerie", "crepe", "abbey", "kebab", "llama", "hello", "mamma", "geese"}
	for _, w := range words {
		for _, g := range words {
			p := PatternFor(w, g)
			credited := map[byte]int{}
			for i, tile := range p {
				if tile != Absent {
					credited[g[i]]++
				}
			}
			for c, n := range credited {
				var inWord int
				for i := 0; i < len(w); i++ {
					if w[i] == c {
						inWord++
					}
				}
				assert.LessOrEqualf(t, n, inWord, "word=%s guess=%s letter=%c", w, g, c)
			}
		}
	}
}

func TestPatternCompare(t *testing.T) {
	assert.Equal(t, -1, code(t, "..").Compare(code(t, ".y")))
	assert.Equal(t, -1, code(t, ".y").Compare(code(t, ".g")))
	assert.Equal(t, 1, code(t, "g.").Compare(code(t, ".g")))
	assert.Equal(t, 0, code(t, "gyg").Compare(code(t, "gyg")))
	assert.True(t, code(t, "y.g").Equal(PatternFor("crepe", "eerie")[2:]))

	// glyph strings sort the same way as tile sequences
	assert.Less(t, code(t, ".y").String(), code(t, ".g").String())
	assert.Less(t, code(t, "..").String(), code(t, "y.").String())
}

func TestParseCodeRejectsUnknown(t *testing.T) {
	_, err := ParseCode("gx.")
	assert.Error(t, err)
}

func TestSolvedEmpty(t *testing.T) {
	assert.False(t, Pattern{}.Solved())
	assert.False(t, code(t, "gg.").Solved())
}
