// internal/words/words.go
//
// Provides the dictionary the game engine draws candidates from.
//
// Responsibilities:
//   - Load the word list from a file or fall back to the embedded default.
//   - Normalize entries (trim, lowercase, a–z only). Every length is kept;
//     picking words of one length is the engine's job.
//   - Supply lookups used by the server: All, OfLength, Stats.
//
// Initialization (Init):
//   1. If path is non-empty, load one word per line from that file.
//   2. Otherwise use assets/dictionary.txt.
//   Init runs once (sync.Once); later calls return the first result.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/robalobadob/absurdle/assets"
)

var (
	initOnce   sync.Once
	dictionary []string // sorted, unique
	initialErr error
)

// Init loads the dictionary exactly once.
// Returns an error if the file cannot be read or yields no words.
func Init(path string) error {
	initOnce.Do(func() {
		var list []string
		var err error
		if path != "" {
			list, err = LoadFile(path)
		} else {
			var raw []string
			raw, err = assets.Dictionary()
			list = normalize(raw)
		}
		if err != nil {
			initialErr = err
			return
		}
		if len(list) == 0 {
			initialErr = errors.New("words: dictionary is empty")
			return
		}
		dictionary = list
	})
	return initialErr
}

// LoadFile reads a word list from path. See Load.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads one word per line, skipping blanks and '#' comments.
// Entries are lowercased; anything that is not pure a–z is dropped.
// The result is sorted and de-duplicated.
func Load(r io.Reader) ([]string, error) {
	var raw []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		raw = append(raw, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: scan: %w", err)
	}
	return normalize(raw), nil
}

// normalize lowercases, filters to a–z and returns a sorted unique slice.
func normalize(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		w := Normalize(l)
		if w == "" || !IsAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Normalize trims whitespace and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsAlpha reports whether s is non-empty and all lowercase ASCII letters.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// All returns a copy of the loaded dictionary.
func All() []string {
	return slices.Clone(dictionary)
}

// OfLength returns the sorted dictionary words with exactly n letters.
func OfLength(n int) []string {
	var out []string
	for _, w := range dictionary {
		if len(w) == n {
			out = append(out, w)
		}
	}
	return out
}

// Stats returns the number of loaded words per length.
func Stats() map[int]int {
	m := make(map[int]int)
	for _, w := range dictionary {
		m[len(w)]++
	}
	return m
}
