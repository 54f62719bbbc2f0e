// internal/absurdle/manager.go
//
// Adversarial partitioner for a single game of Absurdle.
// Responsibilities:
//   - Hold the sorted candidate set for one configured word length.
//   - Partition candidates by the pattern each would produce against a guess.
//   - Keep the largest group (ties → lexicographically smallest pattern).
//
// A Manager is not safe for concurrent use; one game session owns one Manager.

package absurdle

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	mapset "github.com/deckarep/golang-set"
)

var (
	// ErrInvalidConfiguration is returned by New when the word length is below 1.
	ErrInvalidConfiguration = errors.New("absurdle: invalid configuration")
	// ErrEmptyState is returned by Record when no candidates remain.
	ErrEmptyState = errors.New("absurdle: no candidate words")
	// ErrLengthMismatch is returned by Record when the guess has the wrong length.
	ErrLengthMismatch = errors.New("absurdle: guess length mismatch")
)

// Group is the set of candidates that share one pattern against a guess.
type Group struct {
	Pattern Pattern
	Words   []string
}

// Manager owns the candidate set of one game.
type Manager struct {
	length int
	words  []string   // sorted, unique, all of length `length`
	set    mapset.Set // same members as words, for membership checks
}

// New builds a Manager from dictionary, keeping only words of the given length.
// Duplicates collapse. A dictionary with no word of that length yields a valid,
// empty Manager; only length < 1 is an error.
func New(dictionary []string, length int) (*Manager, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: word length %d", ErrInvalidConfiguration, length)
	}
	set := mapset.NewThreadUnsafeSet()
	for _, w := range dictionary {
		if len(w) == length {
			set.Add(w)
		}
	}
	words := make([]string, 0, set.Cardinality())
	for _, v := range set.ToSlice() {
		words = append(words, v.(string))
	}
	sort.Strings(words)
	return &Manager{length: length, words: words, set: set}, nil
}

// Length returns the configured word length.
func (m *Manager) Length() int { return m.length }

// Len returns the number of remaining candidates.
func (m *Manager) Len() int { return len(m.words) }

// Words returns a sorted copy of the remaining candidates.
func (m *Manager) Words() []string { return slices.Clone(m.words) }

// Contains reports whether word is still a candidate.
func (m *Manager) Contains(word string) bool { return m.set.Contains(word) }

// Record applies a guess and returns the pattern the adversary reports.
// The candidate set is replaced by the largest pattern group.
func (m *Manager) Record(guess string) (Pattern, error) {
	if len(m.words) == 0 {
		return nil, ErrEmptyState
	}
	if len(guess) != m.length {
		return nil, fmt.Errorf("%w: %q has %d letters, want %d", ErrLengthMismatch, guess, len(guess), m.length)
	}

	best, _ := Largest(Partition(m.words, guess))

	set := mapset.NewThreadUnsafeSet()
	for _, w := range best.Words {
		set.Add(w)
	}
	m.words, m.set = best.Words, set
	return best.Pattern, nil
}

// Partition groups words by the pattern each produces against guess.
// Groups are returned in ascending pattern order; words keep their input order.
// Every word lands in exactly one group.
func Partition(words []string, guess string) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, w := range words {
		p := PatternFor(w, guess)
		key := p.Code()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Pattern: p})
		}
		groups[i].Words = append(groups[i].Words, w)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Pattern.Compare(groups[j].Pattern) < 0
	})
	return groups
}

// Largest picks the group with the most words. groups must be in ascending
// pattern order (as Partition returns them); on a tie the earliest wins.
// ok is false when groups is empty.
func Largest(groups []Group) (best Group, ok bool) {
	for _, g := range groups {
		if len(g.Words) > len(best.Words) {
			best, ok = g, true
		}
	}
	return best, ok
}
