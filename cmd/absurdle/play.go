package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/absurdle/internal/absurdle"
	"github.com/robalobadob/absurdle/internal/game"
)

// play reads one guess per line from in until the game ends or in is exhausted.
// Malformed guesses are reported and do not count.
func play(in io.Reader, out io.Writer, g *game.Game) error {
	sc := bufio.NewScanner(in)
	fmt.Fprintf(out, "%d candidates with %d letters.\n", g.Remaining(), g.Length)
	if g.Mode == game.ModeChallenge {
		fmt.Fprintf(out, "Keep %q alive.\n", g.Target)
	}
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		turn, err := g.ApplyGuess(line)
		if errors.Is(err, game.ErrInvalidGuess) {
			fmt.Fprintf(out, "  %v\n", err)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s  %s  (%d left)\n", turn.Pattern, turn.Guess, turn.Remaining)

		switch turn.State {
		case game.StateWon:
			fmt.Fprintf(out, "Solved in %d guesses.\n", g.Guesses())
			return nil
		case game.StateLost:
			fmt.Fprintf(out, "%q was eliminated after %d guesses.\n", g.Target, g.Guesses())
			return nil
		}
	}
}

// printGroups lists every feedback group for guess, marking the one the
// adversary would keep.
func printGroups(out io.Writer, dict []string, length int, guess string) {
	var pool []string
	for _, w := range dict {
		if len(w) == length {
			pool = append(pool, w)
		}
	}
	groups := absurdle.Partition(pool, guess)
	keep, ok := absurdle.Largest(groups)
	for _, grp := range groups {
		mark := " "
		if ok && grp.Pattern.Equal(keep.Pattern) {
			mark = "*"
		}
		sample := grp.Words
		if len(sample) > 8 {
			sample = sample[:8]
		}
		fmt.Fprintf(out, "%s %s %s %5d  %s\n", mark, grp.Pattern, grp.Pattern.Code(), len(grp.Words), strings.Join(sample, " "))
	}
}
