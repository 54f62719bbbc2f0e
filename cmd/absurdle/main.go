// Command absurdle plays Absurdle in the terminal and exposes the feedback
// and partition primitives for poking at a dictionary.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3" // imports as package "cli"

	"github.com/robalobadob/absurdle/internal/absurdle"
	"github.com/robalobadob/absurdle/internal/game"
	"github.com/robalobadob/absurdle/internal/words"
)

func main() {
	length := int64(5)
	dictPath := ""
	cmd := &cli.Command{
		Name:  "absurdle",
		Usage: "adversarial wordle",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "length",
				Value:       5,
				Aliases:     []string{"n"},
				Usage:       "letters per word",
				Destination: &length,
			},
			&cli.StringFlag{
				Name:        "dict",
				Value:       "",
				Aliases:     []string{"d"},
				Usage:       "dictionary file, one word per line; default is the built-in list",
				Destination: &dictPath,
			},
		},
		Commands: []*cli.Command{
			{
				Name: "play",
				Usage: `play an interactive game; type a guess per line, ctrl-d to quit.
				With --challenge the target word must survive every guess.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "challenge",
						Usage: "target word for challenge mode",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					dict, err := loadDictionary(dictPath)
					if err != nil {
						return cli.Exit(err, 1)
					}
					opts := game.Options{Length: int(length)}
					if t := cmd.String("challenge"); t != "" {
						opts.Mode, opts.Target = game.ModeChallenge, t
					}
					g, err := game.New(dict, opts)
					if err != nil {
						return cli.Exit(err, 1)
					}
					if g.Remaining() == 0 {
						return cli.Exit(fmt.Sprintf("no %d-letter words in dictionary", length), 1)
					}
					return play(os.Stdin, os.Stdout, g)
				},
			},
			{
				Name:  "pattern",
				Usage: "pattern WORD GUESS: print the feedback GUESS gets against WORD",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() != 2 {
						return cli.Exit("need WORD and GUESS", 2)
					}
					word, guess := words.Normalize(cmd.Args().Get(0)), words.Normalize(cmd.Args().Get(1))
					if len(word) != len(guess) {
						return cli.Exit("WORD and GUESS must be the same length", 2)
					}
					p := absurdle.PatternFor(word, guess)
					fmt.Println(p, p.Code())
					return nil
				},
			},
			{
				Name:  "groups",
				Usage: "groups GUESS: partition the dictionary by the feedback GUESS would get",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() != 1 {
						return cli.Exit("need GUESS", 2)
					}
					dict, err := loadDictionary(dictPath)
					if err != nil {
						return cli.Exit(err, 1)
					}
					guess := words.Normalize(cmd.Args().First())
					if len(guess) != int(length) {
						return cli.Exit(fmt.Sprintf("GUESS must have %d letters", length), 2)
					}
					printGroups(os.Stdout, dict, int(length), guess)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadDictionary(path string) ([]string, error) {
	if err := words.Init(path); err != nil {
		return nil, err
	}
	return words.All(), nil
}
