package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/pcfgguess/pump"
	"github.com/nihei9/pcfgguess/spec"
	"github.com/spf13/cobra"
)

var guessFlags = struct {
	count *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "guess",
		Short:   "Print guesses from a trained grammar in non-increasing probability order",
		Example: `  pcfgguess guess -n 100 grammar.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runGuess,
	}
	guessFlags.count = cmd.Flags().IntP("count", "n", 0, "maximum number of guesses to print (0 means unlimited)")
	rootCmd.AddCommand(cmd)
}

func runGuess(cmd *cobra.Command, args []string) error {
	g, path, err := readGrammarArgOrStdin(args)
	if err != nil {
		return spec.Annotate(err, path)
	}

	p, err := pump.New(g, 0, 0)
	if err != nil {
		return err
	}

	printed := 0
	limit := *guessFlags.count
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = p.Run(ctx, func(guesses []string) error {
		for _, s := range guesses {
			fmt.Fprintln(os.Stdout, s)
			printed++
			if limit > 0 && printed >= limit {
				cancel()
				return nil
			}
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
