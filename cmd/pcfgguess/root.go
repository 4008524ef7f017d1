package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pcfgguess",
	Short: "Enumerate password guesses from a trained PCFG, in probability order",
	Long: `pcfgguess provides three features:
- Enumerates guesses from a trained grammar in non-increasing probability order.
- Scores an individual password against a trained grammar.
- Prints a trained grammar's structure in a readable format.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
