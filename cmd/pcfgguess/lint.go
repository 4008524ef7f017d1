package main

import (
	"fmt"
	"os"

	"github.com/nihei9/pcfgguess/spec"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "lint",
		Short:   "Validate a trained grammar's invariants without enumerating it",
		Example: `  pcfgguess lint grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runLint,
	}
	rootCmd.AddCommand(cmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	_, path, err := readGrammarArgOrStdin(args)
	if err != nil {
		return spec.Annotate(err, path)
	}
	fmt.Fprintln(os.Stdout, "ok")
	return nil
}
