package main

import (
	"fmt"
	"os"

	"github.com/nihei9/pcfgguess/grammar"
	"github.com/nihei9/pcfgguess/spec"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print a trained grammar's structure in readable format",
		Example: `  pcfgguess show grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	g, path, err := readGrammarArgOrStdin(args)
	if err != nil {
		return spec.Annotate(err, path)
	}

	startNode, err := grammar.Start(g)
	if err != nil {
		return err
	}
	start := g.NonTerminal(startNode.G)

	fmt.Fprintf(os.Stdout, "non-terminals: %v\n", g.NonTerminalCount())
	fmt.Fprintf(os.Stdout, "start: %v\n", start.Name)
	for i := 0; i < g.NonTerminalCount(); i++ {
		nt := g.NonTerminal(i)
		fmt.Fprintf(os.Stdout, "%4v %v (%v replacements)\n", i, nt.Name, len(nt.Replacements))
	}
	return nil
}
