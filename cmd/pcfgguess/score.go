package main

import (
	"fmt"
	"os"

	"github.com/nihei9/pcfgguess/scorer"
	"github.com/spf13/cobra"
)

var scoreFlags = struct {
	train *[]string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "score",
		Short:   "Score a password against a set of training passwords",
		Example: `  pcfgguess score --train Password123 Password123`,
		Args:    cobra.ExactArgs(1),
		RunE:    runScore,
	}
	scoreFlags.train = cmd.Flags().StringArray("train", nil, "password(s) to train the scorer on before scoring (repeatable)")
	rootCmd.AddCommand(cmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	tbl := scorer.NewTables()
	for _, p := range *scoreFlags.train {
		tbl.Train(p)
	}
	tbl.Finalize()

	_, cat, prob := scorer.Parse(tbl, args[0])
	fmt.Fprintf(os.Stdout, "%v %v\n", cat, prob)
	return nil
}
