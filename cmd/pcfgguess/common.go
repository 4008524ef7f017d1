package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/nihei9/pcfgguess/grammar"
	"github.com/nihei9/pcfgguess/spec"
)

// readGrammarArgOrStdin loads a grammar from args[0] if given, or from
// stdin otherwise, in the teacher's compile.go style (positional argument
// for the path, stdin fallback when absent). It returns the path actually
// used (for error annotation) alongside the grammar.
func readGrammarArgOrStdin(args []string) (*grammar.Grammar, string, error) {
	if len(args) == 0 {
		src, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			return nil, "stdin", err
		}
		g, err := spec.Load(bytes.NewReader(src))
		return g, "stdin", err
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return nil, path, fmt.Errorf("cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	g, err := spec.Load(f)
	return g, path, err
}
