// Package expand implements the terminal expander (C3): given a
// fully-expanded derivation tree, it produces the concrete guess strings
// that derivation represents.
package expand

import (
	"fmt"

	verr "github.com/nihei9/pcfgguess/error"
	"github.com/nihei9/pcfgguess/grammar"
)

// Guesses expands a fully-expanded derivation tree into its guess strings.
// The caller is responsible for only calling this on a node for which
// node.IsFullyExpanded(g) is true; an unexpanded non-terminal node produces
// a GrammarError.
func Guesses(g *grammar.Grammar, n *grammar.Node) ([]string, error) {
	return expand(g, n, nil)
}

// expand walks the tree bottom-up. incoming carries the word list a Shadow
// replacement threads into its single expansion child, so that child's
// Capitalization can mangle the incoming words instead of its own values.
func expand(g *grammar.Grammar, n *grammar.Node, incoming []string) ([]string, error) {
	repl := g.Replacement(n.G, n.R)

	switch repl.Function {
	case grammar.Copy:
		return repl.Values, nil

	case grammar.Shadow:
		if len(n.Kids) != 1 {
			return nil, &verr.GrammarError{Cause: fmt.Errorf("a Shadow node must have exactly one child, has %v", len(n.Kids))}
		}
		return expand(g, n.Kids[0], repl.Values)

	case grammar.Capitalization:
		var out []string
		for _, mask := range repl.Values {
			for _, word := range incoming {
				if len(mask) != len(word) {
					continue
				}
				out = append(out, applyMask(word, mask))
			}
		}
		return out, nil

	case grammar.Transparent:
		if len(n.Kids) == 0 {
			return nil, &verr.GrammarError{Cause: fmt.Errorf("a Transparent node must be expanded before it yields guesses")}
		}
		parts := make([][]string, len(n.Kids))
		for i, k := range n.Kids {
			strs, err := expand(g, k, nil)
			if err != nil {
				return nil, err
			}
			parts[i] = strs
		}
		return cartesianConcat(parts), nil

	default:
		return nil, &verr.GrammarError{Cause: fmt.Errorf("unrecognized expansion function: %v", repl.Function)}
	}
}

// applyMask uppercases word position-wise wherever mask holds 'U'. Callers
// must ensure len(mask) == len(word).
func applyMask(word, mask string) string {
	out := make([]byte, len(word))
	for i := 0; i < len(word); i++ {
		if mask[i] == 'U' {
			out[i] = upperByte(word[i])
		} else {
			out[i] = word[i]
		}
	}
	return string(out)
}

func upperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// cartesianConcat produces the Cartesian concatenation of a sequence of
// string lists in order: parts == [["cat","dog"], ["1","2"]] yields
// ["cat1","cat2","dog1","dog2"].
func cartesianConcat(parts [][]string) []string {
	if len(parts) == 0 {
		return []string{""}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	rest := cartesianConcat(parts[1:])
	out := make([]string, 0, len(parts[0])*len(rest))
	for _, front := range parts[0] {
		for _, back := range rest {
			out = append(out, front+back)
		}
	}
	return out
}
