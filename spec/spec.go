// Package spec defines the on-disk JSON grammar format (A2): the module
// boundary where a trained grammar crosses into C1's in-memory tables.
// This mirrors the teacher's spec.CompiledGrammar + json.Marshal idiom in
// cmd/vartan/compile.go, adapted from a parsing table to a PCFG.
package spec

import (
	"encoding/json"
	"fmt"
	"io"

	verr "github.com/nihei9/pcfgguess/error"
	"github.com/nihei9/pcfgguess/grammar"
)

// Replacement is the JSON encoding of one grammar.Replacement.
type Replacement struct {
	IsTerminal  bool     `json:"is_terminal"`
	Probability float64  `json:"probability"`
	Function    string   `json:"function"`
	Values      []string `json:"values,omitempty"`
	Pos         []int    `json:"pos,omitempty"`
}

// NonTerminal is the JSON encoding of one grammar.NonTerminal.
type NonTerminal struct {
	Name         string         `json:"name"`
	Type         string         `json:"type,omitempty"`
	Replacements []*Replacement `json:"replacements"`
}

// Grammar is the JSON encoding of a full grammar.Grammar.
type Grammar struct {
	NonTerminals []*NonTerminal `json:"non_terminals"`
}

// Load reads a JSON-encoded grammar, converts it to grammar.Grammar, and
// validates it. A malformed JSON document returns a plain error; a
// well-formed document that violates a grammar invariant returns
// verr.GrammarErrors.
func Load(r io.Reader) (*grammar.Grammar, error) {
	var doc Grammar
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("spec: malformed grammar document: %w", err)
	}

	nts := make([]*grammar.NonTerminal, len(doc.NonTerminals))
	for i, nt := range doc.NonTerminals {
		repls := make([]*grammar.Replacement, len(nt.Replacements))
		for j, r := range nt.Replacements {
			fn, ok := grammar.ParseFunction(r.Function)
			if !ok {
				return nil, &verr.GrammarError{
					Cause:          fmt.Errorf("unrecognized function name %q", r.Function),
					NonTerminal:    nt.Name,
					NonTerminalNum: i,
					Replacement:    j,
				}
			}
			repls[j] = &grammar.Replacement{
				IsTerminal:  r.IsTerminal,
				Probability: r.Probability,
				Function:    fn,
				Values:      r.Values,
				Pos:         r.Pos,
			}
		}
		nts[i] = &grammar.NonTerminal{
			Name:         nt.Name,
			Type:         grammar.NonTerminalType(nt.Type),
			Replacements: repls,
		}
	}

	g := grammar.New(nts)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Write encodes g as JSON.
func Write(w io.Writer, g *grammar.Grammar) error {
	doc := Grammar{NonTerminals: make([]*NonTerminal, g.NonTerminalCount())}
	for i := 0; i < g.NonTerminalCount(); i++ {
		nt := g.NonTerminal(i)
		repls := make([]*Replacement, len(nt.Replacements))
		for j, r := range nt.Replacements {
			repls[j] = &Replacement{
				IsTerminal:  r.IsTerminal,
				Probability: r.Probability,
				Function:    r.Function.String(),
				Values:      r.Values,
				Pos:         r.Pos,
			}
		}
		doc.NonTerminals[i] = &NonTerminal{
			Name:         nt.Name,
			Type:         string(nt.Type),
			Replacements: repls,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&doc)
}

// Annotate fills in the Path field on every verr.GrammarError underneath
// err, the way the teacher's runCompile defer annotates verr.SpecErrors
// with the grammar file path after the fact.
func Annotate(err error, path string) error {
	if errs, ok := err.(verr.GrammarErrors); ok {
		for _, e := range errs {
			e.Path = path
		}
		return errs
	}
	if e, ok := err.(*verr.GrammarError); ok {
		e.Path = path
		return e
	}
	return err
}
