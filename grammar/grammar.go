// Package grammar holds the immutable representation of a trained PCFG
// (the grammar store, C1) together with the algebra over derivation trees
// built on top of it (the parse-tree algebra, C2). Both are read-only once
// built: the trainer that produces a Grammar, and the file format it is
// serialized in, are out of scope here (see package spec).
package grammar

import (
	"fmt"

	verr "github.com/nihei9/pcfgguess/error"
)

// Function is one of the expansion operators a replacement carries.
type Function int

const (
	Copy Function = iota
	Shadow
	Capitalization
	Transparent
)

func (f Function) String() string {
	switch f {
	case Copy:
		return "Copy"
	case Shadow:
		return "Shadow"
	case Capitalization:
		return "Capitalization"
	case Transparent:
		return "Transparent"
	default:
		return fmt.Sprintf("Function(%v)", int(f))
	}
}

// ParseFunction converts the textual function name used by the on-disk
// grammar format (package spec) into a Function value.
func ParseFunction(s string) (Function, bool) {
	switch s {
	case "Copy":
		return Copy, true
	case "Shadow":
		return Shadow, true
	case "Capitalization":
		return Capitalization, true
	case "Transparent":
		return Transparent, true
	default:
		return 0, false
	}
}

// NonTerminalType distinguishes the single START non-terminal from every
// other one.
type NonTerminalType string

const (
	TypeNormal NonTerminalType = ""
	TypeStart  NonTerminalType = "START"
)

// Replacement is one alternative a non-terminal can expand to.
type Replacement struct {
	IsTerminal  bool
	Probability float64
	Function    Function
	Values      []string
	Pos         []int
}

// NonTerminal is an ordered sequence of weighted replacements, sorted by
// non-increasing probability (grammar invariant 2).
type NonTerminal struct {
	Name         string
	Type         NonTerminalType
	Replacements []*Replacement
}

// Grammar is the immutable table a derivation tree is evaluated against.
// It is only known to satisfy the grammar invariants once Validate has
// returned nil for it.
type Grammar struct {
	nonTerminals []*NonTerminal
}

// New builds a Grammar from an ordered sequence of non-terminals. It does
// not validate the grammar; call Validate explicitly (the loader in package
// spec always does).
func New(nonTerminals []*NonTerminal) *Grammar {
	return &Grammar{nonTerminals: nonTerminals}
}

// NonTerminalCount returns the number of non-terminals in the grammar.
func (g *Grammar) NonTerminalCount() int {
	return len(g.nonTerminals)
}

// NonTerminal returns the non-terminal at index i.
func (g *Grammar) NonTerminal(i int) *NonTerminal {
	return g.nonTerminals[i]
}

// Replacement returns replacement r of non-terminal i.
func (g *Grammar) Replacement(i, r int) *Replacement {
	return g.nonTerminals[i].Replacements[r]
}

// StartIndex returns the index of the unique START non-terminal. Unlike the
// grammar this system was distilled from - whose fallback loop compared
// self.grammar[-1] instead of self.grammar[index], so it never found a
// START that wasn't already the last entry - this scans the whole sequence.
func (g *Grammar) StartIndex() (int, error) {
	found := -1
	for i, nt := range g.nonTerminals {
		if nt.Type != TypeStart {
			continue
		}
		if found != -1 {
			return -1, &verr.GrammarError{Cause: semErrMultipleStart}
		}
		found = i
	}
	if found == -1 {
		return -1, &verr.GrammarError{Cause: semErrNoStart}
	}
	return found, nil
}

// Validate checks the four grammar invariants from the data model and
// returns every violation found, not just the first.
func (g *Grammar) Validate() error {
	var errs verr.GrammarErrors

	startCount := 0
	for i, nt := range g.nonTerminals {
		if nt.Type == TypeStart {
			startCount++
		}

		if len(nt.Replacements) == 0 {
			errs = append(errs, &verr.GrammarError{
				Cause: semErrNoReplacements, NonTerminal: nt.Name, NonTerminalNum: i, Replacement: -1,
			})
			continue
		}

		prev := 1.0
		for r, repl := range nt.Replacements {
			if repl.Probability <= 0 || repl.Probability > 1 {
				errs = append(errs, &verr.GrammarError{
					Cause: semErrProbOutOfRange, NonTerminal: nt.Name, NonTerminalNum: i, Replacement: r,
				})
			} else if repl.Probability > prev {
				errs = append(errs, &verr.GrammarError{
					Cause: semErrNonIncreasingProb, NonTerminal: nt.Name, NonTerminalNum: i, Replacement: r,
				})
			}
			prev = repl.Probability

			if !repl.IsTerminal && len(repl.Pos) == 0 {
				errs = append(errs, &verr.GrammarError{
					Cause: semErrNonTerminalNeedsPos, NonTerminal: nt.Name, NonTerminalNum: i, Replacement: r,
				})
			}
			for _, p := range repl.Pos {
				if p < 0 || p >= len(g.nonTerminals) {
					errs = append(errs, &verr.GrammarError{
						Cause: semErrDanglingPos, NonTerminal: nt.Name, NonTerminalNum: i, Replacement: r,
					})
				}
			}
			if repl.Function == Shadow && len(repl.Pos) != 1 {
				errs = append(errs, &verr.GrammarError{
					Cause: semErrShadowArity, NonTerminal: nt.Name, NonTerminalNum: i, Replacement: r,
				})
			}
			switch repl.Function {
			case Copy, Shadow, Capitalization, Transparent:
			default:
				errs = append(errs, &verr.GrammarError{
					Cause: semErrUnknownFunction, NonTerminal: nt.Name, NonTerminalNum: i, Replacement: r,
				})
			}
		}
	}

	switch startCount {
	case 1:
	case 0:
		errs = append(errs, &verr.GrammarError{Cause: semErrNoStart, Replacement: -1})
	default:
		errs = append(errs, &verr.GrammarError{Cause: semErrMultipleStart, Replacement: -1})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
