// Package error defines the typed error values shared across the grammar
// engine, the ranked enumerator, and their hosts.
package error

import (
	"fmt"
	"strings"
)

// GrammarError describes a single violation of one of the grammar invariants
// (a missing or duplicate START non-terminal, a dangling pos index, a
// non-terminal whose replacement probabilities are not non-increasing, an
// unrecognized expansion function, ...).
type GrammarError struct {
	Cause          error
	NonTerminal    string
	NonTerminalNum int
	Replacement    int
	// Path is filled in by the loader (package spec) when the grammar came
	// from a file; it is empty when the grammar was constructed in memory.
	Path string
}

func (e *GrammarError) Error() string {
	var loc strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&loc, "%v: ", e.Path)
	}
	if e.NonTerminal != "" {
		fmt.Fprintf(&loc, "non-terminal %v (#%v)", e.NonTerminal, e.NonTerminalNum)
		if e.Replacement >= 0 {
			fmt.Fprintf(&loc, " replacement #%v", e.Replacement)
		}
		loc.WriteString(": ")
	}
	return fmt.Sprintf("%vgrammar error: %v", loc.String(), e.Cause)
}

func (e *GrammarError) Unwrap() error {
	return e.Cause
}

// GrammarErrors aggregates every violation found by a single Validate pass,
// rather than bailing out on the first one.
type GrammarErrors []*GrammarError

func (errs GrammarErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// QueueFullError is returned when a trim could not shrink the ranked queue
// because the retained tie-band spans the entire queue. It indicates a
// grammar that violates the non-increasing replacement-probability
// invariant somewhere below the node that triggered the trim.
type QueueFullError struct {
	Size int
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("queue full: trim could not reduce %v entries below the reduction threshold", e.Size)
}

// ErrQueueEmpty is returned by the guess pump when the queue has emptied and
// min_probability is 0: there is nothing left to rebuild from, so the
// output stream ends normally.
var ErrQueueEmpty = fmt.Errorf("queue empty")
