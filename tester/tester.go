// Package tester adapts the teacher's TestResult/diff-reporting idiom (A4)
// to the guess pump: a TestCase names a grammar and the leading guesses it
// must produce, and Run reports a pass/fail per case with a line-by-line
// diff on mismatch.
package tester

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nihei9/pcfgguess/grammar"
	"github.com/nihei9/pcfgguess/pump"
)

// Diff records a single position where the actual guess stream diverged
// from the expected one.
type Diff struct {
	Index    int
	Expected string
	Actual   string
}

// TestCase names a grammar and the ordered prefix of guesses it must
// produce when pumped from empty.
type TestCase struct {
	Name    string
	Grammar *grammar.Grammar
	Leading []string
}

// TestResult is the outcome of running one TestCase.
type TestResult struct {
	CaseName string
	Error    error
	Diffs    []*Diff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.CaseName, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, d := range r.Diffs {
			diffLines = append(diffLines, fmt.Sprintf("position %v: expected %q, got %q", d.Index, d.Expected, d.Actual))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.CaseName)
}

var errLeadingPrefixCollected = errors.New("tester: leading prefix collected")

// Run executes every case and returns one TestResult per case, in order.
func Run(cases []*TestCase) []*TestResult {
	rs := make([]*TestResult, len(cases))
	for i, c := range cases {
		rs[i] = runCase(c)
	}
	return rs
}

func runCase(c *TestCase) *TestResult {
	p, err := pump.New(c.Grammar, 0, 0)
	if err != nil {
		return &TestResult{CaseName: c.Name, Error: err}
	}

	var actual []string
	err = p.Run(context.Background(), func(guesses []string) error {
		actual = append(actual, guesses...)
		if len(actual) >= len(c.Leading) {
			return errLeadingPrefixCollected
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLeadingPrefixCollected) {
		return &TestResult{CaseName: c.Name, Error: err}
	}

	if len(actual) > len(c.Leading) {
		actual = actual[:len(c.Leading)]
	}

	var diffs []*Diff
	for i, want := range c.Leading {
		if i >= len(actual) {
			diffs = append(diffs, &Diff{Index: i, Expected: want, Actual: "<none>"})
			continue
		}
		if actual[i] != want {
			diffs = append(diffs, &Diff{Index: i, Expected: want, Actual: actual[i]})
		}
	}
	if len(diffs) > 0 {
		return &TestResult{CaseName: c.Name, Error: fmt.Errorf("output mismatch"), Diffs: diffs}
	}
	return &TestResult{CaseName: c.Name}
}
