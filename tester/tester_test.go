package tester

import (
	"testing"

	"github.com/nihei9/pcfgguess/grammar"
)

func flatGrammar() *grammar.Grammar {
	return grammar.New([]*grammar.NonTerminal{
		{
			Name: "A",
			Type: grammar.TypeStart,
			Replacements: []*grammar.Replacement{
				{IsTerminal: true, Probability: 0.9, Function: grammar.Copy, Values: []string{"r0"}},
				{IsTerminal: true, Probability: 0.1, Function: grammar.Copy, Values: []string{"r1"}},
			},
		},
	})
}

func TestRunPasses(t *testing.T) {
	cases := []*TestCase{
		{Name: "flat", Grammar: flatGrammar(), Leading: []string{"r0", "r1"}},
	}
	rs := Run(cases)
	if len(rs) != 1 {
		t.Fatalf("expected 1 result, got %v", len(rs))
	}
	if rs[0].Error != nil {
		t.Fatalf("unexpected failure: %v", rs[0])
	}
}

func TestRunReportsDiffOnMismatch(t *testing.T) {
	cases := []*TestCase{
		{Name: "flat", Grammar: flatGrammar(), Leading: []string{"r0", "wrong"}},
	}
	rs := Run(cases)
	if rs[0].Error == nil {
		t.Fatal("expected a mismatch to fail")
	}
	if len(rs[0].Diffs) != 1 {
		t.Fatalf("expected exactly 1 diff, got %v", rs[0].Diffs)
	}
	d := rs[0].Diffs[0]
	if d.Index != 1 || d.Expected != "wrong" || d.Actual != "r1" {
		t.Fatalf("unexpected diff: %+v", d)
	}
}

func TestRunReportsMissingGuessesAsNone(t *testing.T) {
	cases := []*TestCase{
		{Name: "flat", Grammar: flatGrammar(), Leading: []string{"r0", "r1", "r2"}},
	}
	rs := Run(cases)
	if rs[0].Error == nil {
		t.Fatal("expected failure when fewer guesses exist than requested")
	}
	if len(rs[0].Diffs) != 1 || rs[0].Diffs[0].Actual != "<none>" {
		t.Fatalf("expected a single <none> diff, got %+v", rs[0].Diffs)
	}
}
