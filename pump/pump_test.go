package pump

import (
	"context"
	"reflect"
	"testing"

	"github.com/nihei9/pcfgguess/grammar"
)

// TestRunS1 reproduces scenario S1: a single Shadow+Capitalization chain
// that must emit exactly "Cat" at probability 0.6.
func TestRunS1(t *testing.T) {
	g := grammar.New([]*grammar.NonTerminal{
		{
			Name: "START",
			Type: grammar.TypeStart,
			Replacements: []*grammar.Replacement{
				{IsTerminal: false, Probability: 1.0, Function: grammar.Transparent, Pos: []int{1}},
			},
		},
		{
			Name: "L",
			Replacements: []*grammar.Replacement{
				{IsTerminal: false, Probability: 1.0, Function: grammar.Shadow, Values: []string{"cat"}, Pos: []int{2}},
			},
		},
		{
			Name: "Cap",
			Replacements: []*grammar.Replacement{
				{IsTerminal: true, Probability: 0.6, Function: grammar.Capitalization, Values: []string{"ULL"}},
			},
		},
	})

	p, err := New(g, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	var emitted [][]string
	err = p.Run(context.Background(), func(guesses []string) error {
		emitted = append(emitted, guesses)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(emitted) != 1 || !reflect.DeepEqual(emitted[0], []string{"Cat"}) {
		t.Fatalf("got %v, want a single batch [\"Cat\"]", emitted)
	}
}

// TestRunS3 reproduces scenario S3: a flat two-replacement non-terminal
// must emit r0's guesses before r1's.
func TestRunS3(t *testing.T) {
	g := grammar.New([]*grammar.NonTerminal{
		{
			Name: "A",
			Type: grammar.TypeStart,
			Replacements: []*grammar.Replacement{
				{IsTerminal: true, Probability: 0.9, Function: grammar.Copy, Values: []string{"r0"}},
				{IsTerminal: true, Probability: 0.1, Function: grammar.Copy, Values: []string{"r1"}},
			},
		},
	})

	p, err := New(g, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	var all []string
	err = p.Run(context.Background(), func(guesses []string) error {
		all = append(all, guesses...)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"r0", "r1"}
	if !reflect.DeepEqual(all, want) {
		t.Fatalf("got %v, want %v", all, want)
	}
}

// TestRunEmitsInNonIncreasingProbabilityOrder checks property 1 for a
// richer branching grammar, with no trim involved.
func TestRunEmitsInNonIncreasingProbabilityOrder(t *testing.T) {
	g := grammar.New([]*grammar.NonTerminal{
		{
			Name: "START",
			Type: grammar.TypeStart,
			Replacements: []*grammar.Replacement{
				{IsTerminal: false, Probability: 1.0, Function: grammar.Transparent, Pos: []int{1, 2}},
			},
		},
		{
			Name: "A",
			Replacements: []*grammar.Replacement{
				{IsTerminal: true, Probability: 0.6, Function: grammar.Copy, Values: []string{"a0"}},
				{IsTerminal: true, Probability: 0.3, Function: grammar.Copy, Values: []string{"a1"}},
				{IsTerminal: true, Probability: 0.1, Function: grammar.Copy, Values: []string{"a2"}},
			},
		},
		{
			Name: "B",
			Replacements: []*grammar.Replacement{
				{IsTerminal: true, Probability: 0.7, Function: grammar.Copy, Values: []string{"b0"}},
				{IsTerminal: true, Probability: 0.3, Function: grammar.Copy, Values: []string{"b1"}},
			},
		},
	})

	p, err := New(g, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	var all []string
	err = p.Run(context.Background(), func(guesses []string) error {
		all = append(all, guesses...)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	// Sorted by descending combined probability: a0*b0=.42, a1*b0=.21,
	// a0*b1=.18, a1*b1=.09, a2*b0=.07, a2*b1=.03.
	want := []string{"a0b0", "a1b0", "a0b1", "a1b1", "a2b0", "a2b1"}
	if !reflect.DeepEqual(all, want) {
		t.Fatalf("got %v, want %v", all, want)
	}
}
