package grammar

import (
	"testing"
)

// s1Grammar implements scenario S1 from the spec: START -> Transparent ->
// [L (Shadow over ["cat"]) -> Cap (masks ["UL L"])]. L is index 1, Cap index 2.
func s1Grammar() *Grammar {
	return New([]*NonTerminal{
		{ // 0: START
			Name: "START",
			Type: TypeStart,
			Replacements: []*Replacement{
				{IsTerminal: false, Probability: 1.0, Function: Transparent, Pos: []int{1}},
			},
		},
		{ // 1: L
			Name: "L",
			Type: TypeNormal,
			Replacements: []*Replacement{
				{IsTerminal: false, Probability: 1.0, Function: Shadow, Values: []string{"cat"}, Pos: []int{2}},
			},
		},
		{ // 2: Cap
			Name: "Cap",
			Type: TypeNormal,
			Replacements: []*Replacement{
				{IsTerminal: true, Probability: 0.6, Function: Capitalization, Values: []string{"UL L"}},
			},
		},
	})
}

func TestProbability(t *testing.T) {
	g := s1Grammar()
	n := &Node{G: 0, R: 0, Kids: []*Node{
		{G: 1, R: 0, Kids: []*Node{
			{G: 2, R: 0},
		}},
	}}
	got := n.Probability(g)
	want := 1.0 * 1.0 * 0.6
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestIsFullyExpanded(t *testing.T) {
	g := s1Grammar()
	start, err := Start(g)
	if err != nil {
		t.Fatal(err)
	}
	if start.IsFullyExpanded(g) {
		t.Fatal("unexpanded start should not be fully expanded")
	}

	full := &Node{G: 0, R: 0, Kids: []*Node{
		{G: 1, R: 0, Kids: []*Node{
			{G: 2, R: 0},
		}},
	}}
	if !full.IsFullyExpanded(g) {
		t.Fatal("expected fully expanded")
	}
}

func TestCopyIsDeepAndProbabilityPreserving(t *testing.T) {
	g := s1Grammar()
	n := &Node{G: 0, R: 0, Kids: []*Node{
		{G: 1, R: 0, Kids: []*Node{
			{G: 2, R: 0},
		}},
	}}
	cp := n.Copy()
	if !n.Equal(cp) {
		t.Fatal("copy should be structurally equal")
	}
	if n.Probability(g) != cp.Probability(g) {
		t.Fatal("copy should preserve probability")
	}
	// Mutate the copy's substructure and make sure the original is untouched.
	cp.Kids[0].R = 5
	if n.Kids[0].R == 5 {
		t.Fatal("copy shares substructure with the original")
	}
}

func TestSuccessorsPredecessorsInverse(t *testing.T) {
	g := New([]*NonTerminal{
		{
			Name: "A",
			Type: TypeStart,
			Replacements: []*Replacement{
				{IsTerminal: false, Probability: 1.0, Function: Transparent, Pos: []int{1}},
				{IsTerminal: true, Probability: 0.5, Function: Copy, Values: []string{"z"}},
			},
		},
		{
			Name: "B",
			Type: TypeNormal,
			Replacements: []*Replacement{
				{IsTerminal: true, Probability: 0.7, Function: Copy, Values: []string{"b0"}},
				{IsTerminal: true, Probability: 0.3, Function: Copy, Values: []string{"b1"}},
			},
		},
	})

	start, err := Start(g)
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]*Node{}
	frontier := []*Node{start}
	seen[string(start.Key())] = start

	for len(frontier) > 0 {
		n := frontier[0]
		frontier = frontier[1:]

		for _, c := range n.Successors(g) {
			foundSelf := false
			for _, p := range c.Predecessors(g) {
				if p.Equal(n) {
					foundSelf = true
				}
			}
			if !foundSelf {
				t.Fatalf("n=%+v is not among the predecessors of its successor c=%+v", n, c)
			}

			key := string(c.Key())
			if _, ok := seen[key]; !ok {
				seen[key] = c
				frontier = append(frontier, c)
			}
		}
	}

	if len(seen) < 3 {
		t.Fatalf("expected to discover at least 3 distinct derivations, got %v", len(seen))
	}
}

func TestKeyOrderingIsDeterministic(t *testing.T) {
	a := &Node{G: 1, R: 0}
	b := &Node{G: 2, R: 0}
	if !a.Less(b) {
		t.Fatal("expected a < b by grammar index")
	}
	if b.Less(a) {
		t.Fatal("ordering must be antisymmetric")
	}
	if a.Less(a) {
		t.Fatal("a node must not be less than itself")
	}
}
