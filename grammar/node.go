package grammar

import (
	"bytes"
	"encoding/binary"
)

// Node is one derivation-tree node: a pointer into the grammar (G, R) plus
// the children produced once that replacement has been expanded. Kids is
// nil (or empty) exactly when the node has not yet been expanded - the
// grammar invariants guarantee a non-terminal replacement always has a
// non-empty pos list, so "unexpanded" and "no children recorded" coincide.
type Node struct {
	G    int
	R    int
	Kids []*Node
}

// Start returns the single unexpanded node rooted at the grammar's START
// non-terminal.
func Start(g *Grammar) (*Node, error) {
	i, err := g.StartIndex()
	if err != nil {
		return nil, err
	}
	return &Node{G: i, R: 0}, nil
}

// Probability is the product of this node's own replacement probability and
// the probabilities of every child, recursively. It has no side effects.
func (n *Node) Probability(g *Grammar) float64 {
	p := g.Replacement(n.G, n.R).Probability
	for _, k := range n.Kids {
		p *= k.Probability(g)
	}
	return p
}

// IsFullyExpanded reports whether every reachable non-terminal replacement
// beneath n has been expanded into children.
func (n *Node) IsFullyExpanded(g *Grammar) bool {
	if len(n.Kids) == 0 {
		return g.Replacement(n.G, n.R).IsTerminal
	}
	for _, k := range n.Kids {
		if !k.IsFullyExpanded(g) {
			return false
		}
	}
	return true
}

// Copy returns a deep clone of n sharing no substructure with it. It is a
// hot path for the enumerator, so it is written as a direct recursive
// allocation rather than going through a generic/reflective clone.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{G: n.G, R: n.R}
	if len(n.Kids) > 0 {
		cp.Kids = make([]*Node, len(n.Kids))
		for i, k := range n.Kids {
			cp.Kids[i] = k.Copy()
		}
	}
	return cp
}

// withKidAt returns a copy of n with Kids[i] replaced by k. The rest of the
// child slice is shared (not deep-copied); only the replaced path is new,
// matching Successors/Predecessors, which never mutate a node they did not
// just allocate.
func (n *Node) withKidAt(i int, k *Node) *Node {
	kids := make([]*Node, len(n.Kids))
	copy(kids, n.Kids)
	kids[i] = k
	return &Node{G: n.G, R: n.R, Kids: kids}
}

// Successors returns the raw successor set of n: every node reachable by a
// single increment, expand, or recurse edit (§4.2). This is the many-to-many
// relation the deadbeat-dad rule partitions: package successor filters it
// on every step of the enumeration loop and of the queue's rebuild walk,
// and tests of the parent/child inverse property call it directly.
func (n *Node) Successors(g *Grammar) []*Node {
	var out []*Node

	if len(n.Kids) == 0 {
		repls := g.NonTerminal(n.G).Replacements

		if n.R+1 < len(repls) {
			out = append(out, &Node{G: n.G, R: n.R + 1})
		}

		// A replacement with an empty pos list has nothing to expand into.
		if !repls[0].IsTerminal && len(repls[n.R].Pos) > 0 {
			pos := repls[n.R].Pos
			kids := make([]*Node, len(pos))
			for i, p := range pos {
				kids[i] = &Node{G: p}
			}
			out = append(out, &Node{G: n.G, R: n.R, Kids: kids})
		}
		return out
	}

	for i, k := range n.Kids {
		for _, kc := range k.Successors(g) {
			out = append(out, n.withKidAt(i, kc))
		}
	}
	return out
}

// Predecessors returns the set of nodes p such that n is one of p's raw
// successors (§4.2's parent rules, the inverse of Successors).
func (n *Node) Predecessors(g *Grammar) []*Node {
	if len(n.Kids) == 0 {
		if n.R == 0 {
			return nil
		}
		return []*Node{{G: n.G, R: n.R - 1}}
	}

	var out []*Node
	anyChildHasParent := false
	for i, k := range n.Kids {
		parents := k.Predecessors(g)
		if len(parents) > 0 {
			anyChildHasParent = true
		}
		for _, kp := range parents {
			out = append(out, n.withKidAt(i, kp))
		}
	}
	if !anyChildHasParent {
		// Every child is at its canonical first expansion (r=0, unexpanded):
		// collapsing the expansion is the remaining parent.
		out = append(out, &Node{G: n.G, R: n.R})
	}
	return out
}

// Key is a deterministic byte encoding of n's full structure, used only for
// the lexicographic tie-break in the deadbeat-dad rule and for equality
// checks in tests - never in the probability/expansion hot path. Because G
// and R are encoded as fixed-width big-endian integers, bytes.Compare on two
// Keys agrees with the natural lexicographic order over (G, R, children...).
func (n *Node) Key() []byte {
	var buf bytes.Buffer
	n.writeKey(&buf)
	return buf.Bytes()
}

func (n *Node) writeKey(buf *bytes.Buffer) {
	var hdr [24]byte
	binary.BigEndian.PutUint64(hdr[0:8], uint64(n.G))
	binary.BigEndian.PutUint64(hdr[8:16], uint64(n.R))
	binary.BigEndian.PutUint64(hdr[16:24], uint64(len(n.Kids)))
	buf.Write(hdr[:])
	for _, k := range n.Kids {
		k.writeKey(buf)
	}
}

// Less implements the deterministic tie-break: among nodes of equal
// probability, the one whose Key sorts least is "responsible."
func (n *Node) Less(other *Node) bool {
	return bytes.Compare(n.Key(), other.Key()) < 0
}

// Equal reports whether n and other describe the same derivation.
func (n *Node) Equal(other *Node) bool {
	return bytes.Equal(n.Key(), other.Key())
}
