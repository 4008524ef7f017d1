// Package successor implements the deadbeat-dad successor algorithm (C4):
// given a derivation p, it returns exactly the raw successors of p for
// which p is the minimum-probability parent, so that over every node
// reachable from START, each derivation is produced by exactly one call.
//
// This follows §4.4's "operational form" directly: for each raw successor c
// of p (grammar.Node.Successors), every parent of c is enumerated
// (grammar.Node.Predecessors) and compared by probability, with ties broken
// lexicographically by Node.Key via Node.Less. p contributes c to its
// result iff p is that minimum. The teacher material this is grounded on
// keeps a second, hand-fused traversal in its hot loop instead of composing
// the two primitives; this implementation composes them because that is
// exactly what §4.4 specifies as the operational form, and composition
// keeps the partition argument (soundness rests on Successors/Predecessors
// truly being inverses) checkable in one place instead of two.
package successor

import (
	"github.com/nihei9/pcfgguess/grammar"
)

// Successors returns p's deadbeat-dad children.
func Successors(g *grammar.Grammar, p *grammar.Node) []*grammar.Node {
	return SuccessorsWithProbability(g, p, p.Probability(g))
}

// SuccessorsWithProbability is Successors, but accepts the probability of p
// as a known quantity (as the ranked queue already has after a pop) to
// avoid recomputing it.
func SuccessorsWithProbability(g *grammar.Grammar, p *grammar.Node, parentProb float64) []*grammar.Node {
	var out []*grammar.Node

	for _, c := range p.Successors(g) {
		if isResponsibleParent(g, p, parentProb, c) {
			out = append(out, c)
		}
	}
	return out
}

// isResponsibleParent reports whether p is the minimum-probability parent
// of c, breaking ties lexicographically by Node.Key.
func isResponsibleParent(g *grammar.Grammar, p *grammar.Node, parentProb float64, c *grammar.Node) bool {
	parents := c.Predecessors(g)

	var responsible *grammar.Node
	var responsibleProb float64
	for i, cand := range parents {
		prob := parentProb
		if !cand.Equal(p) {
			prob = cand.Probability(g)
		}
		if i == 0 || prob < responsibleProb || (prob == responsibleProb && cand.Less(responsible)) {
			responsible = cand
			responsibleProb = prob
		}
	}
	return responsible != nil && responsible.Equal(p)
}
