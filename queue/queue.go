// Package queue implements the bounded ranked queue (C5): a max-priority
// queue over derivation nodes, ordered by probability, that trims itself
// back down once it grows past a configured size and can rebuild a
// commensurate working set from scratch once the probability floor it
// established makes trimming impossible to reverse any other way.
package queue

import (
	"container/heap"

	verr "github.com/nihei9/pcfgguess/error"
	"github.com/nihei9/pcfgguess/grammar"
	"github.com/nihei9/pcfgguess/successor"
)

// DefaultMaxSize and DefaultReductionSize match the values the enumerator
// uses when the caller does not override them.
const (
	DefaultMaxSize       = 500000
	DefaultReductionSize = DefaultMaxSize / 4
)

type item struct {
	node *grammar.Node
	prob float64
}

// itemHeap is a max-heap over item.prob, ties unspecified (heap.Interface
// does not need a deterministic tie order; Trim below keeps a whole tie
// band on one side of its cut instead of ordering within it).
type itemHeap []*item

func (h itemHeap) Len() int            { return len(h) }
func (h itemHeap) Less(i, j int) bool  { return h[i].prob > h[j].prob }
func (h itemHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x interface{}) { *h = append(*h, x.(*item)) }
func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Queue is a bounded max-priority queue of derivation nodes, per §4.5.
type Queue struct {
	items itemHeap

	maxSize       int
	reductionSize int

	maxProbability float64
	minProbability float64
}

// New builds an empty queue. maxSize and reductionSize of 0 fall back to
// DefaultMaxSize/DefaultReductionSize.
func New(maxSize, reductionSize int) *Queue {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if reductionSize <= 0 {
		reductionSize = DefaultReductionSize
	}
	return &Queue{
		maxSize:        maxSize,
		reductionSize:  reductionSize,
		maxProbability: 1.0,
		minProbability: 0.0,
	}
}

// Len is the number of nodes currently held.
func (q *Queue) Len() int { return len(q.items) }

// MaxSize is the configured trim threshold.
func (q *Queue) MaxSize() int { return q.maxSize }

// MaxProbability is the probability of the most recently popped node (1.0
// before the first pop).
func (q *Queue) MaxProbability() float64 { return q.maxProbability }

// MinProbability is the probability floor established by the most recent
// trim (0.0 if the queue has never been trimmed).
func (q *Queue) MinProbability() float64 { return q.minProbability }

// Push admits n if its probability is at or above the current floor, and
// reports whether it was admitted. A node below the floor is silently
// dropped: some ancestor of n crossed the floor first, so n is reachable
// again from Rebuild once the floor permits it.
func (q *Queue) Push(g *grammar.Grammar, n *grammar.Node) bool {
	return q.push(n, n.Probability(g))
}

// PushWithProbability is Push, but accepts n's probability as a known
// quantity (as every caller in the enumerator hot loop already has it) to
// avoid recomputing it.
func (q *Queue) PushWithProbability(n *grammar.Node, prob float64) bool {
	return q.push(n, prob)
}

func (q *Queue) push(n *grammar.Node, prob float64) bool {
	if prob < q.minProbability {
		return false
	}
	heap.Push(&q.items, &item{node: n, prob: prob})
	return true
}

// Pop removes and returns the highest-probability node, or ErrQueueEmpty if
// the queue holds nothing. It updates MaxProbability to the popped node's
// probability; callers (the guess pump) decide whether an empty queue with
// MinProbability > 0 warrants a Rebuild, or is simply the end of the stream.
func (q *Queue) Pop() (*grammar.Node, float64, error) {
	if len(q.items) == 0 {
		return nil, 0, verr.ErrQueueEmpty
	}
	it := heap.Pop(&q.items).(*item)
	q.maxProbability = it.prob
	return it.node, it.prob, nil
}

// Trim discards the lowest-probability nodes until the queue is back at or
// under maxSize - reductionSize, raising MinProbability to the resulting
// boundary. Nodes exactly at the boundary probability are never split
// across the cut: every node tied with the last retained node is retained
// too, even if that keeps the queue above the target size. If that
// tie-band covers the entire queue - nothing could be discarded - Trim
// returns a *QueueFullError and leaves the queue unchanged.
func (q *Queue) Trim() error {
	n := len(q.items)
	if n == 0 {
		return nil
	}

	ordered := make([]*item, 0, n)
	for q.items.Len() > 0 {
		ordered = append(ordered, heap.Pop(&q.items).(*item))
	}

	keep := q.maxSize - q.reductionSize
	if keep < 0 {
		keep = 0
	}
	if keep >= n {
		q.items = itemHeap(ordered)
		heap.Init(&q.items)
		return nil
	}

	boundaryIdx := keep
	if boundaryIdx > 0 {
		boundaryIdx--
	}
	boundary := ordered[boundaryIdx].prob

	end := boundaryIdx + 1
	for end < n && ordered[end].prob == boundary {
		end++
	}

	if end == n {
		q.items = itemHeap(ordered)
		heap.Init(&q.items)
		return &verr.QueueFullError{Size: n}
	}

	q.minProbability = boundary
	q.items = itemHeap(ordered[:end])
	heap.Init(&q.items)
	return nil
}

// Rebuild re-derives a working set from scratch after the queue has been
// drained down to empty while MinProbability is still above 0: it re-walks
// the derivation DAG from START, recursing through already-emitted nodes
// (probability strictly above the old MaxProbability) via their deadbeat-dad
// successors, and admitting not-yet-emitted nodes (at or below it) that
// clear the current MinProbability floor.
//
// Because every node's deadbeat-dad successors are claimed by exactly one
// parent, this walk never visits the same derivation twice on a
// well-formed grammar (the same partition argument that lets C4 avoid a
// closed set); Rebuild does not keep one either; its only state beyond the
// queue itself is the pending work list, which is consumed depth-first
// (last in, first out), so it holds the unvisited successors of the nodes
// on the current path rather than a whole breadth-first frontier. The
// explicit parent re-check below is a safety
// net for a grammar that violates the non-increasing-probability
// invariant, where that argument would otherwise not hold.
func (q *Queue) Rebuild(g *grammar.Grammar) error {
	oldMax := q.maxProbability
	q.items = nil
	q.minProbability = 0

	start, err := grammar.Start(g)
	if err != nil {
		return err
	}

	work := []*grammar.Node{start}
	for len(work) > 0 {
		n := work[len(work)-1]
		work = work[:len(work)-1]

		prob := n.Probability(g)
		if prob <= oldMax {
			alreadyCovered := false
			for _, p := range n.Predecessors(g) {
				if p.Probability(g) <= oldMax {
					alreadyCovered = true
					break
				}
			}
			if !alreadyCovered && prob >= q.minProbability {
				q.push(n, prob)
			}
		} else {
			work = append(work, successor.SuccessorsWithProbability(g, n, prob)...)
		}

		if q.Len() > q.maxSize {
			if err := q.Trim(); err != nil {
				return err
			}
		}
	}
	return nil
}
