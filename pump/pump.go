// Package pump implements the guess pump (C6): the loop that drives the
// ranked queue, the deadbeat-dad successor enumeration, and the terminal
// expander together to produce a non-increasing-probability stream of
// guesses.
package pump

import (
	"context"

	verr "github.com/nihei9/pcfgguess/error"
	"github.com/nihei9/pcfgguess/expand"
	"github.com/nihei9/pcfgguess/grammar"
	"github.com/nihei9/pcfgguess/queue"
	"github.com/nihei9/pcfgguess/successor"
)

// Pump drives one enumeration over a grammar.
type Pump struct {
	g *grammar.Grammar
	q *queue.Queue
}

// New seeds a pump with the grammar's START node and the given queue
// sizing (0, 0 selects the defaults).
func New(g *grammar.Grammar, maxSize, reductionSize int) (*Pump, error) {
	start, err := grammar.Start(g)
	if err != nil {
		return nil, err
	}
	q := queue.New(maxSize, reductionSize)
	q.Push(g, start)
	return &Pump{g: g, q: q}, nil
}

// Queue exposes the underlying ranked queue, mostly for tests and for the
// tester harness to inspect MinProbability/MaxProbability between steps.
func (p *Pump) Queue() *queue.Queue { return p.q }

// Next advances the pump by one node and returns the guesses it produced,
// per §4.6's loop. A nil, nil result with no error means the node popped
// was not fully expanded (its successors were pushed, but it had nothing
// to emit yet); callers that want a steady stream of non-empty guesses
// should call Next in a loop, as Run does.
func (p *Pump) Next(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.q.Len() == 0 {
		if p.q.MinProbability() == 0 {
			return nil, verr.ErrQueueEmpty
		}
		if err := p.q.Rebuild(p.g); err != nil {
			return nil, err
		}
		if p.q.Len() == 0 {
			return nil, verr.ErrQueueEmpty
		}
	}

	n, prob, err := p.q.Pop()
	if err != nil {
		return nil, err
	}

	for _, c := range successor.SuccessorsWithProbability(p.g, n, prob) {
		p.q.Push(p.g, c)
	}
	if p.q.Len() > p.q.MaxSize() {
		if err := p.q.Trim(); err != nil {
			return nil, err
		}
	}

	if !n.IsFullyExpanded(p.g) {
		return nil, nil
	}
	return expand.Guesses(p.g, n)
}

// Run drives the pump to completion (until QueueEmpty or an error),
// invoking emit with every non-empty batch of guesses Next produces.
// QueueEmpty is treated as a clean end of stream and not returned to the
// caller; any other error (including one returned by emit) stops the pump
// and is returned as-is.
func (p *Pump) Run(ctx context.Context, emit func([]string) error) error {
	for {
		guesses, err := p.Next(ctx)
		if err == verr.ErrQueueEmpty {
			return nil
		}
		if err != nil {
			return err
		}
		if len(guesses) == 0 {
			continue
		}
		if err := emit(guesses); err != nil {
			return err
		}
	}
}
