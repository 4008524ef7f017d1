// Package scorer implements the scorer boundary (A3/§6): a count-table
// lookup over the same detector pipeline the grammar trainer used, scoring
// one password at a time against however many passwords it has seen via
// Train. Grounded on lib_scorer/pcfg_grammar.py's PcfgGrammar.parse, with
// the count tables kept in raw-count form until Finalize normalizes them -
// the original keeps them as Python Counters throughout and only divides
// at lookup time; normalizing once up front avoids repeating that division
// on every Parse call.
package scorer

import (
	"github.com/nihei9/pcfgguess/scorer/detect"
)

// Category classifies a parsed password per §6.
type Category string

const (
	CategoryPassword Category = "p"
	CategoryEmail    Category = "e"
	CategoryWebsite  Category = "w"
	CategoryOther    Category = "o"
)

// bucket is a count table keyed by fragment length, then by fragment text -
// the shape every length-indexed table in pcfg_grammar.py shares
// (count_alpha, count_alpha_masks, count_digits, count_other).
type bucket map[int]map[string]float64

func (b bucket) add(s string) {
	m, ok := b[len(s)]
	if !ok {
		m = map[string]float64{}
		b[len(s)] = m
	}
	m[s]++
}

func (b bucket) normalize() {
	for _, m := range b {
		var total float64
		for _, c := range m {
			total += c
		}
		for k, c := range m {
			m[k] = c / total
		}
	}
}

func (b bucket) lookup(s string) (float64, bool) {
	m, ok := b[len(s)]
	if !ok {
		return 0, false
	}
	p, ok := m[s]
	return p, ok
}

// flatBucket is a count table keyed only by text (count_years,
// count_context_sensitive in the original).
type flatBucket map[string]float64

func (b flatBucket) add(s string)           { b[s]++ }
func (b flatBucket) lookup(s string) (float64, bool) {
	p, ok := b[s]
	return p, ok
}
func (b flatBucket) normalize() {
	var total float64
	for _, c := range b {
		total += c
	}
	for k, c := range b {
		b[k] = c / total
	}
}

// Tables holds the count/probability tables the scorer looks fragments up
// against, one per detector plus the base-structure table.
type Tables struct {
	Keyboard       bucket
	Years          flatBucket
	Context        flatBucket
	Alpha          bucket
	AlphaMasks     bucket
	Digits         bucket
	Other          bucket
	BaseStructures flatBucket

	md         *multiwordDetector
	normalized bool
}

// NewTables returns an empty, trainable table set.
func NewTables() *Tables {
	return &Tables{
		Keyboard:       bucket{},
		Years:          flatBucket{},
		Context:        flatBucket{},
		Alpha:          bucket{},
		AlphaMasks:     bucket{},
		Digits:         bucket{},
		Other:          bucket{},
		BaseStructures: flatBucket{},
	}
}

// Train runs password through the untrained detector pipeline (no
// multiword splitting yet, since the multiword detector itself is built
// from trained alpha runs) and adds every fragment it produces to the
// matching table.
func (t *Tables) Train(password string) {
	frags := detect.Split(password)
	frags, _ = detect.Keyboard(frags)
	for _, f := range frags {
		if f.Tag == detect.Keyboard {
			t.Keyboard.add(f.Text)
		}
	}
	frags, emails := detect.Email(frags)
	frags, urls := detect.Website(frags)
	if len(emails) > 0 || len(urls) > 0 {
		return
	}
	frags, years := detect.Year(frags)
	for _, y := range years {
		t.Years.add(y)
	}
	frags, ctx := detect.Context(frags)
	for _, c := range ctx {
		t.Context.add(c)
	}
	frags, alphas, masks := detect.Alpha(frags, nil)
	for _, a := range alphas {
		t.Alpha.add(a)
	}
	for _, m := range masks {
		t.AlphaMasks.add(m)
	}
	frags, digits := detect.Digit(frags)
	for _, d := range digits {
		t.Digits.add(d)
	}
	frags, others := detect.Other(frags)
	for _, o := range others {
		t.Other.add(o)
	}
	t.BaseStructures.add(detect.BaseStructure(frags))
}

// Finalize normalizes every count table into probabilities and builds the
// multiword detector, per create_multiword_detector's "skip the 5 lowest
// unique-count tiers" rule: within each alpha length bucket of length 4 or
// more, walking that bucket's distinct counts from lowest to highest, the
// first 5 distinct count values encountered are skipped entirely (no run at
// those counts is trained on), and every alpha run at a higher count is
// registered as a candidate multiword component. Finalize must be
// called once, after every Train call and before any Parse call.
func (t *Tables) Finalize() {
	t.md = newMultiwordDetector(4)
	for length, words := range t.Alpha {
		if length < 4 {
			continue
		}
		type kv struct {
			word  string
			count float64
		}
		var items []kv
		for w, c := range words {
			items = append(items, kv{w, c})
		}
		// Stable ascending order by count, ties broken by word so the
		// "skip the lowest 5 tiers" walk is deterministic.
		for i := 1; i < len(items); i++ {
			for j := i; j > 0; j-- {
				a, b := items[j-1], items[j]
				if a.count > b.count || (a.count == b.count && a.word > b.word) {
					items[j-1], items[j] = items[j], items[j-1]
				} else {
					break
				}
			}
		}

		tiers := 0
		prevCount := -1.0
		for _, it := range items {
			if it.count > prevCount {
				tiers++
				prevCount = it.count
			}
			if tiers <= 5 {
				continue
			}
			t.md.train(it.word)
		}
	}

	t.Keyboard.normalize()
	t.Years.normalize()
	t.Context.normalize()
	t.Alpha.normalize()
	t.AlphaMasks.normalize()
	t.Digits.normalize()
	t.Other.normalize()
	t.BaseStructures.normalize()
	t.normalized = true
}

// Parse scores password against t, per §6's contract.
func Parse(t *Tables, password string) (string, Category, float64) {
	frags := detect.Split(password)
	frags, keyboardWalks := detect.Keyboard(frags)
	frags, emails := detect.Email(frags)
	frags, urls := detect.Website(frags)
	if len(emails) > 0 {
		return password, CategoryEmail, 0
	}
	if len(urls) > 0 {
		return password, CategoryWebsite, 0
	}

	frags, years := detect.Year(frags)
	frags, ctx := detect.Context(frags)
	frags, alphas, masks := detect.Alpha(frags, t.md)
	frags, digits := detect.Digit(frags)
	frags, others := detect.Other(frags)

	prob := 1.0
	miss := false

	for _, w := range keyboardWalks {
		p, ok := t.Keyboard.lookup(w)
		if !ok {
			miss = true
			break
		}
		prob *= p
	}
	if !miss {
		for _, y := range years {
			p, ok := t.Years.lookup(y)
			if !ok {
				miss = true
				break
			}
			prob *= p
		}
	}
	if !miss {
		for _, c := range ctx {
			p, ok := t.Context.lookup(c)
			if !ok {
				miss = true
				break
			}
			prob *= p
		}
	}
	if !miss {
		for _, a := range alphas {
			p, ok := t.Alpha.lookup(a)
			if !ok {
				miss = true
				break
			}
			prob *= p
		}
	}
	if !miss {
		for _, m := range masks {
			p, ok := t.AlphaMasks.lookup(m)
			if !ok {
				miss = true
				break
			}
			prob *= p
		}
	}
	if !miss {
		for _, d := range digits {
			p, ok := t.Digits.lookup(d)
			if !ok {
				miss = true
				break
			}
			prob *= p
		}
	}
	if !miss {
		for _, o := range others {
			p, ok := t.Other.lookup(o)
			if !ok {
				miss = true
				break
			}
			prob *= p
		}
	}
	if !miss {
		p, ok := t.BaseStructures.lookup(detect.BaseStructure(frags))
		if !ok {
			miss = true
		} else {
			prob *= p
		}
	}

	if miss {
		return password, CategoryOther, 0
	}
	return password, CategoryPassword, prob
}
