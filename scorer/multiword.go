package scorer

// multiwordDetector recognizes alpha runs assembled from two or more
// previously-trained words, mirroring lib_trainer.multiword_detector's
// role in the original pipeline: a concatenation like "catdog" should not
// be charged the (tiny) probability of "catdog" as a single unknown word
// when it is plausibly "cat" + "dog".
type multiwordDetector struct {
	minLen int
	words  map[string]bool
}

func newMultiwordDetector(minLen int) *multiwordDetector {
	return &multiwordDetector{minLen: minLen, words: map[string]bool{}}
}

// train registers w as a base word multiword splits may be built from.
func (d *multiwordDetector) train(w string) {
	d.words[w] = true
}

// IsMultiword reports whether s can be partitioned into two or more
// trained words, each at least minLen long.
func (d *multiwordDetector) IsMultiword(s string) bool {
	return d.canSplit(s, 0)
}

func (d *multiwordDetector) canSplit(s string, piecesSoFar int) bool {
	if len(s) == 0 {
		return piecesSoFar >= 2
	}
	for end := d.minLen; end <= len(s); end++ {
		if d.words[s[:end]] && d.canSplit(s[end:], piecesSoFar+1) {
			return true
		}
	}
	return false
}

// Split partitions s into its component trained words and reports true, or
// reports false if s is not a multiword. It is the segmentation IsMultiword
// only confirms the existence of.
func (d *multiwordDetector) Split(s string) ([]string, bool) {
	return d.split(s, nil)
}

func (d *multiwordDetector) split(s string, acc []string) ([]string, bool) {
	if len(s) == 0 {
		if len(acc) >= 2 {
			out := make([]string, len(acc))
			copy(out, acc)
			return out, true
		}
		return nil, false
	}
	for end := d.minLen; end <= len(s); end++ {
		if !d.words[s[:end]] {
			continue
		}
		next := make([]string, len(acc), len(acc)+1)
		copy(next, acc)
		next = append(next, s[:end])
		if parts, ok := d.split(s[end:], next); ok {
			return parts, true
		}
	}
	return nil, false
}
