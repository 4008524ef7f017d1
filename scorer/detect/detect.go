// Package detect implements the segmentation pipeline the scorer (A3)
// drives: each detector consumes the untagged fragments of a password and
// tags the substrings it recognizes, in the fixed order §6 specifies
// (keyboard-walk, email, website, year, context-sensitive, alpha+mask,
// digit, other). Grounded on lib_trainer's per-concern detector modules
// (keyboard_walk.py, email_detection.py, website_detection.py, ...), each
// reduced to its essential pattern since this scorer has no trained
// adjacency/dictionary data files to load.
package detect

import (
	"regexp"
	"strings"
)

// Tag identifies which detector classified a Fragment.
type Tag int

const (
	Untagged Tag = iota
	Keyboard
	Email
	Website
	Year
	Context
	Alpha
	Digit
	Other
)

// Fragment is one contiguous piece of a password, tagged once a detector
// claims it.
type Fragment struct {
	Text string
	Tag  Tag
}

// Split breaks the password into a single untagged fragment - the seed for
// the detector pipeline.
func Split(password string) []Fragment {
	return []Fragment{{Text: password, Tag: Untagged}}
}

// runDetector replaces every untagged fragment's text with the result of
// matching it against re: matches become tagged fragments, gaps between
// matches stay untagged.
func runDetector(frags []Fragment, re *regexp.Regexp, tag Tag, minLen int) ([]Fragment, []string) {
	var out []Fragment
	var found []string
	for _, f := range frags {
		if f.Tag != Untagged {
			out = append(out, f)
			continue
		}
		idxs := re.FindAllStringIndex(f.Text, -1)
		pos := 0
		for _, idx := range idxs {
			start, end := idx[0], idx[1]
			if end-start < minLen {
				continue
			}
			if start > pos {
				out = append(out, Fragment{Text: f.Text[pos:start], Tag: Untagged})
			}
			match := f.Text[start:end]
			out = append(out, Fragment{Text: match, Tag: tag})
			found = append(found, match)
			pos = end
		}
		if pos < len(f.Text) {
			out = append(out, Fragment{Text: f.Text[pos:], Tag: Untagged})
		}
	}
	return out, found
}

var keyboardRows = []string{
	"`1234567890-=",
	"qwertyuiop[]\\",
	"asdfghjkl;'",
	"zxcvbnm,./",
}

func keyPos(b byte) (row, col int, ok bool) {
	c := strings.ToLower(string(b))
	for r, line := range keyboardRows {
		if i := strings.Index(line, c); i >= 0 {
			return r, i, true
		}
	}
	return 0, 0, false
}

// Keyboard tags runs of 4 or more consecutive same-row, adjacent-column
// keys (in either direction), e.g. "qwer" or "asdf" or "4321".
func Keyboard(frags []Fragment) ([]Fragment, []string) {
	var out []Fragment
	var found []string
	for _, f := range frags {
		if f.Tag != Untagged {
			out = append(out, f)
			continue
		}
		s := f.Text
		i := 0
		for i < len(s) {
			j := i + 1
			dir := 0
			row0, col0, ok0 := keyPos(s[i])
			for ok0 && j < len(s) {
				row1, col1, ok1 := keyPos(s[j])
				if !ok1 || row1 != row0 {
					break
				}
				d := col1 - col0
				if d != 1 && d != -1 {
					break
				}
				if dir == 0 {
					dir = d
				} else if d != dir {
					break
				}
				col0 = col1
				j++
			}
			if j-i >= 4 {
				out = append(out, Fragment{Text: s[i:j], Tag: Keyboard})
				found = append(found, s[i:j])
				i = j
				continue
			}
			// fall through: emit this single character as part of the next
			// untagged run by extending/creating one.
			if len(out) > 0 && out[len(out)-1].Tag == Untagged {
				out[len(out)-1].Text += s[i : i+1]
			} else {
				out = append(out, Fragment{Text: s[i : i+1], Tag: Untagged})
			}
			i++
		}
	}
	return out, found
}

var emailRE = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// Email tags email-shaped fragments.
func Email(frags []Fragment) ([]Fragment, []string) {
	return runDetector(frags, emailRE, Email, 1)
}

var websiteRE = regexp.MustCompile(`(?:https?://|www\.)[a-zA-Z0-9.\-/]+|[a-zA-Z0-9\-]+\.(?:com|net|org|io|gov|edu)`)

// Website tags URL-shaped fragments.
func Website(frags []Fragment) ([]Fragment, []string) {
	return runDetector(frags, websiteRE, Website, 1)
}

var yearRE = regexp.MustCompile(`19[0-9]{2}|20[0-2][0-9]|[0-2][0-9]`)

// Year tags 4-digit years in [1900,2029] and 2-digit years in [00,29]. The
// 4-digit alternatives are listed first so a run like "1987" is claimed
// whole rather than as two 2-digit matches.
func Year(frags []Fragment) ([]Fragment, []string) {
	return runDetector(frags, yearRE, Year, 1)
}

// contextWords is a small, fixed dictionary of terms that get their own
// probability bucket rather than falling into the generic alpha table -
// standing in for the trained context_sensitive_detection.py word list.
var contextWords = []string{"password", "login", "admin", "welcome", "qwerty"}

// Context tags any case-insensitive occurrence of a context-sensitive word.
func Context(frags []Fragment) ([]Fragment, []string) {
	pattern := "(?i)(" + strings.Join(contextWords, "|") + ")"
	re := regexp.MustCompile(pattern)
	return runDetector(frags, re, Context, 1)
}

var alphaRE = regexp.MustCompile(`[a-zA-Z]+`)

// MultiwordDetector reports whether a lowercase alpha run is plausibly a
// concatenation of two or more trained words, and supplies that
// concatenation's component words, mirroring
// lib_trainer.multiword_detector.MultiWordDetector's role.
type MultiwordDetector interface {
	IsMultiword(s string) bool
	Split(s string) ([]string, bool)
}

// Alpha tags letter runs, returning both the words to price against the
// alpha count table and their capitalization masks (for the alpha-mask
// table). When md recognizes a run as a multiword - a concatenation of two
// or more previously trained words - it is priced as its component words
// instead of the whole run, the same consultation pcfg_grammar.py's parse
// performs by handing alpha_detection its multiword_detector: an unseen
// concatenation like "catdog" is charged P("cat") * P("dog") instead of
// missing the whole-run lookup outright. md is nil during training, when
// every run is priced (and counted) whole.
func Alpha(frags []Fragment, md MultiwordDetector) ([]Fragment, []string, []string) {
	out, runs := runDetector(frags, alphaRE, Alpha, 1)
	var words, masks []string
	for _, w := range runs {
		if md != nil {
			if parts, ok := md.Split(w); ok {
				for _, p := range parts {
					words = append(words, p)
					masks = append(masks, CapitalizationMask(p))
				}
				continue
			}
		}
		words = append(words, w)
		masks = append(masks, CapitalizationMask(w))
	}
	return out, words, masks
}

// CapitalizationMask renders w as a same-length U/L string.
func CapitalizationMask(w string) string {
	mask := make([]byte, len(w))
	for i := 0; i < len(w); i++ {
		if w[i] >= 'A' && w[i] <= 'Z' {
			mask[i] = 'U'
		} else {
			mask[i] = 'L'
		}
	}
	return string(mask)
}

var digitRE = regexp.MustCompile(`[0-9]+`)

// Digit tags digit runs not already claimed by an earlier detector.
func Digit(frags []Fragment) ([]Fragment, []string) {
	return runDetector(frags, digitRE, Digit, 1)
}

var otherRE = regexp.MustCompile(`.+`)

// Other tags whatever is left (punctuation/symbol runs): the catch-all
// stage, always last.
func Other(frags []Fragment) ([]Fragment, []string) {
	return runDetector(frags, otherRE, Other, 1)
}

// BaseStructure renders the final tag sequence as a skeleton string, e.g.
// "A5D3" for a 5-letter alpha run followed by a 3-digit run.
func BaseStructure(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		var c byte
		switch f.Tag {
		case Keyboard:
			c = 'K'
		case Email:
			c = 'E'
		case Website:
			c = 'W'
		case Year:
			c = 'Y'
		case Context:
			c = 'X'
		case Alpha:
			c = 'A'
		case Digit:
			c = 'D'
		case Other:
			c = 'O'
		default:
			c = '?'
		}
		b.WriteByte(c)
		b.WriteString(itoa(len(f.Text)))
	}
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
