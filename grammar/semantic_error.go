package grammar

import "errors"

var (
	semErrNoStart              = errors.New("grammar must have exactly one non-terminal of type START")
	semErrMultipleStart        = errors.New("grammar must not have more than one non-terminal of type START")
	semErrNoReplacements       = errors.New("a non-terminal needs at least one replacement")
	semErrNonIncreasingProb    = errors.New("replacement probabilities must be non-increasing by index")
	semErrProbOutOfRange       = errors.New("replacement probability must be in (0, 1]")
	semErrNonTerminalNeedsPos  = errors.New("a non-terminal replacement (is_terminal=false) must have a non-empty pos list")
	semErrDanglingPos          = errors.New("pos refers to a non-existent non-terminal")
	semErrUnknownFunction      = errors.New("unrecognized expansion function")
	semErrShadowArity          = errors.New("a Shadow replacement must designate exactly one child non-terminal")
)
