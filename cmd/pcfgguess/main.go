package main

import (
	"errors"
	"os"

	verr "github.com/nihei9/pcfgguess/error"
)

func main() {
	err := Execute()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to a process exit code, in the style of the
// teacher's main.go (which only ever returns 1), generalized to the small
// code table §7 assigns to the core's error taxonomy.
func exitCode(err error) int {
	var ge *verr.GrammarError
	var ges verr.GrammarErrors
	var qfe *verr.QueueFullError
	switch {
	case errors.As(err, &ge), errors.As(err, &ges):
		return 2
	case errors.As(err, &qfe):
		return 3
	default:
		return 1
	}
}
