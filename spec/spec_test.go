package spec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	verr "github.com/nihei9/pcfgguess/error"
)

const validDoc = `{
  "non_terminals": [
    {
      "name": "START",
      "type": "START",
      "replacements": [
        {"is_terminal": true, "probability": 0.9, "function": "Copy", "values": ["r0"]},
        {"is_terminal": true, "probability": 0.1, "function": "Copy", "values": ["r1"]}
      ]
    }
  ]
}`

func TestLoadValidGrammar(t *testing.T) {
	g, err := Load(strings.NewReader(validDoc))
	if err != nil {
		t.Fatal(err)
	}
	if g.NonTerminalCount() != 1 {
		t.Fatalf("expected 1 non-terminal, got %v", g.NonTerminalCount())
	}
}

func TestLoadRejectsUnknownFunction(t *testing.T) {
	doc := `{
  "non_terminals": [
    {"name": "A", "type": "START", "replacements": [
      {"is_terminal": true, "probability": 1.0, "function": "Bogus"}
    ]}
  ]
}`
	_, err := Load(strings.NewReader(doc))
	var ge *verr.GrammarError
	if !errors.As(err, &ge) {
		t.Fatalf("expected a GrammarError, got %v", err)
	}
}

func TestLoadSurfacesInvariantViolations(t *testing.T) {
	doc := `{
  "non_terminals": [
    {"name": "A", "type": "START", "replacements": [
      {"is_terminal": true, "probability": 0.1, "function": "Copy", "values": ["a"]},
      {"is_terminal": true, "probability": 0.9, "function": "Copy", "values": ["b"]}
    ]},
    {"name": "B", "type": "START", "replacements": [
      {"is_terminal": true, "probability": 1.0, "function": "Copy", "values": ["c"]}
    ]}
  ]
}`
	_, err := Load(strings.NewReader(doc))
	var errs verr.GrammarErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected GrammarErrors, got %v", err)
	}
	if len(errs) < 2 {
		t.Fatalf("expected at least 2 violations (non-increasing probability + multiple START), got %v", errs)
	}
}

func TestWriteThenLoadRoundTrips(t *testing.T) {
	g, err := Load(strings.NewReader(validDoc))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, g); err != nil {
		t.Fatal(err)
	}

	g2, err := Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if g2.NonTerminalCount() != g.NonTerminalCount() {
		t.Fatalf("round trip changed non-terminal count: %v vs %v", g2.NonTerminalCount(), g.NonTerminalCount())
	}
}

func TestAnnotateSetsPathOnEveryError(t *testing.T) {
	errs := verr.GrammarErrors{
		{NonTerminal: "A", Replacement: -1},
		{NonTerminal: "B", Replacement: -1},
	}
	annotated := Annotate(errs, "grammar.json")
	for _, e := range annotated.(verr.GrammarErrors) {
		if e.Path != "grammar.json" {
			t.Fatalf("expected Path to be set, got %+v", e)
		}
	}
}
