package driver

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/alecthomas/assert/v2"
	verr "github.com/nihei9/chomsky/error"
	"github.com/nihei9/chomsky/grammar"
	"github.com/nihei9/chomsky/spec"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
)

func genGrammar(t *testing.T, src string) *grammar.Grammar {
	t.Helper()
	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	b := grammar.GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func genCNFGrammar(t *testing.T, src string) *grammar.Grammar {
	t.Helper()
	g, _, err := grammar.TransformToWellFormedGrammar(genGrammar(t, src))
	if err != nil {
		t.Fatal(err)
	}
	g, err = grammar.TransformIntoCNF(g)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func testCause(t *testing.T, err error, cause error) {
	t.Helper()
	var e *verr.Error
	if !errors.As(err, &e) {
		t.Fatalf("unexpected error; want: %v, got: %v", cause, err)
	}
	if e.Cause != cause {
		t.Fatalf("unexpected cause; want: %v, got: %v", cause, e.Cause)
	}
}

func TestIsDerivedUsingCYK(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)

	tests := []struct {
		caption string
		g       *grammar.Grammar
		words   map[string]bool
	}{
		{
			caption: "a small CNF grammar",
			g:       genGrammar(t, `S ::= AB | a, A ::= a, B ::= b`),
			words: map[string]bool{
				"ab": true,
				"a":  true,
				"b":  false,
				"":   false,
				"ba": false,
				"aa": false,
			},
		},
		{
			caption: "a^n b^n",
			g:       genCNFGrammar(t, `S ::= aSb | ab`),
			words: map[string]bool{
				"ab":     true,
				"aabb":   true,
				"aaabbb": true,
				"abab":   false,
				"aab":    false,
				"":       false,
			},
		},
		{
			caption: "a^n b^n including the empty word",
			g:       genCNFGrammar(t, `S ::= aSb | l`),
			words: map[string]bool{
				"":     true,
				"ab":   true,
				"aabb": true,
				"ba":   false,
				"abb":  false,
			},
		},
		{
			caption: "balanced parentheses written as a and b",
			g:       genCNFGrammar(t, `S ::= SS | aSb | ab`),
			words: map[string]bool{
				"ab":       true,
				"abab":     true,
				"aabbab":   true,
				"aababb":   true,
				"abba":     false,
				"aabbabba": false,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			for word, expected := range tt.words {
				derived, err := IsDerivedUsingCYK(tt.g, word)
				assert.NoError(t, err)
				if derived != expected {
					t.Fatalf("unexpected result for %q; want: %v, got: %v", word, expected, derived)
				}
			}
		})
	}
}

func TestIsDerivedUsingCYK_Preconditions(t *testing.T) {
	t.Run("every symbol of the word must be a terminal", func(t *testing.T) {
		g := genGrammar(t, `S ::= AB | a, A ::= a, B ::= b`)
		_, err := IsDerivedUsingCYK(g, "c")
		testCause(t, err, cykErrUndeclaredTerminal)
		_, err = IsDerivedUsingCYK(g, "aB")
		testCause(t, err, cykErrUndeclaredTerminal)
		_, err = CYKStateToString(g, "c")
		testCause(t, err, cykErrUndeclaredTerminal)
	})

	t.Run("the grammar must be in CNF", func(t *testing.T) {
		g := genGrammar(t, `S ::= aS | a`)
		_, err := IsDerivedUsingCYK(g, "a")
		testCause(t, err, cykErrNotCNF)
	})

	t.Run("the grammar needs a start symbol", func(t *testing.T) {
		g := genGrammar(t, `S ::= a`)
		assert.NoError(t, g.RemoveNonTerminal('S'))
		_, err := IsDerivedUsingCYK(g, "a")
		testCause(t, err, cykErrNoStartSymbol)
	})

	t.Run("the grammar needs a production", func(t *testing.T) {
		g := grammar.NewGrammar()
		assert.NoError(t, g.AddNonTerminal('S'))
		assert.NoError(t, g.SetStartSymbol('S'))
		_, err := IsDerivedUsingCYK(g, "")
		testCause(t, err, cykErrEmptyGrammar)
	})
}

func TestCYKStateToString(t *testing.T) {
	tests := []struct {
		caption string
		g       *grammar.Grammar
		word    string
		state   string
	}{
		{
			caption: "cells list their non-terminals",
			g:       genGrammar(t, `S ::= AB | a, A ::= a, B ::= b`),
			word:    "ab",
			state:   "2 | S\n1 | A,S | B\n  | a   | b",
		},
		{
			caption: "an empty cell is a dash",
			g:       genGrammar(t, `S ::= AB | a, A ::= a, B ::= b`),
			word:    "ba",
			state:   "2 | -\n1 | B   | A,S\n  | b   | a",
		},
		{
			caption: "the empty word without λ",
			g:       genGrammar(t, `S ::= AB | a, A ::= a, B ::= b`),
			word:    "",
			state:   "λ | -",
		},
		{
			caption: "the empty word with λ",
			g:       genGrammar(t, `S ::= AB | l, A ::= a, B ::= b`),
			word:    "",
			state:   "λ | S",
		},
		{
			caption: "a single symbol",
			g:       genGrammar(t, `S ::= AB | a, A ::= a, B ::= b`),
			word:    "a",
			state:   "1 | A,S\n  | a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			state, err := CYKStateToString(tt.g, tt.word)
			assert.NoError(t, err)
			assert.Equal(t, tt.state, state)
		})
	}

	t.Run("labels are aligned for long words", func(t *testing.T) {
		g := genGrammar(t, `S ::= SS | a`)
		state, err := CYKStateToString(g, "aaaaaaaaaa")
		assert.NoError(t, err)
		lines := strings.Split(state, "\n")
		assert.Equal(t, 11, len(lines))
		assert.Equal(t, "10 | S", lines[0])
		assert.Equal(t, " 9 | S | S", lines[1])
		assert.True(t, strings.HasPrefix(lines[9], " 1 | S | S"))
		assert.True(t, strings.HasPrefix(lines[10], "   | a | a"))
	})
}

func TestWriteCYKGrid(t *testing.T) {
	g := genGrammar(t, `S ::= AB | a, A ::= a, B ::= b`)

	var b bytes.Buffer
	assert.NoError(t, WriteCYKGrid(&b, g, "ab"))
	grid := b.String()
	for _, s := range []string{"A,S", "| S", "| b", "| 2", "| 1"} {
		if !strings.Contains(grid, s) {
			t.Fatalf("%q is missing in the grid:\n%v", s, grid)
		}
	}

	b.Reset()
	assert.NoError(t, WriteCYKGrid(&b, g, ""))
	assert.True(t, strings.Contains(b.String(), "λ"))

	b.Reset()
	err := WriteCYKGrid(&b, g, "c")
	testCause(t, err, cykErrUndeclaredTerminal)
	assert.Equal(t, 0, b.Len())
}

func TestIsDerivedUsingCYK_Concurrent(t *testing.T) {
	g := genCNFGrammar(t, `S ::= aSb | ab`)
	words := map[string]bool{
		"ab":         true,
		"aaaabbbb":   true,
		"aaaabbb":    false,
		"aaaaabbbbb": true,
		"b":          false,
	}
	var wg sync.WaitGroup
	errs := make(chan string, 100)
	for i := 0; i < 10; i++ {
		for word, expected := range words {
			wg.Add(1)
			go func(word string, expected bool) {
				defer wg.Done()
				derived, err := IsDerivedUsingCYK(g, word)
				if err != nil || derived != expected {
					errs <- word
				}
			}(word, expected)
		}
	}
	wg.Wait()
	close(errs)
	for word := range errs {
		t.Errorf("unexpected result for %q", word)
	}
}
