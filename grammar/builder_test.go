package grammar

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	verr "github.com/nihei9/chomsky/error"
	"github.com/nihei9/chomsky/spec"
)

func TestGrammarBuilder(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		start    Symbol
		nonTerms []Symbol
		terms    []Symbol
		result   string
	}{
		{
			caption:  "the first left-hand side is the start symbol",
			src:      `S ::= A B | a, A ::= a, B ::= b`,
			start:    'S',
			nonTerms: []Symbol{'A', 'B', 'S'},
			terms:    []Symbol{'a', 'b'},
			result:   "A::=a,\nB::=b,\nS::=AB|a,\n",
		},
		{
			caption:  "%start overrides the first left-hand side",
			src:      "%start S\nA ::= a\nS ::= AA | l",
			start:    'S',
			nonTerms: []Symbol{'A', 'S'},
			terms:    []Symbol{'a'},
			result:   "A::=a,\nS::=AA|l,\n",
		},
		{
			caption:  "symbols without productions are declared",
			src:      `S ::= aX`,
			start:    'S',
			nonTerms: []Symbol{'S', 'X'},
			terms:    []Symbol{'a'},
			result:   "S::=aX,\n",
		},
		{
			caption:  "alternatives of one non-terminal can be spread over several productions",
			src:      `S ::= a, S ::= b`,
			start:    'S',
			nonTerms: []Symbol{'S'},
			terms:    []Symbol{'a', 'b'},
			result:   "S::=a|b,\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := genGrammar(t, tt.src)
			start, err := g.StartSymbol()
			assert.NoError(t, err)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.nonTerms, g.NonTerminals())
			assert.Equal(t, tt.terms, g.Terminals())
			assert.Equal(t, tt.result, g.String())
		})
	}
}

func TestGrammarBuilder_SemanticErrors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		causes  []error
	}{
		{
			caption: "the lambda symbol cannot be combined with other symbols",
			src:     `S ::= al | b`,
			causes:  []error{semErrLambdaInSequence},
		},
		{
			caption: "an alternative cannot appear twice",
			src:     `S ::= a | a`,
			causes:  []error{semErrDuplicateProduction},
		},
		{
			caption: "the start symbol must be declared",
			src:     "%start X\nS ::= a",
			causes:  []error{semErrUndefinedNonTerm},
		},
		{
			caption: "all errors are reported",
			src:     "%start X\nS ::= la | b, S ::= b",
			causes:  []error{semErrLambdaInSequence, semErrDuplicateProduction, semErrUndefinedNonTerm},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := spec.Parse(strings.NewReader(tt.src))
			assert.NoError(t, err)
			b := GrammarBuilder{
				AST: ast,
			}
			g, err := b.Build()
			assert.True(t, g == nil)
			specErrs, ok := err.(verr.SpecErrors)
			if !ok {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(specErrs) != len(tt.causes) {
				t.Fatalf("unexpected error count; want: %v, got: %v", len(tt.causes), specErrs)
			}
			for i, specErr := range specErrs {
				assert.Equal(t, tt.causes[i], specErr.Cause)
				assert.True(t, specErr.Row > 0)
			}
		})
	}
}
