package grammar

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestIsCNF(t *testing.T) {
	g := genGrammar(t, `S ::= AB | a, A ::= a, B ::= b`)
	assert.True(t, IsCNF(g))

	assert.NoError(t, g.AddProduction('S', "ABA"))
	assert.False(t, IsCNF(g))

	out, err := TransformIntoCNF(g)
	assert.NoError(t, err)
	assert.True(t, IsCNF(out))
	assert.Equal(t, "A::=a,\nB::=b,\nC::=BA,\nS::=AB|AC|a,\n", out.String())
}

func TestCheckCNFProduction(t *testing.T) {
	tests := []struct {
		caption string
		lhs     rune
		rhs     string
		cause   error
	}{
		{
			caption: "a single terminal is CNF",
			lhs:     'S',
			rhs:     "a",
		},
		{
			caption: "two non-terminals are CNF",
			lhs:     'S',
			rhs:     "AB",
		},
		{
			caption: "λ on the start symbol is CNF",
			lhs:     'S',
			rhs:     "l",
		},
		{
			caption: "λ on another non-terminal is not CNF",
			lhs:     'A',
			rhs:     "l",
			cause:   semErrNotCNF,
		},
		{
			caption: "three non-terminals are not CNF",
			lhs:     'S',
			rhs:     "ABA",
			cause:   semErrNotCNF,
		},
		{
			caption: "a terminal next to a non-terminal is not CNF",
			lhs:     'S',
			rhs:     "aB",
			cause:   semErrNotCNF,
		},
		{
			caption: "a unit production is not CNF",
			lhs:     'S',
			rhs:     "A",
			cause:   semErrNotCNF,
		},
		{
			caption: "the left-hand side must be declared",
			lhs:     'X',
			rhs:     "a",
			cause:   semErrUndefinedNonTerm,
		},
		{
			caption: "the right-hand side must be declared",
			lhs:     'S',
			rhs:     "c",
			cause:   semErrUndefinedSym,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := genGrammar(t, `S ::= AB | a, A ::= a, B ::= b`)
			err := CheckCNFProduction(g, tt.lhs, tt.rhs)
			if tt.cause != nil {
				testCause(t, err, tt.cause)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTransformIntoCNF(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		result  string
		start   Symbol
	}{
		{
			caption: "terminals in long right-hand sides get their own non-terminals",
			src:     `S ::= aSb | ab`,
			result:  "A::=a,\nB::=b,\nC::=SB,\nS::=AB|AC,\n",
			start:   'S',
		},
		{
			caption: "long right-hand sides are split from the left",
			src:     `S ::= ABAB | a, A ::= a, B ::= b`,
			result:  "A::=a,\nB::=b,\nC::=BD,\nD::=AB,\nS::=AC|a,\n",
			start:   'S',
		},
		{
			caption: "λ on the start symbol passes through",
			src:     `S ::= aSb | l`,
			result:  "A::=BC|BD|l,\nB::=a,\nC::=b,\nD::=SC,\nE::=SC,\nS::=BC|BE,\n",
			start:   'A',
		},
		{
			caption: "a CNF grammar is left unchanged",
			src:     `S ::= AB | a, A ::= a, B ::= b`,
			result:  "A::=a,\nB::=b,\nS::=AB|a,\n",
			start:   'S',
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g, _, err := TransformToWellFormedGrammar(genGrammar(t, tt.src))
			assert.NoError(t, err)
			out, err := TransformIntoCNF(g)
			assert.NoError(t, err)
			assert.Equal(t, tt.result, out.String())
			assert.True(t, IsCNF(out))
			start, err := out.StartSymbol()
			assert.NoError(t, err)
			assert.Equal(t, tt.start, start)

			again, err := TransformIntoCNF(out)
			assert.NoError(t, err)
			assert.Equal(t, out.String(), again.String())
		})
	}

	t.Run("a grammar must be well-formed", func(t *testing.T) {
		_, err := TransformIntoCNF(genGrammar(t, `S ::= A, A ::= a`))
		testCause(t, err, semErrNotWellFormed)
	})
}

func TestFreshNonTerminal(t *testing.T) {
	inUse := symbolSet{}
	sym, ok := freshNonTerminal(inUse)
	assert.True(t, ok)
	assert.Equal(t, Symbol('A'), sym)

	for r := 'A'; r <= 'Z'; r++ {
		inUse.add(Symbol(r))
	}
	sym, ok = freshNonTerminal(inUse)
	assert.True(t, ok)
	assert.Equal(t, Symbol('À'), sym)
	assert.True(t, sym.IsNonTerminal())
}
