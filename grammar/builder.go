package grammar

import (
	"fmt"

	verr "github.com/nihei9/chomsky/error"
	"github.com/nihei9/chomsky/spec"
)

// GrammarBuilder builds a Grammar from a parsed grammar file. Every symbol appearing in the file is
// declared; an alternative consisting of `l` alone is the λ-production. The start symbol is the one
// named by %start, or else the left-hand side of the first production.
type GrammarBuilder struct {
	AST *spec.RootNode

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	g := NewGrammar()

	for _, prod := range b.AST.Productions {
		b.declare(g, prod.LHS)
		for _, alt := range prod.RHS {
			for _, elem := range alt.Elements {
				b.declare(g, elem.Symbol)
			}
		}
	}

	for _, prod := range b.AST.Productions {
		lhs := symbolOf(prod.LHS)
		for _, alt := range prod.RHS {
			rhs, ok := b.genRHS(alt)
			if !ok {
				continue
			}
			if !g.productionSet.append(newProduction(lhs, rhs)) {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrDuplicateProduction,
					Detail: fmt.Sprintf("%v::=%v", lhs, rhsString(rhs)),
					Row:    alt.Pos.Row,
					Col:    alt.Pos.Col,
				})
			}
		}
	}

	if b.AST.Start != "" {
		start := symbolOf(b.AST.Start)
		if !g.nonTerminals.has(start) {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrUndefinedNonTerm,
				Detail: b.AST.Start,
				Row:    b.AST.StartPos.Row,
				Col:    b.AST.StartPos.Col,
			})
		} else {
			g.start = start
		}
	} else if len(b.AST.Productions) > 0 {
		g.start = symbolOf(b.AST.Productions[0].LHS)
	}

	if len(b.errs) > 0 {
		return nil, b.errs
	}

	tracer().P("grammar", "build").Debugf("%v non-terminals, %v terminals, %v productions, start %v",
		len(g.nonTerminals), len(g.terminals), g.productionSet.len(), g.start)

	return g, nil
}

func (b *GrammarBuilder) declare(g *Grammar, text string) {
	sym := symbolOf(text)
	switch {
	case sym.IsNonTerminal():
		g.nonTerminals.add(sym)
	case sym.IsTerminal():
		g.terminals.add(sym)
	}
}

func (b *GrammarBuilder) genRHS(alt *spec.AlternativeNode) ([]Symbol, bool) {
	if len(alt.Elements) == 1 && symbolOf(alt.Elements[0].Symbol).IsLambda() {
		return []Symbol{}, true
	}
	rhs := make([]Symbol, 0, len(alt.Elements))
	for _, elem := range alt.Elements {
		sym := symbolOf(elem.Symbol)
		if sym.IsLambda() {
			b.errs = append(b.errs, &verr.SpecError{
				Cause: semErrLambdaInSequence,
				Row:   elem.Pos.Row,
				Col:   elem.Pos.Col,
			})
			return nil, false
		}
		rhs = append(rhs, sym)
	}
	return rhs, true
}

func symbolOf(text string) Symbol {
	for _, r := range text {
		return Symbol(r)
	}
	return symbolNil
}
