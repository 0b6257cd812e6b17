package grammar

import "fmt"

// CheckCNFProduction checks that `lhs ::= rhs` is a Chomsky normal form production of the grammar:
// a single declared terminal, two declared non-terminals, or λ on the start symbol.
func CheckCNFProduction(g *Grammar, lhs rune, rhs string) error {
	const op = "check CNF production"
	l, r, err := g.parseRule(op, lhs, rhs)
	if err != nil {
		return err
	}
	if !isCNFProduction(g, newProduction(l, r)) {
		return newError(op, semErrNotCNF, fmt.Sprintf("%v::=%v", l, rhs))
	}
	return nil
}

func isCNFProduction(g *Grammar, prod *Production) bool {
	switch len(prod.RHS) {
	case 0:
		return prod.LHS == g.start
	case 1:
		return g.terminals.has(prod.RHS[0])
	case 2:
		return g.nonTerminals.has(prod.RHS[0]) && g.nonTerminals.has(prod.RHS[1])
	}
	return false
}

// IsCNF reports whether every production is in Chomsky normal form.
func IsCNF(g *Grammar) bool {
	for _, prod := range g.productionSet.all() {
		if !isCNFProduction(g, prod) {
			return false
		}
	}
	return true
}

// TransformIntoCNF converts a well-formed grammar into Chomsky normal form.
//
// First every terminal occurring in a right-hand side of length two or more gets a fresh non-terminal
// X ::= a that replaces it there. Then every right-hand side longer than two is split from the left:
// A ::= BCD becomes A ::= BX, X ::= CD.
func TransformIntoCNF(g *Grammar) (*Grammar, error) {
	const op = "transform into CNF"
	if !IsWellFormed(g) {
		return nil, newError(op, semErrNotWellFormed, "")
	}

	out := g.Clone()
	inUse := out.inUse()
	fresh := func() (Symbol, error) {
		sym, ok := freshNonTerminal(inUse)
		if !ok {
			return symbolNil, newError(op, semErrNoFreshSymbol, "")
		}
		inUse.add(sym)
		out.nonTerminals.add(sym)
		return sym, nil
	}

	prods := out.productionSet.all()

	term2NonTerm := map[Symbol]Symbol{}
	{
		terms := symbolSet{}
		for _, prod := range prods {
			if len(prod.RHS) < 2 {
				continue
			}
			for _, sym := range prod.RHS {
				if sym.IsTerminal() {
					terms.add(sym)
				}
			}
		}
		for _, t := range terms.sorted() {
			nt, err := fresh()
			if err != nil {
				return nil, err
			}
			term2NonTerm[t] = nt
		}
	}

	termed := newProductionSet()
	for _, prod := range prods {
		rhs := append([]Symbol{}, prod.RHS...)
		if len(rhs) >= 2 {
			for i, sym := range rhs {
				if nt, ok := term2NonTerm[sym]; ok {
					rhs[i] = nt
				}
			}
		}
		termed.append(newProduction(prod.LHS, rhs))
	}
	for t, nt := range term2NonTerm {
		termed.append(newProduction(nt, []Symbol{t}))
	}

	binarized := newProductionSet()
	for _, prod := range termed.all() {
		lhs := prod.LHS
		rhs := prod.RHS
		for len(rhs) > 2 {
			nt, err := fresh()
			if err != nil {
				return nil, err
			}
			binarized.append(newProduction(lhs, []Symbol{rhs[0], nt}))
			lhs = nt
			rhs = rhs[1:]
		}
		binarized.append(newProduction(lhs, append([]Symbol{}, rhs...)))
	}
	out.productionSet = binarized

	tracer().P("grammar", "cnf").Debugf("%v fresh non-terminals", len(out.nonTerminals)-len(g.nonTerminals))

	return out, nil
}
