package grammar

import "github.com/emirpasic/gods/stacks/arraystack"

// genGeneratingSet computes the non-terminals deriving at least one terminal string.
func genGeneratingSet(g *Grammar) symbolSet {
	generating := symbolSet{}
	prods := g.productionSet.all()
	for {
		more := false
		for _, prod := range prods {
			if generating.has(prod.LHS) {
				continue
			}
			if allGenerating(prod.RHS, generating) {
				generating.add(prod.LHS)
				more = true
			}
		}
		if !more {
			break
		}
	}
	return generating
}

func allGenerating(rhs []Symbol, generating symbolSet) bool {
	for _, sym := range rhs {
		if sym.IsTerminal() {
			continue
		}
		if !generating.has(sym) {
			return false
		}
	}
	return true
}

// genReachableSet computes the symbols, terminals included, reachable from the start symbol.
func genReachableSet(g *Grammar) symbolSet {
	reachable := symbolSet{g.start: struct{}{}}
	stack := arraystack.New()
	stack.Push(g.start)
	for !stack.Empty() {
		v, _ := stack.Pop()
		for _, prod := range g.productionSet.findByLHS(v.(Symbol)) {
			for _, sym := range prod.RHS {
				if !reachable.add(sym) {
					continue
				}
				if sym.IsNonTerminal() {
					stack.Push(sym)
				}
			}
		}
	}
	return reachable
}

// RemoveUselessSymbols removes the non-terminals deriving no terminal string and then the symbols
// unreachable from the start symbol, along with every production mentioning them. The order matters:
// dropping non-generating symbols can cut the only path to other symbols, never the reverse.
//
// The start symbol stays declared even when it generates nothing; only its productions go away.
func RemoveUselessSymbols(g *Grammar) (*Grammar, []Symbol, error) {
	if !g.hasStart() {
		return nil, nil, newError("remove useless symbols", semErrNoStartSymbol, "")
	}

	out := g.Clone()
	eliminated := symbolSet{}

	generating := genGeneratingSet(out)
	for _, nt := range out.nonTerminals.sorted() {
		if generating.has(nt) || nt == out.start {
			continue
		}
		out.removeSymbol(nt)
		eliminated.add(nt)
	}
	if !generating.has(out.start) {
		start := out.start
		out.productionSet.removeIf(func(prod *Production) bool {
			return prod.mentions(start)
		})
	}

	reachable := genReachableSet(out)
	for _, sym := range append(out.nonTerminals.sorted(), out.terminals.sorted()...) {
		if reachable.has(sym) {
			continue
		}
		out.removeSymbol(sym)
		eliminated.add(sym)
	}

	syms := eliminated.sorted()
	tracer().Debugf("useless symbols: %v", syms)
	return out, syms, nil
}

// HasUselessSymbols reports whether RemoveUselessSymbols would change the grammar.
func HasUselessSymbols(g *Grammar) (bool, error) {
	out, eliminated, err := RemoveUselessSymbols(g)
	if err != nil {
		return false, err
	}
	return len(eliminated) > 0 || out.productionSet.len() != g.productionSet.len(), nil
}
