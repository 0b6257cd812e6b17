package grammar

// genNullableSet computes the non-terminals deriving the empty string. A non-terminal is nullable when
// one of its productions consists only of nullable non-terminals; a λ-production trivially does.
func genNullableSet(g *Grammar) symbolSet {
	nullable := symbolSet{}
	prods := g.productionSet.all()
	for {
		more := false
		for _, prod := range prods {
			if nullable.has(prod.LHS) {
				continue
			}
			if allNullable(prod.RHS, nullable) {
				nullable.add(prod.LHS)
				more = true
			}
		}
		if !more {
			break
		}
	}
	return nullable
}

func allNullable(rhs []Symbol, nullable symbolSet) bool {
	for _, sym := range rhs {
		if !nullable.has(sym) {
			return false
		}
	}
	return true
}

// HasLambdaProductions reports whether the grammar contains a λ-production. The λ-production of the start
// symbol doesn't count as long as the start symbol never appears on a right-hand side; it only makes the
// language contain the empty string.
func HasLambdaProductions(g *Grammar) bool {
	for _, prod := range g.productionSet.all() {
		if !prod.IsLambda() {
			continue
		}
		if prod.LHS == g.start && !g.appearsOnRHS(g.start) {
			continue
		}
		return true
	}
	return false
}

// RemoveLambdaProductions returns an equivalent grammar without λ-productions and the non-terminals whose
// productions changed.
//
// Every production is replaced with all the variants obtained by deleting any subset of its nullable
// occurrences. When the start symbol is nullable, the language contains the empty string. Then the start
// symbol keeps (or gets) `S::=l` if it appears on no right-hand side; otherwise a fresh start symbol S'
// with `S'::=S|l` is introduced.
func RemoveLambdaProductions(g *Grammar) (*Grammar, []Symbol) {
	nullable := genNullableSet(g)
	tracer().Debugf("nullable non-terminals: %v", nullable.sorted())

	out := g.Clone()
	out.productionSet = newProductionSet()
	for _, prod := range g.productionSet.all() {
		if prod.IsLambda() {
			continue
		}
		for _, rhs := range expandNullable(prod.RHS, nullable) {
			if len(rhs) == 0 {
				continue
			}
			if len(rhs) == 1 && rhs[0] == prod.LHS {
				continue
			}
			out.productionSet.append(newProduction(prod.LHS, rhs))
		}
	}

	if g.hasStart() && nullable.has(g.start) {
		keepLambdaOnStart(out)
	}

	var treated []Symbol
	for _, lhs := range g.nonTerminals.sorted() {
		if !sameProductions(g.productionSet.findByLHS(lhs), out.productionSet.findByLHS(lhs)) {
			treated = append(treated, lhs)
		}
	}
	return out, treated
}

func keepLambdaOnStart(g *Grammar) {
	if !g.appearsOnRHS(g.start) {
		g.productionSet.append(newProduction(g.start, []Symbol{}))
		return
	}

	start, ok := freshNonTerminal(g.inUse())
	if !ok {
		// Without a free name the empty string can only be kept on the old start symbol.
		g.productionSet.append(newProduction(g.start, []Symbol{}))
		return
	}
	g.nonTerminals.add(start)
	g.productionSet.append(newProduction(start, []Symbol{g.start}))
	g.productionSet.append(newProduction(start, []Symbol{}))
	tracer().Debugf("new start symbol %v replaces %v", start, g.start)
	g.start = start
}

// expandNullable enumerates the right-hand sides obtained by independently keeping or deleting each
// nullable occurrence. The original sequence comes first.
func expandNullable(rhs []Symbol, nullable symbolSet) [][]Symbol {
	alts := [][]Symbol{{}}
	for _, sym := range rhs {
		next := make([][]Symbol, 0, len(alts)*2)
		for _, alt := range alts {
			next = append(next, append(append([]Symbol{}, alt...), sym))
		}
		if nullable.has(sym) {
			next = append(next, alts...)
		}
		alts = next
	}
	return alts
}

func sameProductions(a, b []*Production) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[productionID]struct{}, len(a))
	for _, prod := range a {
		ids[prod.id] = struct{}{}
	}
	for _, prod := range b {
		if _, ok := ids[prod.id]; !ok {
			return false
		}
	}
	return true
}
