package grammar

// WellFormedReport lists what each step of TransformToWellFormedGrammar eliminated.
type WellFormedReport struct {
	UselessProductions []string
	LambdaTreated      []Symbol
	UnitProductions    []string
	UselessSymbols     []Symbol
}

// IsEmpty reports whether no step changed the grammar.
func (r *WellFormedReport) IsEmpty() bool {
	return len(r.UselessProductions) == 0 &&
		len(r.LambdaTreated) == 0 &&
		len(r.UnitProductions) == 0 &&
		len(r.UselessSymbols) == 0
}

// HasUselessProductions reports whether the grammar contains a production A ::= A.
func HasUselessProductions(g *Grammar) bool {
	for _, prod := range g.productionSet.all() {
		if prod.IsSelf() {
			return true
		}
	}
	return false
}

// RemoveUselessProductions returns a copy of the grammar without the productions A ::= A, and the
// removed productions rendered as `A::=A`.
func RemoveUselessProductions(g *Grammar) (*Grammar, []string) {
	out := g.Clone()
	out.productionSet = newProductionSet()
	var eliminated []string
	for _, prod := range g.productionSet.all() {
		if prod.IsSelf() {
			eliminated = append(eliminated, prod.String())
			continue
		}
		out.productionSet.append(newProduction(prod.LHS, append([]Symbol{}, prod.RHS...)))
	}
	tracer().Debugf("useless productions: %v", eliminated)
	return out, eliminated
}

// IsWellFormed reports whether the grammar has a start symbol and contains no useless production,
// no λ-production other than a permitted one on the start symbol, no unit production and no useless
// symbol.
func IsWellFormed(g *Grammar) bool {
	if !g.hasStart() {
		return false
	}
	if HasUselessProductions(g) || HasLambdaProductions(g) || HasUnitProductions(g) {
		return false
	}
	useless, err := HasUselessSymbols(g)
	if err != nil {
		return false
	}
	return !useless
}

// TransformToWellFormedGrammar removes useless productions, λ-productions, unit productions and useless
// symbols, in this order. Each step may expose work for the next one: removing λ-productions creates
// unit productions, and removing unit productions can leave symbols unreachable.
func TransformToWellFormedGrammar(g *Grammar) (*Grammar, *WellFormedReport, error) {
	if !g.hasStart() {
		return nil, nil, newError("transform to well-formed grammar", semErrNoStartSymbol, "")
	}

	report := &WellFormedReport{}
	out, uselessProds := RemoveUselessProductions(g)
	report.UselessProductions = uselessProds

	out, treated := RemoveLambdaProductions(out)
	report.LambdaTreated = treated

	out, unitProds := RemoveUnitProductions(out)
	report.UnitProductions = unitProds

	out, uselessSyms, err := RemoveUselessSymbols(out)
	if err != nil {
		return nil, nil, err
	}
	report.UselessSymbols = uselessSyms

	tracer().P("grammar", "well-formed").Debugf("%+v", report)

	return out, report, nil
}
