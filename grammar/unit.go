package grammar

import "github.com/emirpasic/gods/stacks/arraystack"

// HasUnitProductions reports whether the grammar contains a production A ::= B.
func HasUnitProductions(g *Grammar) bool {
	for _, prod := range g.productionSet.all() {
		if prod.IsUnit() {
			return true
		}
	}
	return false
}

// genUnitClosure computes, for each non-terminal A, the non-terminals reachable from A through unit
// productions only. A itself is always a member.
func genUnitClosure(g *Grammar) map[Symbol]symbolSet {
	closure := make(map[Symbol]symbolSet, len(g.nonTerminals))
	for _, a := range g.nonTerminals.sorted() {
		reach := symbolSet{a: struct{}{}}
		stack := arraystack.New()
		stack.Push(a)
		for !stack.Empty() {
			v, _ := stack.Pop()
			for _, prod := range g.productionSet.findByLHS(v.(Symbol)) {
				if !prod.IsUnit() {
					continue
				}
				if reach.add(prod.RHS[0]) {
					stack.Push(prod.RHS[0])
				}
			}
		}
		closure[a] = reach
	}
	return closure
}

// RemoveUnitProductions replaces every unit production A ::= B with the non-unit productions of all the
// non-terminals in the unit closure of A. It returns the eliminated productions rendered as `A::=B`.
func RemoveUnitProductions(g *Grammar) (*Grammar, []string) {
	closure := genUnitClosure(g)

	out := g.Clone()
	out.productionSet = newProductionSet()
	var eliminated []string
	for _, prod := range g.productionSet.all() {
		if prod.IsUnit() {
			eliminated = append(eliminated, prod.String())
		}
	}
	for _, a := range g.nonTerminals.sorted() {
		for _, b := range closure[a].sorted() {
			for _, prod := range g.productionSet.findByLHS(b) {
				if prod.IsUnit() {
					continue
				}
				out.productionSet.append(newProduction(a, append([]Symbol{}, prod.RHS...)))
			}
		}
	}
	tracer().Debugf("unit productions: %v", eliminated)
	return out, eliminated
}
