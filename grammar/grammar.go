package grammar

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// Grammar is a context-free grammar. The authoring functions mutate it in place; the transformations
// treat their input as read-only and return a new Grammar.
type Grammar struct {
	nonTerminals  symbolSet
	terminals     symbolSet
	productionSet *productionSet
	start         Symbol
}

func NewGrammar() *Grammar {
	return &Grammar{
		nonTerminals:  symbolSet{},
		terminals:     symbolSet{},
		productionSet: newProductionSet(),
	}
}

func (g *Grammar) Clone() *Grammar {
	return &Grammar{
		nonTerminals:  g.nonTerminals.clone(),
		terminals:     g.terminals.clone(),
		productionSet: g.productionSet.clone(),
		start:         g.start,
	}
}

// Reset removes all symbols, productions and the start symbol.
func (g *Grammar) Reset() {
	g.nonTerminals = symbolSet{}
	g.terminals = symbolSet{}
	g.productionSet = newProductionSet()
	g.start = symbolNil
}

func (g *Grammar) AddNonTerminal(r rune) error {
	sym := Symbol(r)
	if !sym.IsNonTerminal() {
		return newError("add non-terminal", semErrInvalidNonTerminal, sym.String())
	}
	if !g.nonTerminals.add(sym) {
		return newError("add non-terminal", semErrDuplicateNonTerm, sym.String())
	}
	return nil
}

// RemoveNonTerminal removes a non-terminal together with every production mentioning it. When the
// non-terminal is the start symbol, the grammar is left without a start symbol.
func (g *Grammar) RemoveNonTerminal(r rune) error {
	sym := Symbol(r)
	if !g.nonTerminals.has(sym) {
		return newError("remove non-terminal", semErrUndefinedNonTerm, sym.String())
	}
	g.removeSymbol(sym)
	return nil
}

func (g *Grammar) AddTerminal(r rune) error {
	sym := Symbol(r)
	if !sym.IsTerminal() {
		return newError("add terminal", semErrInvalidTerminal, sym.String())
	}
	if !g.terminals.add(sym) {
		return newError("add terminal", semErrDuplicateTerminal, sym.String())
	}
	return nil
}

// RemoveTerminal removes a terminal together with every production containing it.
func (g *Grammar) RemoveTerminal(r rune) error {
	sym := Symbol(r)
	if !g.terminals.has(sym) {
		return newError("remove terminal", semErrUndefinedTerminal, sym.String())
	}
	g.removeSymbol(sym)
	return nil
}

func (g *Grammar) removeSymbol(sym Symbol) {
	g.productionSet.removeIf(func(prod *Production) bool {
		return prod.mentions(sym)
	})
	delete(g.nonTerminals, sym)
	delete(g.terminals, sym)
	if g.start == sym {
		g.start = symbolNil
	}
}

func (g *Grammar) SetStartSymbol(r rune) error {
	sym := Symbol(r)
	if !g.nonTerminals.has(sym) {
		return newError("set start symbol", semErrUndefinedNonTerm, sym.String())
	}
	g.start = sym
	return nil
}

func (g *Grammar) StartSymbol() (Symbol, error) {
	if g.start == symbolNil {
		return symbolNil, newError("start symbol", semErrNoStartSymbol, "")
	}
	return g.start, nil
}

func (g *Grammar) hasStart() bool {
	return g.start != symbolNil
}

// AddProduction adds `lhs ::= rhs`. rhs is either `l` for the empty string or a sequence of declared
// symbols.
func (g *Grammar) AddProduction(lhs rune, rhs string) error {
	const op = "add production"
	l, r, err := g.parseRule(op, lhs, rhs)
	if err != nil {
		return err
	}
	if !g.productionSet.append(newProduction(l, r)) {
		return newError(op, semErrDuplicateProduction, fmt.Sprintf("%v::=%v", l, rhs))
	}
	return nil
}

func (g *Grammar) RemoveProduction(lhs rune, rhs string) error {
	const op = "remove production"
	l, r, err := g.parseRule(op, lhs, rhs)
	if err != nil {
		return err
	}
	prod, ok := g.productionSet.find(l, r)
	if !ok {
		return newError(op, semErrUndefinedProduction, fmt.Sprintf("%v::=%v", l, rhs))
	}
	g.productionSet.remove(prod.id)
	return nil
}

func (g *Grammar) parseRule(op string, lhs rune, rhs string) (Symbol, []Symbol, error) {
	l := Symbol(lhs)
	if !g.nonTerminals.has(l) {
		return symbolNil, nil, newError(op, semErrUndefinedNonTerm, l.String())
	}
	r, err := g.parseRHS(op, rhs)
	if err != nil {
		return symbolNil, nil, err
	}
	return l, r, nil
}

func (g *Grammar) parseRHS(op string, rhs string) ([]Symbol, error) {
	if rhs == "" {
		return nil, newError(op, semErrEmptyRHS, "")
	}
	if rhs == Lambda.String() {
		return []Symbol{}, nil
	}
	syms := make([]Symbol, 0, len(rhs))
	for _, r := range rhs {
		sym := Symbol(r)
		switch {
		case sym.IsLambda():
			return nil, newError(op, semErrLambdaInSequence, rhs)
		case g.isDeclared(sym):
			syms = append(syms, sym)
		default:
			return nil, newError(op, semErrUndefinedSym, sym.String())
		}
	}
	return syms, nil
}

func (g *Grammar) isDeclared(sym Symbol) bool {
	return g.nonTerminals.has(sym) || g.terminals.has(sym)
}

func (g *Grammar) NonTerminals() []Symbol {
	return g.nonTerminals.sorted()
}

func (g *Grammar) Terminals() []Symbol {
	return g.terminals.sorted()
}

// AllProductions returns every production ordered by LHS and then alphabetically by RHS.
func (g *Grammar) AllProductions() []*Production {
	return g.productionSet.all()
}

// ProductionsOf returns the productions of a non-terminal in alphabetical order.
func (g *Grammar) ProductionsOf(lhs Symbol) []*Production {
	return sortProductions(g.productionSet.findByLHS(lhs))
}

// Productions returns the right-hand sides of a non-terminal in alphabetical order.
func (g *Grammar) Productions(lhs rune) []string {
	prods := g.ProductionsOf(Symbol(lhs))
	rhss := make([]string, 0, len(prods))
	for _, prod := range prods {
		rhss = append(rhss, prod.RHSString())
	}
	return rhss
}

// ProductionsString renders the productions of a non-terminal as `S::=aBb|bC`. It returns an empty
// string for an undeclared non-terminal.
func (g *Grammar) ProductionsString(lhs rune) string {
	if !g.nonTerminals.has(Symbol(lhs)) {
		return ""
	}
	return fmt.Sprintf("%v::=%v", Symbol(lhs), strings.Join(g.Productions(lhs), "|"))
}

// IsEmpty reports whether the grammar has no production.
func (g *Grammar) IsEmpty() bool {
	return g.productionSet.len() == 0
}

// IsCFG reports whether λ-productions appear only on the start symbol.
func (g *Grammar) IsCFG() bool {
	for _, prod := range g.productionSet.all() {
		if prod.IsLambda() && prod.LHS != g.start {
			return false
		}
	}
	return true
}

// String renders one line per non-terminal having productions, in alphabetical order.
func (g *Grammar) String() string {
	var b strings.Builder
	for _, lhs := range g.nonTerminals.sorted() {
		if len(g.productionSet.findByLHS(lhs)) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%v,\n", g.ProductionsString(rune(lhs)))
	}
	return b.String()
}

// appearsOnRHS reports whether sym occurs on the right-hand side of any production.
func (g *Grammar) appearsOnRHS(sym Symbol) bool {
	for _, prod := range g.productionSet.all() {
		for _, s := range prod.RHS {
			if s == sym {
				return true
			}
		}
	}
	return false
}

func (g *Grammar) inUse() symbolSet {
	used := g.nonTerminals.clone()
	for sym := range g.terminals {
		used.add(sym)
	}
	return used
}
