package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/exp/slices"
)

type productionID [32]byte

func (id productionID) String() string {
	return hex.EncodeToString(id[:])
}

func genProductionID(lhs Symbol, rhs []Symbol) productionID {
	seq := []byte(string(lhs))
	for _, sym := range rhs {
		seq = append(seq, []byte(string(sym))...)
	}
	return productionID(sha256.Sum256(seq))
}

// Production is a rule LHS ::= RHS. An empty RHS is the λ-production.
type Production struct {
	id  productionID
	LHS Symbol
	RHS []Symbol
}

func newProduction(lhs Symbol, rhs []Symbol) *Production {
	return &Production{
		id:  genProductionID(lhs, rhs),
		LHS: lhs,
		RHS: rhs,
	}
}

// rhsString renders a right-hand side the way it is written in a grammar, λ as `l`.
func rhsString(rhs []Symbol) string {
	if len(rhs) == 0 {
		return Lambda.String()
	}
	var b strings.Builder
	for _, sym := range rhs {
		b.WriteRune(rune(sym))
	}
	return b.String()
}

func (p *Production) String() string {
	return p.LHS.String() + "::=" + p.RHSString()
}

func (p *Production) RHSString() string {
	return rhsString(p.RHS)
}

func (p *Production) IsLambda() bool {
	return len(p.RHS) == 0
}

// IsUnit reports whether the RHS is exactly one non-terminal.
func (p *Production) IsUnit() bool {
	return len(p.RHS) == 1 && p.RHS[0].IsNonTerminal()
}

// IsSelf reports whether the production is A ::= A.
func (p *Production) IsSelf() bool {
	return len(p.RHS) == 1 && p.RHS[0] == p.LHS
}

func (p *Production) mentions(sym Symbol) bool {
	if p.LHS == sym {
		return true
	}
	for _, s := range p.RHS {
		if s == sym {
			return true
		}
	}
	return false
}

type productionSet struct {
	lhs2Prods map[Symbol][]*Production
	id2Prod   map[productionID]*Production
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[Symbol][]*Production{},
		id2Prod:   map[productionID]*Production{},
	}
}

func (ps *productionSet) append(prod *Production) bool {
	if _, ok := ps.id2Prod[prod.id]; ok {
		return false
	}
	ps.lhs2Prods[prod.LHS] = append(ps.lhs2Prods[prod.LHS], prod)
	ps.id2Prod[prod.id] = prod
	return true
}

func (ps *productionSet) remove(id productionID) bool {
	prod, ok := ps.id2Prod[id]
	if !ok {
		return false
	}
	delete(ps.id2Prod, id)
	prods := ps.lhs2Prods[prod.LHS]
	rest := make([]*Production, 0, len(prods))
	for _, p := range prods {
		if p.id == id {
			continue
		}
		rest = append(rest, p)
	}
	if len(rest) == 0 {
		delete(ps.lhs2Prods, prod.LHS)
	} else {
		ps.lhs2Prods[prod.LHS] = rest
	}
	return true
}

func (ps *productionSet) removeIf(pred func(*Production) bool) {
	for _, prod := range ps.all() {
		if pred(prod) {
			ps.remove(prod.id)
		}
	}
}

func (ps *productionSet) find(lhs Symbol, rhs []Symbol) (*Production, bool) {
	prod, ok := ps.id2Prod[genProductionID(lhs, rhs)]
	return prod, ok
}

func (ps *productionSet) findByLHS(lhs Symbol) []*Production {
	return ps.lhs2Prods[lhs]
}

// all returns every production, ordered by LHS and then by the rendered RHS.
func (ps *productionSet) all() []*Production {
	lhss := make([]Symbol, 0, len(ps.lhs2Prods))
	for lhs := range ps.lhs2Prods {
		lhss = append(lhss, lhs)
	}
	slices.Sort(lhss)
	var prods []*Production
	for _, lhs := range lhss {
		prods = append(prods, sortProductions(ps.lhs2Prods[lhs])...)
	}
	return prods
}

func (ps *productionSet) len() int {
	return len(ps.id2Prod)
}

func (ps *productionSet) clone() *productionSet {
	c := newProductionSet()
	for _, prod := range ps.all() {
		c.append(newProduction(prod.LHS, append([]Symbol{}, prod.RHS...)))
	}
	return c
}

func sortProductions(prods []*Production) []*Production {
	sorted := append([]*Production{}, prods...)
	slices.SortFunc(sorted, func(a, b *Production) bool {
		return a.RHSString() < b.RHSString()
	})
	return sorted
}
