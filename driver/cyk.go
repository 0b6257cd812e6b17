package driver

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	pool "github.com/jolestar/go-commons-pool"
	"github.com/mattn/go-runewidth"
	"github.com/nihei9/chomsky/grammar"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/olekukonko/tablewriter"
)

// tracer traces to the core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// cnfIndex looks up the left-hand sides of the productions A ::= a and A ::= BC by their right-hand side.
type cnfIndex struct {
	start         grammar.Symbol
	startNullable bool
	term2LHS      map[grammar.Symbol][]grammar.Symbol
	pair2LHS      map[[2]grammar.Symbol][]grammar.Symbol
}

func genCNFIndex(g *grammar.Grammar, start grammar.Symbol) *cnfIndex {
	idx := &cnfIndex{
		start:    start,
		term2LHS: map[grammar.Symbol][]grammar.Symbol{},
		pair2LHS: map[[2]grammar.Symbol][]grammar.Symbol{},
	}
	for _, prod := range g.AllProductions() {
		switch len(prod.RHS) {
		case 0:
			if prod.LHS == start {
				idx.startNullable = true
			}
		case 1:
			idx.term2LHS[prod.RHS[0]] = append(idx.term2LHS[prod.RHS[0]], prod.LHS)
		case 2:
			pair := [2]grammar.Symbol{prod.RHS[0], prod.RHS[1]}
			idx.pair2LHS[pair] = append(idx.pair2LHS[pair], prod.LHS)
		}
	}
	return idx
}

// prepare checks that the word can be decided against the grammar and indexes its productions.
func prepare(op string, g *grammar.Grammar, word string) (*cnfIndex, []grammar.Symbol, error) {
	start, err := g.StartSymbol()
	if err != nil {
		return nil, nil, newError(op, cykErrNoStartSymbol, "")
	}
	if g.IsEmpty() {
		return nil, nil, newError(op, cykErrEmptyGrammar, "")
	}
	if !grammar.IsCNF(g) {
		return nil, nil, newError(op, cykErrNotCNF, "")
	}

	terms := map[grammar.Symbol]struct{}{}
	for _, t := range g.Terminals() {
		terms[t] = struct{}{}
	}
	syms := make([]grammar.Symbol, 0, len(word))
	for _, r := range word {
		sym := grammar.Symbol(r)
		if _, ok := terms[sym]; !ok {
			return nil, nil, newError(op, cykErrUndeclaredTerminal, fmt.Sprintf("%q in %q", r, word))
		}
		syms = append(syms, sym)
	}
	return genCNFIndex(g, start), syms, nil
}

func symbolComparator(a, b interface{}) int {
	x := a.(grammar.Symbol)
	y := b.(grammar.Symbol)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// cykTable is the triangular CYK table. cells[i][l-1] holds the non-terminals deriving the l symbols
// of the word starting at offset i.
type cykTable struct {
	word  []grammar.Symbol
	cells [][]*treeset.Set
}

func (t *cykTable) cell(i, l int) *treeset.Set {
	return t.cells[i][l-1]
}

// reset prepares the table for a word, reusing the cells of earlier words.
func (t *cykTable) reset(word []grammar.Symbol) {
	n := len(word)
	t.word = word
	for len(t.cells) < n {
		t.cells = append(t.cells, nil)
	}
	for i := 0; i < n; i++ {
		row := t.cells[i]
		for len(row) < n-i {
			row = append(row, treeset.NewWith(symbolComparator))
		}
		for _, c := range row[:n-i] {
			c.Clear()
		}
		t.cells[i] = row
	}
}

func (t *cykTable) fill(idx *cnfIndex) {
	n := len(t.word)
	for i, sym := range t.word {
		for _, lhs := range idx.term2LHS[sym] {
			t.cell(i, 1).Add(lhs)
		}
	}
	for l := 2; l <= n; l++ {
		for i := 0; i+l <= n; i++ {
			c := t.cell(i, l)
			for k := 1; k < l; k++ {
				for _, b := range t.cell(i, k).Values() {
					for _, d := range t.cell(i+k, l-k).Values() {
						for _, lhs := range idx.pair2LHS[[2]grammar.Symbol{b.(grammar.Symbol), d.(grammar.Symbol)}] {
							c.Add(lhs)
						}
					}
				}
			}
		}
	}
}

func (t *cykTable) cellString(i, l int) string {
	c := t.cell(i, l)
	if c.Empty() {
		return "-"
	}
	var b strings.Builder
	for j, v := range c.Values() {
		if j > 0 {
			b.WriteString(",")
		}
		b.WriteRune(rune(v.(grammar.Symbol)))
	}
	return b.String()
}

// rows renders the table from the longest span down to span 1. Row k lists the cells by start offset.
func (t *cykTable) rows() [][]string {
	n := len(t.word)
	rows := make([][]string, 0, n)
	for l := n; l >= 1; l-- {
		row := make([]string, 0, n-l+1)
		for i := 0; i+l <= n; i++ {
			row = append(row, t.cellString(i, l))
		}
		rows = append(rows, row)
	}
	return rows
}

// CYK tables are short-lived and reallocating their cells for every word is wasteful. We pool them.
type tablePool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalTablePool *tablePool

func init() {
	globalTablePool = &tablePool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &cykTable{}, nil
		})
	globalTablePool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalTablePool.opool = pool.NewObjectPool(globalTablePool.ctx, factory, config)
}

func newPooledTable(word []grammar.Symbol) *cykTable {
	var t *cykTable
	o, err := globalTablePool.opool.BorrowObject(globalTablePool.ctx)
	if err != nil {
		t = &cykTable{}
	} else {
		t = o.(*cykTable)
	}
	t.reset(word)
	return t
}

func (t *cykTable) releaseIntoPool() {
	t.word = nil
	_ = globalTablePool.opool.ReturnObject(globalTablePool.ctx, t)
}

// IsDerivedUsingCYK decides whether a CNF grammar derives the word. The empty word is derived exactly when
// the start symbol has a λ-production.
func IsDerivedUsingCYK(g *grammar.Grammar, word string) (bool, error) {
	idx, syms, err := prepare("CYK", g, word)
	if err != nil {
		return false, err
	}
	if len(syms) == 0 {
		return idx.startNullable, nil
	}

	t := newPooledTable(syms)
	defer t.releaseIntoPool()
	t.fill(idx)
	derived := t.cell(0, len(syms)).Contains(idx.start)

	tracer().P("cyk", word).Debugf("derived: %v", derived)

	return derived, nil
}

// CYKStateToString renders the CYK table of a word. The rows run from the span of the whole word down to
// single symbols and are followed by the word itself:
//
//	2 | S
//	1 | A,S | B
//	  | a   | b
//
// An empty cell is rendered as `-`. The table of the empty word is the single row `λ | S`, or `λ | -`
// when the start symbol has no λ-production.
func CYKStateToString(g *grammar.Grammar, word string) (string, error) {
	idx, syms, err := prepare("CYK state", g, word)
	if err != nil {
		return "", err
	}
	if len(syms) == 0 {
		if idx.startNullable {
			return fmt.Sprintf("λ | %v", idx.start), nil
		}
		return "λ | -", nil
	}

	t := newPooledTable(syms)
	defer t.releaseIntoPool()
	t.fill(idx)
	rows := t.rows()

	width := 0
	for _, row := range rows {
		for _, c := range row {
			if w := runewidth.StringWidth(c); w > width {
				width = w
			}
		}
	}
	wordRow := make([]string, 0, len(syms))
	for _, sym := range syms {
		wordRow = append(wordRow, sym.String())
		if w := runewidth.StringWidth(sym.String()); w > width {
			width = w
		}
	}

	n := len(syms)
	labelWidth := len(strconv.Itoa(n))
	writeRow := func(b *strings.Builder, label string, cells []string) {
		padded := make([]string, 0, len(cells))
		for _, c := range cells {
			padded = append(padded, runewidth.FillRight(c, width))
		}
		line := runewidth.FillRight(label, labelWidth) + " | " + strings.Join(padded, " | ")
		b.WriteString(strings.TrimRight(line, " "))
	}

	var b strings.Builder
	for i, row := range rows {
		writeRow(&b, fmt.Sprintf("%*d", labelWidth, n-i), row)
		b.WriteString("\n")
	}
	writeRow(&b, "", wordRow)
	return b.String(), nil
}

// WriteCYKGrid writes the CYK table of a word as a bordered grid. The header row is the word; the
// first column is the span length.
func WriteCYKGrid(w io.Writer, g *grammar.Grammar, word string) error {
	idx, syms, err := prepare("CYK grid", g, word)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	if len(syms) == 0 {
		table.SetHeader([]string{"", "λ"})
		cell := "-"
		if idx.startNullable {
			cell = idx.start.String()
		}
		table.Append([]string{"0", cell})
		table.Render()
		return nil
	}

	t := newPooledTable(syms)
	defer t.releaseIntoPool()
	t.fill(idx)

	n := len(syms)
	header := make([]string, 0, n+1)
	header = append(header, "")
	for _, sym := range syms {
		header = append(header, sym.String())
	}
	table.SetHeader(header)
	for i, row := range t.rows() {
		line := make([]string, n+1)
		line[0] = strconv.Itoa(n - i)
		copy(line[1:], row)
		table.Append(line)
	}
	table.Render()
	return nil
}
