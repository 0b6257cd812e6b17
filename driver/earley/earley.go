// Package earley decides membership with an Earley parser. It works on any context-free grammar and is used
// to cross-check the CYK driver, which needs the grammar in Chomsky normal form.
package earley

import (
	"fmt"

	verr "github.com/nihei9/chomsky/error"
	"github.com/nihei9/chomsky/grammar"
	"github.com/npillmayer/gorgo/lr"
	"github.com/npillmayer/gorgo/lr/earley"
	"github.com/npillmayer/gorgo/lr/scanner"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

type RecognizerError struct {
	message string
}

func newRecognizerError(message string) *RecognizerError {
	return &RecognizerError{
		message: message,
	}
}

func (e *RecognizerError) Error() string {
	return e.message
}

var (
	recErrNoStartSymbol      = newRecognizerError("the start symbol is not set")
	recErrUndeclaredTerminal = newRecognizerError("the word contains a symbol that is not a terminal of the grammar")
	recErrInvalidGrammar     = newRecognizerError("the grammar cannot be analyzed")
)

func newError(op string, cause error, detail string) *verr.Error {
	return &verr.Error{
		Op:     op,
		Cause:  cause,
		Detail: detail,
	}
}

// Recognizer holds the analysis of a grammar and answers membership queries against it.
type Recognizer struct {
	analysis  *lr.LRAnalysis
	terms     map[grammar.Symbol]struct{}
	used      map[grammar.Symbol]struct{}
	nullable  bool
	derivable bool
}

// NewRecognizer analyzes a grammar. λ-productions are removed first, because the empty word is answered
// without running the parser. Productions that mention a non-terminal without productions can never take
// part in a derivation and are left out.
func NewRecognizer(g *grammar.Grammar) (*Recognizer, error) {
	if _, err := g.StartSymbol(); err != nil {
		return nil, newError("earley", recErrNoStartSymbol, "")
	}

	lg, _ := grammar.RemoveLambdaProductions(g)
	start, _ := lg.StartSymbol()

	r := &Recognizer{
		terms: map[grammar.Symbol]struct{}{},
		used:  map[grammar.Symbol]struct{}{},
	}
	for _, t := range lg.Terminals() {
		r.terms[t] = struct{}{}
	}
	for _, prod := range lg.ProductionsOf(start) {
		if prod.IsLambda() {
			r.nullable = true
		}
	}

	prods := usableProductions(lg)
	if len(prods[start]) == 0 {
		return r, nil
	}

	b := lr.NewGrammarBuilder(fmt.Sprintf("%v", start))
	r.addRules(b, start, prods[start])
	for _, lhs := range lg.NonTerminals() {
		if lhs == start {
			continue
		}
		r.addRules(b, lhs, prods[lhs])
	}
	gg, err := b.Grammar()
	if err != nil {
		return nil, newError("earley", recErrInvalidGrammar, err.Error())
	}
	r.analysis = lr.Analysis(gg)
	r.derivable = true
	return r, nil
}

// usableProductions drops λ-productions and, until nothing changes, the productions mentioning a
// non-terminal that is left without productions.
func usableProductions(g *grammar.Grammar) map[grammar.Symbol][]*grammar.Production {
	prods := map[grammar.Symbol][]*grammar.Production{}
	for _, prod := range g.AllProductions() {
		if prod.IsLambda() {
			continue
		}
		prods[prod.LHS] = append(prods[prod.LHS], prod)
	}
	for {
		changed := false
		for lhs, ps := range prods {
			kept := ps[:0]
			for _, prod := range ps {
				usable := true
				for _, sym := range prod.RHS {
					if sym.IsNonTerminal() && len(prods[sym]) == 0 {
						usable = false
						break
					}
				}
				if usable {
					kept = append(kept, prod)
				}
			}
			if len(kept) != len(ps) {
				changed = true
			}
			if len(kept) == 0 {
				delete(prods, lhs)
			} else {
				prods[lhs] = kept
			}
		}
		if !changed {
			return prods
		}
	}
}

// addRules adds the productions of a non-terminal. The builder takes the first left-hand side it sees
// as the start symbol.
func (r *Recognizer) addRules(b *lr.GrammarBuilder, lhs grammar.Symbol, prods []*grammar.Production) {
	for _, prod := range prods {
		rb := b.LHS(lhs.String())
		for _, sym := range prod.RHS {
			if sym.IsNonTerminal() {
				rb = rb.N(sym.String())
			} else {
				rb = rb.T(tk(sym))
				r.used[sym] = struct{}{}
			}
		}
		rb.End()
	}
}

func tk(sym grammar.Symbol) (string, int) {
	return ":" + sym.String(), int(sym)
}

// Derives reports whether the grammar derives the word.
func (r *Recognizer) Derives(word string) (bool, error) {
	for _, c := range word {
		if _, ok := r.terms[grammar.Symbol(c)]; !ok {
			return false, newError("earley", recErrUndeclaredTerminal, fmt.Sprintf("%q in %q", c, word))
		}
	}
	if word == "" {
		return r.nullable, nil
	}
	if !r.derivable {
		return false, nil
	}
	// The parser knows only the terminals of its productions.
	for _, c := range word {
		if _, ok := r.used[grammar.Symbol(c)]; !ok {
			return false, nil
		}
	}

	p := earley.NewParser(r.analysis, earley.GenerateTree(false))
	accept, err := p.Parse(newRuneScanner(word), nil)
	tracer().P("earley", word).Debugf("accept: %v", accept)
	if err != nil {
		// Every token is a terminal of the analyzed grammar, so the parser fails only when it runs out of
		// items, that is, when it rejects the word.
		tracer().P("earley", word).Debugf("rejected: %v", err)
		return false, nil
	}
	return accept, nil
}

// Derives is a one-shot shorthand for NewRecognizer followed by Recognizer.Derives.
func Derives(g *grammar.Grammar, word string) (bool, error) {
	r, err := NewRecognizer(g)
	if err != nil {
		return false, err
	}
	return r.Derives(word)
}

// runeScanner implements the scanner.Tokenizer interface. Every rune of the word is a token whose value is
// the rune itself.
type runeScanner struct {
	word []rune
	pos  uint64
}

func newRuneScanner(word string) *runeScanner {
	return &runeScanner{
		word: []rune(word),
	}
}

func (sc *runeScanner) NextToken(expected []int) (int, interface{}, uint64, uint64) {
	if sc.pos >= uint64(len(sc.word)) {
		return scanner.EOF, "", sc.pos, 0
	}
	r := sc.word[sc.pos]
	pos := sc.pos
	sc.pos++
	return int(r), string(r), pos, 1
}

// SetErrorHandler is part of the scanner.Tokenizer interface. A word is tokenized rune by rune, so there
// is nothing to repair.
func (sc *runeScanner) SetErrorHandler(h func(error)) {
}
