package grammar

import (
	"unicode"

	"golang.org/x/exp/slices"
)

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
	symbolKindLambda      = symbolKind("lambda")
	symbolKindInvalid     = symbolKind("invalid")
)

func (t symbolKind) String() string {
	return string(t)
}

// Symbol is a single grammar symbol. Upper-case letters are non-terminals and lower-case letters
// are terminals, so the two alphabets never overlap.
type Symbol rune

// Lambda denotes the empty string. It is a lower-case letter but can never be declared as a terminal.
const Lambda = Symbol('l')

const symbolNil = Symbol(0)

func (s Symbol) String() string {
	return string(s)
}

func (s Symbol) kind() symbolKind {
	switch {
	case s == Lambda:
		return symbolKindLambda
	case !unicode.IsLetter(rune(s)):
		return symbolKindInvalid
	case unicode.IsUpper(rune(s)):
		return symbolKindNonTerminal
	case unicode.IsLower(rune(s)):
		return symbolKindTerminal
	}
	return symbolKindInvalid
}

func (s Symbol) IsNonTerminal() bool {
	return s.kind() == symbolKindNonTerminal
}

func (s Symbol) IsTerminal() bool {
	return s.kind() == symbolKindTerminal
}

func (s Symbol) IsLambda() bool {
	return s == Lambda
}

type symbolSet map[Symbol]struct{}

func (s symbolSet) add(sym Symbol) bool {
	if _, ok := s[sym]; ok {
		return false
	}
	s[sym] = struct{}{}
	return true
}

func (s symbolSet) has(sym Symbol) bool {
	_, ok := s[sym]
	return ok
}

func (s symbolSet) clone() symbolSet {
	c := make(symbolSet, len(s))
	for sym := range s {
		c[sym] = struct{}{}
	}
	return c
}

func (s symbolSet) sorted() []Symbol {
	syms := make([]Symbol, 0, len(s))
	for sym := range s {
		syms = append(syms, sym)
	}
	slices.Sort(syms)
	return syms
}

// freshNonTerminal returns the smallest upper-case letter that is not in use. ASCII letters come
// first, then the remaining upper-case letters of the BMP.
func freshNonTerminal(inUse symbolSet) (Symbol, bool) {
	for r := 'A'; r <= 'Z'; r++ {
		if !inUse.has(Symbol(r)) {
			return Symbol(r), true
		}
	}
	for r := rune(0x80); r <= 0xffff; r++ {
		sym := Symbol(r)
		if sym.IsNonTerminal() && !inUse.has(sym) {
			return sym, true
		}
	}
	return symbolNil, false
}
