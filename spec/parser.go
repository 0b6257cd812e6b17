package spec

import (
	"io"

	verr "github.com/nihei9/chomsky/error"
)

// RootNode is a parsed grammar file. Start is empty when the file has no %start directive.
type RootNode struct {
	Start       string
	StartPos    Position
	Productions []*ProductionNode
}

type ProductionNode struct {
	LHS string
	RHS []*AlternativeNode
	Pos Position
}

type AlternativeNode struct {
	Elements []*ElementNode
	Pos      Position
}

// ElementNode is a single symbol of an alternative. Symbol is one letter; an upper-case letter
// is a non-terminal and a lower-case letter is a terminal or the lambda symbol.
type ElementNode struct {
	Symbol string
	Pos    Position
}

func raiseSyntaxError(pos Position, synErr *SyntaxError) {
	panic(&verr.SpecError{
		Cause: synErr,
		Row:   pos.Row,
		Col:   pos.Col,
	})
}

func Parse(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			retErr = err.(error)
			return
		}
	}()
	return p.parseRoot(), nil
}

func (p *parser) parseRoot() *RootNode {
	root := &RootNode{}
	p.consume(tokenKindNewline)
	for {
		if p.consume(tokenKindEOF) {
			break
		}
		if p.consume(tokenKindKWStart) {
			p.parseStart(root)
			continue
		}
		root.Productions = append(root.Productions, p.parseProduction())
		if p.consume(tokenKindComma) {
			p.consume(tokenKindNewline)
			continue
		}
		if p.consume(tokenKindNewline) {
			continue
		}
		if p.consume(tokenKindEOF) {
			break
		}
		raiseSyntaxError(p.peekedPos(), synErrNoDelimiter)
	}
	if len(root.Productions) == 0 {
		raiseSyntaxError(p.lastTok.pos, synErrNoProduction)
	}
	return root
}

func (p *parser) parseStart(root *RootNode) {
	pos := p.lastTok.pos
	if root.Start != "" {
		raiseSyntaxError(pos, synErrDuplicateStartDir)
	}
	if !p.consume(tokenKindNonTerminal) {
		raiseSyntaxError(p.peekedPos(), synErrStartNoSymbol)
	}
	root.Start = p.lastTok.text
	root.StartPos = pos
	if p.consume(tokenKindNewline) {
		return
	}
	if p.consume(tokenKindEOF) {
		// Leave EOF to parseRoot.
		p.peekedTok = p.lastTok
		return
	}
	raiseSyntaxError(p.peekedPos(), synErrStartNoNewline)
}

func (p *parser) parseProduction() *ProductionNode {
	if !p.consume(tokenKindNonTerminal) {
		raiseSyntaxError(p.peekedPos(), synErrNoProductionName)
	}
	lhs := p.lastTok
	if !p.consume(tokenKindDerives) {
		raiseSyntaxError(p.peekedPos(), synErrNoDerives)
	}
	rhs := []*AlternativeNode{p.parseAlternative()}
	for p.consume(tokenKindOr) {
		rhs = append(rhs, p.parseAlternative())
	}
	return &ProductionNode{
		LHS: lhs.text,
		RHS: rhs,
		Pos: lhs.pos,
	}
}

func (p *parser) parseAlternative() *AlternativeNode {
	var elems []*ElementNode
	for {
		elem := p.parseElement()
		if elem == nil {
			break
		}
		elems = append(elems, elem)
	}
	if len(elems) == 0 {
		raiseSyntaxError(p.peekedPos(), synErrEmptyAlternative)
	}
	return &AlternativeNode{
		Elements: elems,
		Pos:      elems[0].Pos,
	}
}

func (p *parser) parseElement() *ElementNode {
	switch {
	case p.consume(tokenKindNonTerminal):
	case p.consume(tokenKindTerminal):
	default:
		return nil
	}
	return &ElementNode{
		Symbol: p.lastTok.text,
		Pos:    p.lastTok.pos,
	}
}

// peekedPos returns the position of the token that the last failed consume put back.
func (p *parser) peekedPos() Position {
	if p.peekedTok != nil {
		return p.peekedTok.pos
	}
	return Position{}
}

func (p *parser) consume(expected tokenKind) bool {
	var tok *token
	var err error
	if p.peekedTok != nil {
		tok = p.peekedTok
		p.peekedTok = nil
	} else {
		tok, err = p.lex.next()
		if err != nil {
			panic(err)
		}
	}
	p.lastTok = tok
	if tok.kind == tokenKindInvalid {
		raiseSyntaxError(tok.pos, synErrInvalidToken)
	}
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok

	return false
}
