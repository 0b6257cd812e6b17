package spec

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	verr "github.com/nihei9/chomsky/error"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindNonTerminal = tokenKind("non-terminal")
	tokenKindTerminal    = tokenKind("terminal")
	tokenKindDerives     = tokenKind("::=")
	tokenKindOr          = tokenKind("|")
	tokenKindComma       = tokenKind(",")
	tokenKindKWStart     = tokenKind("%start")
	tokenKindNewline     = tokenKind("newline")
	tokenKindEOF         = tokenKind("eof")
	tokenKindInvalid     = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newTextToken(kind tokenKind, text string, pos Position) *token {
	return &token{
		kind: kind,
		text: text,
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

var lexKinds = []struct {
	kind    string
	pattern string
}{
	{"white_space", `[\u{0009}\u{000D}\u{0020}]+`},
	{"newline", `\u{000A}`},
	{"line_comment", `#[^\u{000A}]*`},
	{"kw_start", mlspec.EscapePattern("%start")},
	{"nonterminal", `[A-Z]`},
	{"terminal", `[a-z]`},
	{"derives", mlspec.EscapePattern("::=")},
	{"or", mlspec.EscapePattern("|")},
	{"comma", mlspec.EscapePattern(",")},
}

var (
	compiledLexSpec    *mlspec.CompiledLexSpec
	compiledLexSpecErr error
	compileLexSpecOnce sync.Once
)

// lexSpec compiles the lexical specification of the grammar file format on first use.
func lexSpec() (*mlspec.CompiledLexSpec, error) {
	compileLexSpecOnce.Do(func() {
		entries := make([]*mlspec.LexEntry, 0, len(lexKinds))
		for _, k := range lexKinds {
			entries = append(entries, &mlspec.LexEntry{
				Kind:    mlspec.LexKindName(k.kind),
				Pattern: mlspec.LexPattern(k.pattern),
			})
		}
		cls, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
			Name:    "chomsky",
			Entries: entries,
		}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				fmt.Fprintf(&b, "%v: %v", cErrs[0].Kind, cErrs[0].Cause)
				for _, cErr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n%v: %v", cErr.Kind, cErr.Cause)
				}
				compiledLexSpecErr = errors.New(b.String())
				return
			}
			compiledLexSpecErr = err
			return
		}
		compiledLexSpec = cls
	})
	return compiledLexSpec, compiledLexSpecErr
}

type lexer struct {
	s   *mlspec.CompiledLexSpec
	d   *mldriver.Lexer
	buf *token
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := lexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

// next returns the next token. Consecutive newlines collapse into one newline token.
func (l *lexer) next() (*token, error) {
	if l.buf != nil {
		tok := l.buf
		l.buf = nil
		return tok, nil
	}

	var newline *token
	for {
		tok, err := l.lexAndSkipWSs()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenKindNewline {
			newline = tok
			continue
		}

		if newline != nil {
			l.buf = tok
			return newline, nil
		}
		return tok, nil
	}
}

func (l *lexer) lexAndSkipWSs() (*token, error) {
	var tok *mldriver.Token
	var kind string
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
		}
		if tok.EOF {
			return newEOFToken(newPosition(tok.Row+1, tok.Col+1)), nil
		}
		kind = l.s.KindNames[tok.KindID].String()
		switch kind {
		case "white_space":
			continue
		case "line_comment":
			continue
		}

		break
	}

	pos := newPosition(tok.Row+1, tok.Col+1)
	switch kind {
	case "newline":
		return newSymbolToken(tokenKindNewline, pos), nil
	case "kw_start":
		return newSymbolToken(tokenKindKWStart, pos), nil
	case "nonterminal":
		return newTextToken(tokenKindNonTerminal, string(tok.Lexeme), pos), nil
	case "terminal":
		return newTextToken(tokenKindTerminal, string(tok.Lexeme), pos), nil
	case "derives":
		return newSymbolToken(tokenKindDerives, pos), nil
	case "or":
		return newSymbolToken(tokenKindOr, pos), nil
	case "comma":
		return newSymbolToken(tokenKindComma, pos), nil
	default:
		return nil, &verr.SpecError{
			Cause:  synErrInvalidToken,
			Detail: string(tok.Lexeme),
			Row:    pos.Row,
			Col:    pos.Col,
		}
	}
}
