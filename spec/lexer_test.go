package spec

import (
	"strings"
	"testing"

	verr "github.com/nihei9/chomsky/error"
)

func TestLexSpec(t *testing.T) {
	cls, err := lexSpec()
	if err != nil {
		t.Fatalf("the lexical specification cannot be compiled: %v", err)
	}
	names := map[string]struct{}{}
	for _, n := range cls.KindNames {
		names[n.String()] = struct{}{}
	}
	for _, k := range lexKinds {
		if _, ok := names[k.kind]; !ok {
			t.Fatalf("kind %v is missing in the compiled specification", k.kind)
		}
	}
}

func TestLexer_Run(t *testing.T) {
	ntTok := func(text string) *token {
		return newTextToken(tokenKindNonTerminal, text, newPosition(1, 1))
	}

	tTok := func(text string) *token {
		return newTextToken(tokenKindTerminal, text, newPosition(1, 1))
	}

	symTok := func(kind tokenKind) *token {
		return newSymbolToken(kind, newPosition(1, 1))
	}

	eofTok := func() *token {
		return newEOFToken(newPosition(1, 1))
	}

	tests := []struct {
		caption string
		src     string
		tokens  []*token
		err     error
	}{
		{
			caption: "the lexer can recognize all kinds of tokens",
			src:     `%start S ::= aB|l,`,
			tokens: []*token{
				symTok(tokenKindKWStart),
				ntTok("S"),
				symTok(tokenKindDerives),
				tTok("a"),
				ntTok("B"),
				symTok(tokenKindOr),
				tTok("l"),
				symTok(tokenKindComma),
				eofTok(),
			},
		},
		{
			caption: "the lexer splits a sequence of letters into single symbols",
			src:     `ABab`,
			tokens: []*token{
				ntTok("A"),
				ntTok("B"),
				tTok("a"),
				tTok("b"),
				eofTok(),
			},
		},
		{
			caption: "the lexer can recognize newlines and combine consecutive newlines into one",
			src:     "\u000A | \u000D\u000A | \u000A\u000A \u000D\u000A\u000D\u000A",
			tokens: []*token{
				symTok(tokenKindNewline),
				symTok(tokenKindOr),
				symTok(tokenKindNewline),
				symTok(tokenKindOr),
				symTok(tokenKindNewline),
				eofTok(),
			},
		},
		{
			caption: "the lexer ignores line comments",
			src: `
# This is the first comment.
S
# This is the second comment.
# This is the third comment.
::= a # This is the fourth comment.
`,
			tokens: []*token{
				symTok(tokenKindNewline),
				ntTok("S"),
				symTok(tokenKindNewline),
				symTok(tokenKindDerives),
				tTok("a"),
				symTok(tokenKindNewline),
				eofTok(),
			},
		},
		{
			caption: "the lexer returns an invalid token for a character outside the format",
			src:     `S ::= 1`,
			tokens: []*token{
				ntTok("S"),
				symTok(tokenKindDerives),
				newInvalidToken("1", newPosition(1, 1)),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			l, err := newLexer(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			n := 0
			for {
				var tok *token
				tok, err = l.next()
				if err != nil {
					break
				}
				if n >= len(tt.tokens) {
					t.Fatalf("too many tokens; want: %v, got: %+v", len(tt.tokens), tok)
				}
				testToken(t, tok, tt.tokens[n])
				n++
				if tok.kind == tokenKindEOF || tok.kind == tokenKindInvalid {
					break
				}
			}
			if tt.err != nil {
				synErr, ok := err.(*verr.SpecError)
				if !ok {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.err, err)
				}
				if tt.err != synErr.Cause {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.err, synErr.Cause)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.err, err)
				}
				if n != len(tt.tokens) {
					t.Fatalf("too few tokens; want: %v, got: %v", len(tt.tokens), n)
				}
			}
		})
	}
}

func TestLexer_Position(t *testing.T) {
	l, err := newLexer(strings.NewReader("S ::= a\n  B"))
	if err != nil {
		t.Fatal(err)
	}
	expected := []Position{
		newPosition(1, 1),
		newPosition(1, 3),
		newPosition(1, 7),
		newPosition(1, 8),
		newPosition(2, 3),
	}
	for _, pos := range expected {
		tok, err := l.next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.pos != pos {
			t.Fatalf("unexpected position of %+v; want: %+v, got: %+v", tok, pos, tok.pos)
		}
	}
}

func testToken(t *testing.T, tok, expected *token) {
	t.Helper()
	if tok.kind != expected.kind || tok.text != expected.text {
		t.Fatalf("unexpected token; want: %+v, got: %+v", expected, tok)
	}
}
