package parser

import (
	"testing"
)

type sliceSource struct {
	tokens []Token
	calls  int
}

func (s *sliceSource) NextToken() Token {
	s.calls++
	if len(s.tokens) == 0 {
		return Token{Kind: TokenEOF}
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	return tok
}

func TestLookaheadPeekDoesNotConsume(t *testing.T) {
	src := &sliceSource{tokens: []Token{{Kind: TokenStatic}, {Kind: TokenLBrace}, {Kind: TokenRBrace}}}
	buf := NewLookahead(src)

	if got := buf.Peek().Kind; got != TokenStatic {
		t.Errorf("Peek() = %v, want static", got)
	}
	if got := buf.PeekSecond().Kind; got != TokenLBrace {
		t.Errorf("PeekSecond() = %v, want {", got)
	}
	first, second := buf.PeekBoth()
	if first.Kind != TokenStatic || second.Kind != TokenLBrace {
		t.Errorf("PeekBoth() = %v, %v, want static, {", first.Kind, second.Kind)
	}
	if src.calls != 2 {
		t.Errorf("source read %d times, want 2", src.calls)
	}

	for _, want := range []TokenKind{TokenStatic, TokenLBrace, TokenRBrace, TokenEOF, TokenEOF} {
		if got := buf.Next().Kind; got != want {
			t.Errorf("Next() = %v, want %v", got, want)
		}
	}
}

func TestLookaheadNextThenPeekSecond(t *testing.T) {
	buf := NewLookahead(NewLexer([]byte("a b c")))
	buf.Next()
	first, second := buf.PeekBoth()
	if first.Literal != "b" || second.Literal != "c" {
		t.Errorf("PeekBoth() = %q, %q, want b, c", first.Literal, second.Literal)
	}
}
