package parser

// TokenSource yields tokens until it returns TokenEOF.
type TokenSource interface {
	NextToken() Token
}

// Lookahead buffers up to two tokens of a TokenSource.
type Lookahead struct {
	src    TokenSource
	buf    [2]Token
	filled int
}

func NewLookahead(src TokenSource) *Lookahead {
	return &Lookahead{src: src}
}

func (b *Lookahead) fill(n int) {
	for b.filled < n {
		b.buf[b.filled] = b.src.NextToken()
		b.filled++
	}
}

// Peek returns the next token without consuming it.
func (b *Lookahead) Peek() Token {
	b.fill(1)
	return b.buf[0]
}

// PeekSecond returns the token after the next one without consuming either.
func (b *Lookahead) PeekSecond() Token {
	b.fill(2)
	return b.buf[1]
}

func (b *Lookahead) PeekBoth() (Token, Token) {
	b.fill(2)
	return b.buf[0], b.buf[1]
}

// Next consumes and returns the next token.
func (b *Lookahead) Next() Token {
	b.fill(1)
	tok := b.buf[0]
	b.buf[0] = b.buf[1]
	b.buf[1] = Token{}
	b.filled--
	return tok
}
