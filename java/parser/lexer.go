package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/classgraph/java"
)

const metaPrefix = "/*UML_"

// Lexer turns source text into declaration-level tokens. Whitespace,
// comments, literals and bytes it does not recognize are consumed without
// producing a token, so NextToken never fails.
type Lexer struct {
	input []byte
	pos   int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) hasPrefix(prefix string) bool {
	return strings.HasPrefix(string(l.input[l.pos:min(len(l.input), l.pos+len(prefix))]), prefix)
}

// NextToken returns the next token. Once the input is exhausted it keeps
// returning TokenEOF.
func (l *Lexer) NextToken() Token {
	for l.pos < len(l.input) {
		start := l.pos
		ch := l.peek()

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f':
			l.pos++
			continue
		case ch == '/' && l.peekN(1) == '/':
			l.skipLineComment()
			continue
		case ch == '/' && l.peekN(1) == '*':
			if l.hasPrefix(metaPrefix) {
				if tok, ok := l.scanMeta(start); ok {
					return tok
				}
			}
			l.skipBlockComment()
			continue
		case ch == '"':
			if l.peekN(1) == '"' && l.peekN(2) == '"' {
				l.skipTextBlock()
			} else {
				l.skipQuoted('"')
			}
			continue
		case ch == '\'':
			l.skipQuoted('\'')
			continue
		case isDigit(ch):
			l.skipNumber()
			continue
		case ch == '@':
			if tok, ok := l.scanAnnotation(start); ok {
				return tok
			}
			l.pos++
			continue
		case l.atIdentStart():
			return l.scanIdentOrKeyword(start)
		}

		if tok, ok := l.scanPunctuation(start); ok {
			return tok
		}
		l.advanceRune()
	}
	return Token{Kind: TokenEOF, Span: Span{Start: len(l.input), End: len(l.input)}}
}

// Tokens drains the lexer.
func (l *Lexer) Tokens() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) advanceRune() {
	_, size := utf8.DecodeRune(l.input[l.pos:])
	if size < 1 {
		size = 1
	}
	l.pos += size
}

func (l *Lexer) skipLineComment() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
}

func (l *Lexer) skipBlockComment() {
	l.pos += 2
	for l.pos < len(l.input) {
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.pos += 2
			return
		}
		l.pos++
	}
}

func (l *Lexer) skipQuoted(quote byte) {
	l.pos++
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch ch {
		case '\\':
			l.pos += 2
			continue
		case quote:
			l.pos++
			return
		case '\n':
			// unterminated literal ends at the line break
			return
		}
		l.pos++
	}
	l.pos = len(l.input)
}

func (l *Lexer) skipTextBlock() {
	l.pos += 3
	for l.pos < len(l.input) {
		if l.peek() == '\\' {
			l.pos += 2
			continue
		}
		if l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"' {
			l.pos += 3
			return
		}
		l.pos++
	}
	l.pos = len(l.input)
}

func (l *Lexer) skipNumber() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if isDigit(ch) || isJavaLetter(ch) || ch == '.' && isDigit(l.peekN(1)) {
			l.pos++
			continue
		}
		if (ch == '+' || ch == '-') && l.pos > 0 && (l.input[l.pos-1] == 'e' || l.input[l.pos-1] == 'E') {
			l.pos++
			continue
		}
		return
	}
}

func (l *Lexer) scanMeta(start int) (Token, bool) {
	end := strings.Index(string(l.input[start+len(metaPrefix):]), "*/")
	if end < 0 {
		return Token{}, false
	}
	bodyStart := start + len(metaPrefix)
	bodyEnd := bodyStart + end
	l.pos = bodyEnd + 2
	body := string(l.input[bodyStart:bodyEnd])
	meta := ParseMeta(body)
	return Token{
		Kind:    TokenMeta,
		Literal: string(l.input[start:l.pos]),
		Span:    Span{Start: start, End: l.pos},
		Meta:    &meta,
	}, true
}

var metaTags = map[string]java.MetaKind{
	"HIDE":                  java.MetaHide,
	"INNER_CLASS_LINE_NOTE": java.MetaInnerClassNote,
	"INNER_CLASS_LINE_P_C":  java.MetaInnerClassLinePC,
	"RAW_OUTER":             java.MetaRawOuter,
	"LINE":                  java.MetaLine,
}

// ParseMeta decodes the body of a /*UML_<TAG> <payload>*/ comment, that is
// everything between the UML_ prefix and the closing */.
func ParseMeta(body string) java.Meta {
	tag, payload, _ := strings.Cut(body, " ")
	kind, ok := metaTags[tag]
	if !ok {
		return java.Meta{Kind: java.MetaInvalid, Text: body}
	}
	return java.Meta{Kind: kind, Text: payload}
}

func (l *Lexer) scanAnnotation(start int) (Token, bool) {
	l.pos++
	for l.peek() == ' ' || l.peek() == '\t' {
		l.pos++
	}
	if !l.atIdentStart() {
		l.pos = start
		return Token{}, false
	}
	nameStart := l.pos
	l.skipIdent()
	if string(l.input[nameStart:l.pos]) == "interface" {
		return Token{
			Kind:    TokenAtInterface,
			Literal: string(l.input[start:l.pos]),
			Span:    Span{Start: start, End: l.pos},
		}, true
	}
	// qualified annotation names such as @java.lang.Override
	for l.peek() == '.' && isJavaLetter(l.peekN(1)) {
		l.pos++
		l.skipIdent()
	}
	return Token{
		Kind:    TokenAnnotation,
		Literal: string(l.input[nameStart:l.pos]),
		Span:    Span{Start: start, End: l.pos},
	}, true
}

func (l *Lexer) atIdentStart() bool {
	ch := l.peek()
	if ch < utf8.RuneSelf {
		return isJavaLetter(ch)
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return unicode.IsLetter(r)
}

func (l *Lexer) skipIdent() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch < utf8.RuneSelf {
			if !isJavaLetterOrDigit(ch) {
				return
			}
			l.pos++
			continue
		}
		r, size := utf8.DecodeRune(l.input[l.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return
		}
		l.pos += size
	}
}

func (l *Lexer) scanIdentOrKeyword(start int) Token {
	l.skipIdent()
	literal := string(l.input[start:l.pos])

	if literal == "non" && l.hasPrefix("-sealed") {
		after := l.pos + len("-sealed")
		if after >= len(l.input) || !isJavaLetterOrDigit(l.input[after]) {
			l.pos = after
			return Token{
				Kind:    TokenNonSealed,
				Literal: "non-sealed",
				Span:    Span{Start: start, End: l.pos},
			}
		}
	}

	return Token{
		Kind:    LookupKeyword(literal),
		Literal: literal,
		Span:    Span{Start: start, End: l.pos},
	}
}

var punctuation = map[byte]TokenKind{
	'{': TokenLBrace,
	'}': TokenRBrace,
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	'<': TokenLT,
	'>': TokenGT,
	',': TokenComma,
	';': TokenSemicolon,
	'&': TokenAmpersand,
	'*': TokenStar,
	'?': TokenQuestion,
	'=': TokenAssign,
}

func (l *Lexer) scanPunctuation(start int) (Token, bool) {
	ch := l.peek()
	if ch == '.' {
		if l.peekN(1) == '.' && l.peekN(2) == '.' {
			l.pos += 3
			return l.token(TokenEllipsis, start), true
		}
		l.pos++
		return l.token(TokenDot, start), true
	}
	kind, ok := punctuation[ch]
	if !ok {
		return Token{}, false
	}
	l.pos++
	return l.token(kind, start), true
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	return Token{
		Kind:    kind,
		Literal: string(l.input[start:l.pos]),
		Span:    Span{Start: start, End: l.pos},
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isJavaLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isJavaLetterOrDigit(ch byte) bool {
	return isJavaLetter(ch) || isDigit(ch)
}
