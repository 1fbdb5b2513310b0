package parser

import (
	"fmt"
	"strings"
)

type ErrorKind int

const (
	// ErrUnexpectedToken: a token matched no alternative at this point.
	ErrUnexpectedToken ErrorKind = iota
	// ErrExpectedToken: a specific token category was required.
	ErrExpectedToken
	// ErrExpectedTokenEOF: a token was required but the input ended.
	ErrExpectedTokenEOF
	// ErrArrayDegreeTooBig: more than 255 array dimensions on one type.
	ErrArrayDegreeTooBig
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrExpectedToken:
		return "expected token"
	case ErrExpectedTokenEOF:
		return "unexpected end of input"
	case ErrArrayDegreeTooBig:
		return "array degree too big"
	}
	return "unknown error"
}

// Error is a structural failure. Parsing of the file stops at the first one.
// Span is nil when the failure happened at end of input.
type Error struct {
	Kind     ErrorKind
	Message  string
	Expected []TokenKind
	Got      *Token
	Span     *Span
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, kind := range e.Expected {
			names[i] = kind.String()
		}
		fmt.Fprintf(&sb, ": expected %s", strings.Join(names, " or "))
	}
	if e.Got != nil {
		fmt.Fprintf(&sb, ", got %q", e.Got.Literal)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Span != nil {
		fmt.Fprintf(&sb, " at %d", e.Span.Start)
	}
	return sb.String()
}

func unexpected(tok Token, message string) *Error {
	if tok.Kind == TokenEOF {
		return &Error{Kind: ErrExpectedTokenEOF, Message: message}
	}
	span := tok.Span
	return &Error{Kind: ErrUnexpectedToken, Message: message, Got: &tok, Span: &span}
}

func expected(tok Token, kinds ...TokenKind) *Error {
	if tok.Kind == TokenEOF {
		return &Error{Kind: ErrExpectedTokenEOF, Expected: kinds}
	}
	span := tok.Span
	return &Error{Kind: ErrExpectedToken, Expected: kinds, Got: &tok, Span: &span}
}
