package parser

import (
	"testing"
)

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenIdent, "identifier"},
		{TokenClass, "class"},
		{TokenNonSealed, "non-sealed"},
		{TokenAtInterface, "@interface"},
		{TokenLBrace, "{"},
		{TokenEllipsis, "..."},
		{TokenAssign, "="},
		{TokenKind(9999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenKind
	}{
		{"class", TokenClass},
		{"record", TokenRecord},
		{"permits", TokenPermits},
		{"super", TokenSuper},
		{"int", TokenIdent},
		{"void", TokenIdent},
		{"Class", TokenIdent},
		{"classes", TokenIdent},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupKeyword(tt.ident); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestTokenKindIsModifier(t *testing.T) {
	for kind := range modifierTokens {
		if !kind.IsModifier() {
			t.Errorf("%v.IsModifier() = false, want true", kind)
		}
	}
	for _, kind := range []TokenKind{TokenPublic, TokenClass, TokenIdent, TokenPermits} {
		if kind.IsModifier() {
			t.Errorf("%v.IsModifier() = true, want false", kind)
		}
	}
}
