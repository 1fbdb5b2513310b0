package parser

import "github.com/dhamidi/classgraph/java"

type Span = java.Span

type TokenKind int

const (
	TokenEOF TokenKind = iota

	TokenIdent
	TokenAnnotation
	TokenMeta

	// Modifiers
	TokenPublic
	TokenProtected
	TokenPrivate
	TokenStatic
	TokenAbstract
	TokenSynchronized
	TokenTransient
	TokenVolatile
	TokenFinal
	TokenNative
	TokenDefault
	TokenStrictfp
	TokenSealed
	TokenNonSealed

	// Declarations
	TokenPermits
	TokenPackage
	TokenClass
	TokenRecord
	TokenEnum
	TokenImport
	TokenImplements
	TokenInterface
	TokenAtInterface
	TokenThrows
	TokenExtends
	TokenSuper

	// Punctuation
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLT
	TokenGT
	TokenComma
	TokenSemicolon
	TokenDot
	TokenEllipsis
	TokenAmpersand
	TokenStar
	TokenQuestion
	TokenAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:          "EOF",
	TokenIdent:        "identifier",
	TokenAnnotation:   "annotation",
	TokenMeta:         "uml meta",
	TokenPublic:       "public",
	TokenProtected:    "protected",
	TokenPrivate:      "private",
	TokenStatic:       "static",
	TokenAbstract:     "abstract",
	TokenSynchronized: "synchronized",
	TokenTransient:    "transient",
	TokenVolatile:     "volatile",
	TokenFinal:        "final",
	TokenNative:       "native",
	TokenDefault:      "default",
	TokenStrictfp:     "strictfp",
	TokenSealed:       "sealed",
	TokenNonSealed:    "non-sealed",
	TokenPermits:      "permits",
	TokenPackage:      "package",
	TokenClass:        "class",
	TokenRecord:       "record",
	TokenEnum:         "enum",
	TokenImport:       "import",
	TokenImplements:   "implements",
	TokenInterface:    "interface",
	TokenAtInterface:  "@interface",
	TokenThrows:       "throws",
	TokenExtends:      "extends",
	TokenSuper:        "super",
	TokenLBrace:       "{",
	TokenRBrace:       "}",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenLBracket:     "[",
	TokenRBracket:     "]",
	TokenLT:           "<",
	TokenGT:           ">",
	TokenComma:        ",",
	TokenSemicolon:    ";",
	TokenDot:          ".",
	TokenEllipsis:     "...",
	TokenAmpersand:    "&",
	TokenStar:         "*",
	TokenQuestion:     "?",
	TokenAssign:       "=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsModifier reports whether k is one of the declaration modifier keywords.
func (k TokenKind) IsModifier() bool {
	return k >= TokenStatic && k <= TokenNonSealed
}

// IsDeclaration reports whether k opens a class-like declaration.
func (k TokenKind) IsDeclaration() bool {
	switch k {
	case TokenClass, TokenInterface, TokenRecord, TokenEnum, TokenAtInterface:
		return true
	}
	return false
}

type Token struct {
	Kind    TokenKind
	Literal string
	Span    Span
	// Meta is set for TokenMeta only.
	Meta *java.Meta
}

var keywords = map[string]TokenKind{
	"public":       TokenPublic,
	"protected":    TokenProtected,
	"private":      TokenPrivate,
	"static":       TokenStatic,
	"abstract":     TokenAbstract,
	"synchronized": TokenSynchronized,
	"transient":    TokenTransient,
	"volatile":     TokenVolatile,
	"final":        TokenFinal,
	"native":       TokenNative,
	"default":      TokenDefault,
	"strictfp":     TokenStrictfp,
	"sealed":       TokenSealed,
	"permits":      TokenPermits,
	"package":      TokenPackage,
	"class":        TokenClass,
	"record":       TokenRecord,
	"enum":         TokenEnum,
	"import":       TokenImport,
	"implements":   TokenImplements,
	"interface":    TokenInterface,
	"throws":       TokenThrows,
	"extends":      TokenExtends,
	"super":        TokenSuper,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

var modifierTokens = map[TokenKind]java.Modifiers{
	TokenStatic:       java.ModStatic,
	TokenAbstract:     java.ModAbstract,
	TokenSynchronized: java.ModSynchronized,
	TokenTransient:    java.ModTransient,
	TokenVolatile:     java.ModVolatile,
	TokenFinal:        java.ModFinal,
	TokenNative:       java.ModNative,
	TokenDefault:      java.ModDefault,
	TokenStrictfp:     java.ModStrictfp,
	TokenSealed:       java.ModSealed,
	TokenNonSealed:    java.ModNonSealed,
}
