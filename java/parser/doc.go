// Package parser reads the declaration structure of Java source files.
//
// # Overview
//
// Only the declaration level of a compilation unit is modelled: package,
// imports, class-like declarations and their fields, methods, constructors
// and nested declarations. Method bodies, initializer blocks and variable
// initializers are skipped by counting brackets.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Lexer     │────▶│  Lookahead  │────▶│   Parser    │
//	│  (tokens)   │     │ (2 tokens)  │     │ (java.Class)│
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// # Lexer
//
// The lexer never fails. Whitespace, comments, string, character and text
// block literals, numbers and unknown bytes are consumed silently. A block
// comment of the form /*UML_<TAG> <payload>*/ becomes a TokenMeta carrying
// a java.Meta diagram hint.
//
// # Parser
//
//	class, err := parser.Parse(src)
//	if err != nil {
//	    var perr *parser.Error
//	    errors.As(err, &perr)
//	}
//
// The first structural problem aborts the parse. The returned *Error tells
// whether a token was unexpected, a specific token was expected, the input
// ended early, or a type had more than 255 array dimensions. Span is set for
// every error that points at a token.
//
// Interface, record, enum and annotation declarations are always static.
// A declaration sees the generic names of its enclosing declarations only
// when it is not static.
package parser
