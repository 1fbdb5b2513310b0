package parser

import (
	"math"

	"github.com/dhamidi/classgraph/java"
)

// Parser is a recursive-descent parser for the declaration level of a
// compilation unit. Method and initializer bodies are skipped by balanced
// brace counting. There is no error recovery: the first failure aborts.
type Parser struct {
	tokens  *Lookahead
	lastEnd int
}

func NewParser(src TokenSource) *Parser {
	return &Parser{tokens: NewLookahead(src)}
}

// Parse parses one compilation unit and returns its root declaration.
// The returned error is always a *Error.
func Parse(src []byte) (*java.Class, error) {
	return NewParser(NewLexer(src)).Parse()
}

func (p *Parser) Parse() (*java.Class, error) {
	class, err := p.parseCompilationUnit()
	if err != nil {
		return nil, err
	}
	return class, nil
}

func (p *Parser) peek() Token {
	return p.tokens.Peek()
}

func (p *Parser) peekSecond() Token {
	return p.tokens.PeekSecond()
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() Token {
	tok := p.tokens.Next()
	if tok.Kind != TokenEOF {
		p.lastEnd = tok.Span.End
	}
	return tok
}

func (p *Parser) expect(kinds ...TokenKind) (Token, *Error) {
	tok := p.peek()
	for _, kind := range kinds {
		if tok.Kind == kind {
			return p.advance(), nil
		}
	}
	return tok, expected(tok, kinds...)
}

// scope carries what a declaration inherits from its surroundings.
type scope struct {
	pkg     java.Path
	prefix  java.Path
	parent  java.Path
	imports *java.Imports
	names   java.NameSet
}

// header is the shared prefix of every declaration and member: diagram
// hints, annotations, visibility and modifiers.
type header struct {
	start       int
	meta        []java.Meta
	annotations []string
	visibility  java.Visibility
	modifiers   java.Modifiers
}

func (p *Parser) parseCompilationUnit() (*java.Class, *Error) {
	if err := p.skipEmpty(); err != nil {
		return nil, err
	}

	var pkg java.Path
	if p.check(TokenPackage) {
		p.advance()
		path, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		pkg = path
	}

	imports := java.NewImports()
	if err := p.skipEmpty(); err != nil {
		return nil, err
	}
	for p.check(TokenImport) {
		p.advance()
		static := false
		if p.check(TokenStatic) {
			p.advance()
			static = true
		}
		path, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		imports.Add(java.Import{Path: path, Static: static})
		if err := p.skipEmpty(); err != nil {
			return nil, err
		}
	}

	h, err := p.parseHeader()
	if err != nil {
		return nil, err
	}
	return p.parseClass(scope{pkg: pkg, prefix: pkg, imports: imports}, h)
}

func (p *Parser) parseHeader() (header, *Error) {
	h := header{start: p.peek().Span.Start, visibility: java.VisibilityPackage}
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenAnnotation:
			p.advance()
			h.annotations = append(h.annotations, tok.Literal)
			if err := p.skipBalanced(TokenLParen, TokenRParen); err != nil {
				return h, err
			}
		case TokenMeta:
			p.advance()
			h.meta = append(h.meta, *tok.Meta)
		case TokenPublic:
			p.advance()
			h.visibility = java.VisibilityPublic
		case TokenProtected:
			p.advance()
			h.visibility = java.VisibilityProtected
		case TokenPrivate:
			p.advance()
			h.visibility = java.VisibilityPrivate
		default:
			mod, ok := modifierTokens[tok.Kind]
			if !ok {
				return h, nil
			}
			p.advance()
			h.modifiers.Set(mod)
		}
	}
}

var declarationKinds = map[TokenKind]java.ClassKind{
	TokenClass:       java.ClassKindClass,
	TokenInterface:   java.ClassKindInterface,
	TokenRecord:      java.ClassKindRecord,
	TokenEnum:        java.ClassKindEnum,
	TokenAtInterface: java.ClassKindAnnotation,
}

func (p *Parser) parseClass(s scope, h header) (*java.Class, *Error) {
	tok := p.peek()
	kind, ok := declarationKinds[tok.Kind]
	if !ok {
		return nil, expected(tok, TokenClass, TokenInterface, TokenRecord, TokenEnum)
	}
	p.advance()
	if kind != java.ClassKindClass {
		h.modifiers.Set(java.ModStatic)
	}

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}

	class := &java.Class{
		Package:     s.pkg,
		Imports:     s.imports,
		Meta:        h.meta,
		Annotations: h.annotations,
		Visibility:  h.visibility,
		Modifiers:   h.modifiers,
		Kind:        kind,
		Name:        name.Literal,
		Path:        s.prefix.Push(name.Literal),
		Parent:      s.parent,
		NameSpan:    name.Span,
	}

	class.Generics, err = p.parseGenericDefinition()
	if err != nil {
		return nil, err
	}
	class.GenericNames = visibleNames(s.names, class.Modifiers, class.Generics)

	if kind == java.ClassKindRecord {
		class.Fields, err = p.parseRecordComponents()
		if err != nil {
			return nil, err
		}
	}

	if err := p.parseClauses(class); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	if kind == java.ClassKindEnum {
		if err := p.parseEnumConstants(class); err != nil {
			return nil, err
		}
	}

	inner := scope{
		pkg:     s.pkg,
		prefix:  class.Path,
		parent:  class.Path,
		imports: s.imports,
		names:   class.GenericNames,
	}
	for {
		if err := p.skipEmpty(); err != nil {
			return nil, err
		}
		if p.check(TokenRBrace) {
			end := p.advance()
			class.Span = Span{Start: h.start, End: end.Span.End}
			return class, nil
		}
		if err := p.parseMember(class, inner); err != nil {
			return nil, err
		}
	}
}

// visibleNames computes the generic names visible inside a declaration.
// Static declarations do not see the names of their enclosing scope.
func visibleNames(enclosing java.NameSet, modifiers java.Modifiers, generics []java.GenericParameter) java.NameSet {
	if modifiers.IsStatic() {
		enclosing = nil
	}
	own := java.GenericParameterNames(generics)
	if len(own) == 0 {
		return enclosing
	}
	return enclosing.Extend(own...)
}

func (p *Parser) parseClauses(class *java.Class) *Error {
	for {
		var target *[]java.Type
		switch p.peek().Kind {
		case TokenExtends:
			target = &class.Extends
		case TokenImplements:
			target = &class.Implements
		case TokenPermits:
			target = &class.Permits
		default:
			return nil
		}
		p.advance()
		types, err := p.parseTypeList()
		if err != nil {
			return err
		}
		*target = types
	}
}

func (p *Parser) parseRecordComponents() ([]java.Field, *Error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	var fields []java.Field
	if !p.check(TokenRParen) {
		for {
			h, err := p.parseHeader()
			if err != nil {
				return nil, err
			}
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if p.check(TokenEllipsis) {
				ellipsis := p.advance()
				if t.ArrayDepth == math.MaxUint8 {
					span := ellipsis.Span
					return nil, &Error{Kind: ErrArrayDegreeTooBig, Got: &ellipsis, Span: &span}
				}
				t.ArrayDepth++
			}
			name, err := p.expect(TokenIdent)
			if err != nil {
				return nil, err
			}
			if t, err = p.appendArrayDims(t); err != nil {
				return nil, err
			}
			h.modifiers.Set(java.ModFinal)
			fields = append(fields, java.Field{
				Meta:        h.meta,
				Annotations: h.annotations,
				Visibility:  java.VisibilityPrivate,
				Modifiers:   h.modifiers,
				Type:        t,
				Name:        name.Literal,
				Span:        Span{Start: h.start, End: p.lastEnd},
				NameSpan:    name.Span,
			})
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return fields, nil
}

func (p *Parser) parseEnumConstants(class *java.Class) *Error {
	for {
		if err := p.skipAnnotations(); err != nil {
			return err
		}
		tok := p.peek()
		switch tok.Kind {
		case TokenIdent:
			p.advance()
			class.EnumConstants = append(class.EnumConstants, tok.Literal)
			if err := p.skipBalanced(TokenLParen, TokenRParen); err != nil {
				return err
			}
			for p.check(TokenLBrace) {
				if err := p.skipBalanced(TokenLBrace, TokenRBrace); err != nil {
					return err
				}
			}
		case TokenSemicolon, TokenRBrace:
			return nil
		default:
			return expected(tok, TokenIdent, TokenSemicolon, TokenRBrace)
		}

		if p.check(TokenRBrace) {
			return nil
		}
		sep, err := p.expect(TokenComma, TokenSemicolon)
		if err != nil {
			return err
		}
		if sep.Kind == TokenSemicolon {
			return nil
		}
	}
}

func (p *Parser) parseMember(class *java.Class, s scope) *Error {
	for p.check(TokenStatic) && p.peekSecond().Kind == TokenLBrace {
		p.advance()
		if err := p.skipEmpty(); err != nil {
			return err
		}
	}
	if p.check(TokenRBrace) {
		return nil
	}

	h, err := p.parseHeader()
	if err != nil {
		return err
	}

	tok := p.peek()
	switch {
	case tok.Kind.IsDeclaration():
		inner, err := p.parseClass(s, h)
		if err != nil {
			return err
		}
		class.Inner = append(class.Inner, inner)
		return nil
	case tok.Kind == TokenLT || tok.Kind == TokenIdent:
		return p.parseMethodOrField(class, h)
	}
	return expected(tok, TokenClass, TokenInterface, TokenRecord, TokenEnum, TokenLT, TokenIdent)
}

func (p *Parser) parseMethodOrField(class *java.Class, h header) *Error {
	start := p.peek()
	generics, err := p.parseGenericDefinition()
	if err != nil {
		return err
	}

	kind := java.MethodRegular
	var returnType *java.Type
	switch p.peekSecond().Kind {
	case TokenLParen:
		kind = java.MethodConstructor
	case TokenLBrace:
		if class.Kind != java.ClassKindRecord {
			return unexpected(p.peekSecond(), "compact constructor outside a record")
		}
		kind = java.MethodCompactConstructor
	default:
		t, err := p.parseType()
		if err != nil {
			return err
		}
		returnType = &t
	}

	name, err := p.expect(TokenIdent)
	if err != nil {
		return err
	}

	if p.check(TokenLParen) || p.check(TokenLBrace) {
		method, err := p.parseMethodRest(h, generics, kind, returnType, name)
		if err != nil {
			return err
		}
		class.Methods = append(class.Methods, method)
		return nil
	}

	if start.Kind == TokenLT {
		return unexpected(start, "cannot have generic definition on variable")
	}
	if returnType == nil {
		return unexpected(start, "expected type for variable declaration")
	}
	return p.parseFieldDeclarators(class, h, *returnType, name)
}

func (p *Parser) parseMethodRest(h header, generics []java.GenericParameter, kind java.MethodKind, returnType *java.Type, name Token) (java.Method, *Error) {
	method := java.Method{
		Meta:        h.meta,
		Annotations: h.annotations,
		Visibility:  h.visibility,
		Modifiers:   h.modifiers,
		Generics:    generics,
		Kind:        kind,
		ReturnType:  returnType,
		Name:        name.Literal,
		NameSpan:    name.Span,
	}

	if p.check(TokenLParen) {
		params, err := p.parseParameters()
		if err != nil {
			return method, err
		}
		method.Parameters = params
		if returnType != nil {
			t, err := p.appendArrayDims(*returnType)
			if err != nil {
				return method, err
			}
			method.ReturnType = &t
		}
	}

	if p.check(TokenThrows) {
		p.advance()
		throws, err := p.parseTypeList()
		if err != nil {
			return method, err
		}
		method.Throws = throws
	}

	// annotation members: String value() default "";
	if p.check(TokenDefault) {
		p.advance()
		if err := p.skipInitializer(); err != nil {
			return method, err
		}
	}

	switch p.peek().Kind {
	case TokenLBrace:
		if err := p.skipBalanced(TokenLBrace, TokenRBrace); err != nil {
			return method, err
		}
	case TokenSemicolon:
		p.advance()
	}
	method.Span = Span{Start: h.start, End: p.lastEnd}
	return method, nil
}

func (p *Parser) parseFieldDeclarators(class *java.Class, h header, base java.Type, name Token) *Error {
	first := len(class.Fields)
	for {
		t, err := p.appendArrayDims(base.Clone())
		if err != nil {
			return err
		}
		class.Fields = append(class.Fields, java.Field{
			Meta:        h.meta,
			Annotations: h.annotations,
			Visibility:  h.visibility,
			Modifiers:   h.modifiers,
			Type:        t,
			Name:        name.Literal,
			NameSpan:    name.Span,
		})

		if p.check(TokenAssign) {
			p.advance()
			if err := p.skipInitializer(); err != nil {
				return err
			}
		}

		tok := p.peek()
		switch tok.Kind {
		case TokenSemicolon:
			p.advance()
			for i := first; i < len(class.Fields); i++ {
				class.Fields[i].Span = Span{Start: h.start, End: p.lastEnd}
			}
			return nil
		case TokenComma:
			p.advance()
			if name, err = p.expect(TokenIdent); err != nil {
				return err
			}
		default:
			return expected(tok, TokenSemicolon, TokenAssign, TokenComma)
		}
	}
}

func (p *Parser) parseParameters() ([]java.Parameter, *Error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	var params []java.Parameter
	if !p.check(TokenRParen) {
		for {
			param, err := p.parseParameter()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseParameter() (java.Parameter, *Error) {
	h, err := p.parseHeader()
	if err != nil {
		return java.Parameter{}, err
	}
	t, err := p.parseType()
	if err != nil {
		return java.Parameter{}, err
	}
	param := java.Parameter{Annotations: h.annotations, Modifiers: h.modifiers}
	if p.check(TokenEllipsis) {
		p.advance()
		param.Varargs = true
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return param, err
	}
	if t, err = p.appendArrayDims(t); err != nil {
		return param, err
	}
	param.Type = t
	param.Name = name.Literal
	return param, nil
}

func (p *Parser) parsePath() (java.Path, *Error) {
	first, err := p.expect(TokenIdent)
	if err != nil {
		return "", err
	}
	path := java.Path(first.Literal)
	for p.check(TokenDot) {
		p.advance()
		segment, err := p.expect(TokenIdent, TokenStar)
		if err != nil {
			return "", err
		}
		path = path.Push(segment.Literal)
	}
	return path, nil
}

func (p *Parser) parseTypeList() ([]java.Type, *Error) {
	var types []java.Type
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		if !p.check(TokenComma) {
			return types, nil
		}
		p.advance()
	}
}

func (p *Parser) parseType() (java.Type, *Error) {
	if err := p.skipAnnotations(); err != nil {
		return java.Type{}, err
	}
	tok := p.peek()
	if tok.Kind != TokenIdent {
		return java.Type{}, expected(tok, TokenIdent)
	}

	var t java.Type
	if prim, ok := java.LookupPrimitive(tok.Literal); ok {
		p.advance()
		t = java.PrimitiveType(prim, 0)
	} else {
		path, err := p.parsePath()
		if err != nil {
			return t, err
		}
		generics, err := p.parseGenericArguments()
		if err != nil {
			return t, err
		}
		t = java.ObjectTypeOf(path, generics, 0)
	}
	return p.appendArrayDims(t)
}

// appendArrayDims adds every [] pair at the current position to the array
// depth of t.
func (p *Parser) appendArrayDims(t java.Type) (java.Type, *Error) {
	depth := t.ArrayDepth
	for p.check(TokenLBracket) {
		p.advance()
		closing, err := p.expect(TokenRBracket)
		if err != nil {
			return t, err
		}
		if depth == math.MaxUint8 {
			span := closing.Span
			return t, &Error{Kind: ErrArrayDegreeTooBig, Got: &closing, Span: &span}
		}
		depth++
	}
	t.ArrayDepth = depth
	return t, nil
}

func (p *Parser) parseGenericArguments() (*java.GenericArguments, *Error) {
	if !p.check(TokenLT) {
		return nil, nil
	}
	p.advance()
	args := &java.GenericArguments{}
	if !p.check(TokenGT) {
		for {
			var arg java.GenericArgument
			if err := p.skipAnnotations(); err != nil {
				return nil, err
			}
			if p.check(TokenQuestion) {
				wildcard, err := p.parseWildcard()
				if err != nil {
					return nil, err
				}
				arg.Wildcard = wildcard
			} else {
				t, err := p.parseType()
				if err != nil {
					return nil, err
				}
				arg.Type = &t
			}
			args.Arguments = append(args.Arguments, arg)
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenGT); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseWildcard() (*java.Wildcard, *Error) {
	if _, err := p.expect(TokenQuestion); err != nil {
		return nil, err
	}
	wildcard := &java.Wildcard{}
	switch p.peek().Kind {
	case TokenExtends:
		wildcard.Bound = java.BoundExtends
	case TokenSuper:
		wildcard.Bound = java.BoundSuper
	default:
		return wildcard, nil
	}
	p.advance()
	types, err := p.parseBoundedTypeList()
	if err != nil {
		return nil, err
	}
	wildcard.Types = types
	return wildcard, nil
}

// parseBoundedTypeList parses A & B & C.
func (p *Parser) parseBoundedTypeList() ([]java.Type, *Error) {
	var types []java.Type
	for p.check(TokenIdent) || p.check(TokenAnnotation) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		if !p.check(TokenAmpersand) {
			break
		}
		p.advance()
	}
	return types, nil
}

func (p *Parser) parseGenericDefinition() ([]java.GenericParameter, *Error) {
	if !p.check(TokenLT) {
		return nil, nil
	}
	p.advance()
	var params []java.GenericParameter
	if !p.check(TokenGT) {
		for {
			if err := p.skipAnnotations(); err != nil {
				return nil, err
			}
			name, err := p.expect(TokenIdent)
			if err != nil {
				return nil, err
			}
			param := java.GenericParameter{Name: name.Literal}
			if p.check(TokenExtends) {
				p.advance()
				if param.Bounds, err = p.parseBoundedTypeList(); err != nil {
					return nil, err
				}
			}
			params = append(params, param)
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenGT); err != nil {
		return nil, err
	}
	return params, nil
}

// skipEmpty drops stray semicolons and brace blocks, which covers empty
// declarations as well as instance and static initializer bodies.
func (p *Parser) skipEmpty() *Error {
	for {
		switch p.peek().Kind {
		case TokenLBrace:
			if err := p.skipBalanced(TokenLBrace, TokenRBrace); err != nil {
				return err
			}
		case TokenSemicolon:
			p.advance()
		default:
			return nil
		}
	}
}

// skipBalanced consumes an open token and everything up to its matching
// close token. It does nothing when the next token is not open.
func (p *Parser) skipBalanced(open, close TokenKind) *Error {
	if !p.check(open) {
		return nil
	}
	p.advance()
	for depth := 1; depth > 0; {
		tok := p.advance()
		switch tok.Kind {
		case TokenEOF:
			return expected(tok, close)
		case open:
			depth++
		case close:
			depth--
		}
	}
	return nil
}

func (p *Parser) skipAnnotations() *Error {
	for p.check(TokenAnnotation) || p.check(TokenMeta) {
		p.advance()
		if err := p.skipBalanced(TokenLParen, TokenRParen); err != nil {
			return err
		}
	}
	return nil
}

// skipInitializer consumes a variable initializer up to, but not including,
// the ';' or ',' that ends it. '<' counts as a bracket only where it opens
// type arguments: after the type name of a 'new' expression or right after
// a '.', as in Collections.<K, V>emptyMap().
func (p *Parser) skipInitializer() *Error {
	depth, angle := 0, 0
	creator := false
	var prev TokenKind
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenEOF:
			return expected(tok, TokenSemicolon)
		case TokenLParen, TokenLBrace, TokenLBracket:
			depth++
		case TokenRParen, TokenRBrace, TokenRBracket:
			if depth == 0 {
				return nil
			}
			depth--
		case TokenLT:
			if angle > 0 || creator || prev == TokenDot {
				angle++
			}
		case TokenGT:
			if angle > 0 {
				angle--
			}
		case TokenSemicolon:
			if depth == 0 {
				return nil
			}
		case TokenComma:
			if depth == 0 && angle == 0 {
				return nil
			}
		}
		switch {
		case tok.Kind == TokenIdent && tok.Literal == "new":
			creator = true
		case tok.Kind == TokenIdent, tok.Kind == TokenDot, tok.Kind == TokenAnnotation:
		default:
			creator = false
		}
		prev = tok.Kind
		p.advance()
	}
}
