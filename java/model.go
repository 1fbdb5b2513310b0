package java

import "strings"

// Span is a half-open byte range [Start, End) into a file's source text.
type Span struct {
	Start int
	End   int
}

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindRecord     ClassKind = "record"
	ClassKindAnnotation ClassKind = "annotation"
)

// Modifiers is a bit set of declaration modifiers.
type Modifiers uint16

const (
	ModStatic Modifiers = 1 << iota
	ModAbstract
	ModSynchronized
	ModTransient
	ModVolatile
	ModFinal
	ModNative
	ModDefault
	ModStrictfp
	ModSealed
	ModNonSealed
)

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{ModStatic, "static"},
	{ModAbstract, "abstract"},
	{ModSynchronized, "synchronized"},
	{ModTransient, "transient"},
	{ModVolatile, "volatile"},
	{ModFinal, "final"},
	{ModNative, "native"},
	{ModDefault, "default"},
	{ModStrictfp, "strictfp"},
	{ModSealed, "sealed"},
	{ModNonSealed, "non-sealed"},
}

func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod != 0
}

func (m *Modifiers) Set(mod Modifiers) {
	*m |= mod
}

func (m Modifiers) IsStatic() bool {
	return m.Has(ModStatic)
}

// Names lists the set modifiers in declaration order.
func (m Modifiers) Names() []string {
	var names []string
	for _, entry := range modifierNames {
		if m.Has(entry.mod) {
			names = append(names, entry.name)
		}
	}
	return names
}

func (m Modifiers) String() string {
	return strings.Join(m.Names(), " ")
}

type MetaKind int

const (
	MetaInvalid MetaKind = iota
	MetaHide
	MetaInnerClassNote
	MetaInnerClassLinePC
	MetaRawOuter
	MetaLine
)

var metaKindNames = map[MetaKind]string{
	MetaInvalid:          "invalid",
	MetaHide:             "hide",
	MetaInnerClassNote:   "inner-class-note",
	MetaInnerClassLinePC: "inner-class-line-p-c",
	MetaRawOuter:         "raw-outer",
	MetaLine:             "line",
}

func (k MetaKind) String() string {
	if name, ok := metaKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Meta is a diagram hint embedded in a /*UML_<TAG> <payload>*/ comment.
// For MetaInvalid, Text holds the raw comment body.
type Meta struct {
	Kind MetaKind
	Text string
}

// Class is one class-like declaration. Nested declarations are owned by
// their parent in Inner until the project aggregator detaches them.
type Class struct {
	Package       Path
	Imports       *Imports
	Meta          []Meta
	Annotations   []string
	Visibility    Visibility
	Modifiers     Modifiers
	Kind          ClassKind
	EnumConstants []string
	Name          string
	Path          Path
	Parent        Path
	Generics      []GenericParameter
	GenericNames  NameSet
	Extends       []Type
	Implements    []Type
	Permits       []Type
	Fields        []Field
	Methods       []Method
	Inner         []*Class
	Span          Span
	NameSpan      Span
}

func (c *Class) IsNested() bool {
	return c.Parent != ""
}

// Walk calls fn for c and every declaration nested in it, parents first.
func (c *Class) Walk(fn func(*Class)) {
	fn(c)
	for _, inner := range c.Inner {
		inner.Walk(fn)
	}
}

type Field struct {
	Meta        []Meta
	Annotations []string
	Visibility  Visibility
	Modifiers   Modifiers
	Type        Type
	Name        string
	Span        Span
	NameSpan    Span
}

type MethodKind int

const (
	MethodRegular MethodKind = iota
	MethodConstructor
	MethodCompactConstructor
)

func (k MethodKind) String() string {
	switch k {
	case MethodConstructor:
		return "constructor"
	case MethodCompactConstructor:
		return "compact-constructor"
	}
	return "method"
}

type Method struct {
	Meta        []Meta
	Annotations []string
	Visibility  Visibility
	Modifiers   Modifiers
	Generics    []GenericParameter
	Kind        MethodKind
	ReturnType  *Type
	Name        string
	Parameters  []Parameter
	Throws      []Type
	Span        Span
	NameSpan    Span
}

type Parameter struct {
	Annotations []string
	Modifiers   Modifiers
	Type        Type
	Name        string
	Varargs     bool
}

func (p Parameter) String() string {
	if p.Varargs {
		return p.Type.String() + "... " + p.Name
	}
	return p.Type.String() + " " + p.Name
}

// Signature renders the name and parameter list.
func (m *Method) Signature() string {
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = p.String()
	}
	return m.Name + "(" + strings.Join(params, ", ") + ")"
}
