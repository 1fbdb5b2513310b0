package java

import (
	"strings"
)

type Primitive string

const (
	PrimitiveByte    Primitive = "byte"
	PrimitiveShort   Primitive = "short"
	PrimitiveInt     Primitive = "int"
	PrimitiveLong    Primitive = "long"
	PrimitiveFloat   Primitive = "float"
	PrimitiveDouble  Primitive = "double"
	PrimitiveChar    Primitive = "char"
	PrimitiveVoid    Primitive = "void"
	PrimitiveBoolean Primitive = "boolean"
)

var primitives = map[string]Primitive{
	"byte":    PrimitiveByte,
	"short":   PrimitiveShort,
	"int":     PrimitiveInt,
	"long":    PrimitiveLong,
	"float":   PrimitiveFloat,
	"double":  PrimitiveDouble,
	"char":    PrimitiveChar,
	"void":    PrimitiveVoid,
	"boolean": PrimitiveBoolean,
}

func LookupPrimitive(name string) (Primitive, bool) {
	p, ok := primitives[name]
	return p, ok
}

type TypeKind int

const (
	TypeKindPrimitive TypeKind = iota
	TypeKindPrimitiveArray
	TypeKindObject
)

func (k TypeKind) String() string {
	switch k {
	case TypeKindPrimitive:
		return "primitive"
	case TypeKindPrimitiveArray:
		return "primitive-array"
	}
	return "object"
}

// Type is a type reference. Exactly one of Primitive and Object is set.
// ArrayDepth counts the dimensions declared before and after the name.
type Type struct {
	Primitive  Primitive
	Object     *ObjectType
	ArrayDepth uint8
}

type ObjectType struct {
	Path     TypePath
	Generics *GenericArguments
}

func PrimitiveType(p Primitive, depth uint8) Type {
	return Type{Primitive: p, ArrayDepth: depth}
}

func ObjectTypeOf(path Path, generics *GenericArguments, depth uint8) Type {
	return Type{
		Object:     &ObjectType{Path: TypePath{Original: path}, Generics: generics},
		ArrayDepth: depth,
	}
}

func (t Type) Kind() TypeKind {
	if t.Object != nil {
		return TypeKindObject
	}
	if t.ArrayDepth > 0 {
		return TypeKindPrimitiveArray
	}
	return TypeKindPrimitive
}

func (t Type) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t Type) IsVoid() bool {
	return t.Primitive == PrimitiveVoid && t.ArrayDepth == 0
}

func (t Type) String() string {
	var sb strings.Builder
	if t.Object != nil {
		sb.WriteString(t.Object.Path.Original.String())
		if t.Object.Generics != nil {
			sb.WriteString(t.Object.Generics.String())
		}
	} else {
		sb.WriteString(string(t.Primitive))
	}
	for i := uint8(0); i < t.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

// Clone returns a deep copy of t whose resolution slots are independent
// of the original.
func (t Type) Clone() Type {
	if t.Object == nil {
		return t
	}
	obj := *t.Object
	if obj.Generics != nil {
		args := make([]GenericArgument, len(obj.Generics.Arguments))
		for i, arg := range obj.Generics.Arguments {
			args[i] = arg.clone()
		}
		obj.Generics = &GenericArguments{Arguments: args}
	}
	t.Object = &obj
	return t
}

func cloneTypes(types []Type) []Type {
	if types == nil {
		return nil
	}
	out := make([]Type, len(types))
	for i, t := range types {
		out[i] = t.Clone()
	}
	return out
}

type ResolutionKind int

const (
	Unresolved ResolutionKind = iota
	ResolvedPath
	ResolvedGeneric
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolvedPath:
		return "path"
	case ResolvedGeneric:
		return "generic"
	}
	return "unresolved"
}

type Resolution struct {
	Kind ResolutionKind
	Path Path
}

// TypePath is the textual path of an object type reference together with
// the outcome of type resolution.
type TypePath struct {
	Original Path
	Resolved Resolution
}

// Display returns the resolved path when known, the original text otherwise.
func (p TypePath) Display() string {
	if p.Resolved.Kind == ResolvedPath {
		return p.Resolved.Path.String()
	}
	return p.Original.String()
}

type GenericArguments struct {
	Arguments []GenericArgument
}

func (g *GenericArguments) String() string {
	parts := make([]string, len(g.Arguments))
	for i, arg := range g.Arguments {
		parts[i] = arg.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// GenericArgument is either a concrete Type or a Wildcard.
type GenericArgument struct {
	Type     *Type
	Wildcard *Wildcard
}

func (a GenericArgument) String() string {
	if a.Wildcard != nil {
		return a.Wildcard.String()
	}
	if a.Type != nil {
		return a.Type.String()
	}
	return ""
}

func (a GenericArgument) clone() GenericArgument {
	if a.Type != nil {
		t := a.Type.Clone()
		a.Type = &t
	}
	if a.Wildcard != nil {
		a.Wildcard = &Wildcard{Bound: a.Wildcard.Bound, Types: cloneTypes(a.Wildcard.Types)}
	}
	return a
}

type BoundKind int

const (
	BoundNone BoundKind = iota
	BoundExtends
	BoundSuper
)

func (k BoundKind) String() string {
	switch k {
	case BoundExtends:
		return "extends"
	case BoundSuper:
		return "super"
	}
	return ""
}

type Wildcard struct {
	Bound BoundKind
	Types []Type
}

func (w *Wildcard) String() string {
	if w.Bound == BoundNone {
		return "?"
	}
	parts := make([]string, len(w.Types))
	for i, t := range w.Types {
		parts[i] = t.String()
	}
	return "? " + w.Bound.String() + " " + strings.Join(parts, " & ")
}

// GenericParameter is one entry of a generic definition, T extends A & B.
// Bounds is nil when no extends clause is present.
type GenericParameter struct {
	Name   string
	Bounds []Type
}

func (g GenericParameter) String() string {
	if len(g.Bounds) == 0 {
		return g.Name
	}
	bounds := make([]string, len(g.Bounds))
	for i := range g.Bounds {
		bounds[i] = g.Bounds[i].String()
	}
	return g.Name + " extends " + strings.Join(bounds, " & ")
}

// FormatGenericParameters renders a generic definition such as
// <K, V extends Comparable<V>>, or "" when params is empty.
func FormatGenericParameters(params []GenericParameter) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func GenericParameterNames(params []GenericParameter) []string {
	if len(params) == 0 {
		return nil
	}
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}
	return names
}

// NameSet is an immutable set of generic parameter names. It is shared
// between a declaration and the non-static declarations nested in it.
type NameSet map[string]struct{}

// Extend returns a new set holding the names of s plus names.
// The receiver is never modified.
func (s NameSet) Extend(names ...string) NameSet {
	out := make(NameSet, len(s)+len(names))
	for name := range s {
		out[name] = struct{}{}
	}
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out
}

func (s NameSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}
