package format

import (
	"github.com/dhamidi/classgraph/java"
	"github.com/dhamidi/classgraph/java/codebase"
)

// Document is the serializable view of a project shared by the JSON and
// YAML encoders. Declarations appear flat and sorted by path.
type Document struct {
	Classes []Class `json:"classes" yaml:"classes"`
}

type Class struct {
	Path          string   `json:"path" yaml:"path"`
	File          string   `json:"file,omitempty" yaml:"file,omitempty"`
	Package       string   `json:"package,omitempty" yaml:"package,omitempty"`
	Parent        string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Kind          string   `json:"kind" yaml:"kind"`
	Visibility    string   `json:"visibility" yaml:"visibility"`
	Modifiers     []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Annotations   []string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Meta          []Meta   `json:"meta,omitempty" yaml:"meta,omitempty"`
	Generics      []string `json:"generics,omitempty" yaml:"generics,omitempty"`
	Extends       []Type   `json:"extends,omitempty" yaml:"extends,omitempty"`
	Implements    []Type   `json:"implements,omitempty" yaml:"implements,omitempty"`
	Permits       []Type   `json:"permits,omitempty" yaml:"permits,omitempty"`
	EnumConstants []string `json:"enumConstants,omitempty" yaml:"enumConstants,omitempty"`
	Fields        []Field  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Methods       []Method `json:"methods,omitempty" yaml:"methods,omitempty"`
}

type Meta struct {
	Kind string `json:"kind" yaml:"kind"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

type Field struct {
	Name        string   `json:"name" yaml:"name"`
	Type        Type     `json:"type" yaml:"type"`
	Visibility  string   `json:"visibility" yaml:"visibility"`
	Modifiers   []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Annotations []string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Meta        []Meta   `json:"meta,omitempty" yaml:"meta,omitempty"`
}

type Method struct {
	Name        string      `json:"name" yaml:"name"`
	Kind        string      `json:"kind" yaml:"kind"`
	Generics    []string    `json:"generics,omitempty" yaml:"generics,omitempty"`
	ReturnType  *Type       `json:"returnType,omitempty" yaml:"returnType,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Throws      []Type      `json:"throws,omitempty" yaml:"throws,omitempty"`
	Visibility  string      `json:"visibility" yaml:"visibility"`
	Modifiers   []string    `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Annotations []string    `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Meta        []Meta      `json:"meta,omitempty" yaml:"meta,omitempty"`
}

type Parameter struct {
	Name    string `json:"name" yaml:"name"`
	Type    Type   `json:"type" yaml:"type"`
	Varargs bool   `json:"varargs,omitempty" yaml:"varargs,omitempty"`
}

// Type is one type reference. Resolution and Target are set for object
// types only; Arguments lists the types nested in its type arguments.
type Type struct {
	Name       string `json:"name" yaml:"name"`
	Resolution string `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Target     string `json:"target,omitempty" yaml:"target,omitempty"`
	Arguments  []Type `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

func NewDocument(p *codebase.Project) *Document {
	doc := &Document{Classes: make([]Class, 0, len(p.Types))}
	for _, c := range p.Classes() {
		doc.Classes = append(doc.Classes, newClass(c, p.FilePaths[java.ClassPath(c.Path)]))
	}
	return doc
}

func newClass(c *java.Class, file string) Class {
	out := Class{
		Path:          c.Path.String(),
		File:          file,
		Package:       c.Package.String(),
		Parent:        c.Parent.String(),
		Kind:          string(c.Kind),
		Visibility:    string(c.Visibility),
		Modifiers:     c.Modifiers.Names(),
		Annotations:   c.Annotations,
		Meta:          newMeta(c.Meta),
		Generics:      genericStrings(c.Generics),
		Extends:       newTypes(c.Extends),
		Implements:    newTypes(c.Implements),
		Permits:       newTypes(c.Permits),
		EnumConstants: c.EnumConstants,
	}
	for i := range c.Fields {
		f := &c.Fields[i]
		out.Fields = append(out.Fields, Field{
			Name:        f.Name,
			Type:        newType(&f.Type),
			Visibility:  string(f.Visibility),
			Modifiers:   f.Modifiers.Names(),
			Annotations: f.Annotations,
			Meta:        newMeta(f.Meta),
		})
	}
	for i := range c.Methods {
		out.Methods = append(out.Methods, newMethod(&c.Methods[i]))
	}
	return out
}

func newMethod(m *java.Method) Method {
	out := Method{
		Name:        m.Name,
		Kind:        m.Kind.String(),
		Generics:    genericStrings(m.Generics),
		Throws:      newTypes(m.Throws),
		Visibility:  string(m.Visibility),
		Modifiers:   m.Modifiers.Names(),
		Annotations: m.Annotations,
		Meta:        newMeta(m.Meta),
	}
	if m.ReturnType != nil {
		t := newType(m.ReturnType)
		out.ReturnType = &t
	}
	for i := range m.Parameters {
		p := &m.Parameters[i]
		out.Parameters = append(out.Parameters, Parameter{
			Name:    p.Name,
			Type:    newType(&p.Type),
			Varargs: p.Varargs,
		})
	}
	return out
}

func newType(t *java.Type) Type {
	out := Type{Name: t.String()}
	if t.Object == nil {
		return out
	}
	resolved := t.Object.Path.Resolved
	out.Resolution = resolved.Kind.String()
	if resolved.Kind == java.ResolvedPath {
		out.Target = resolved.Path.String()
	}
	if t.Object.Generics == nil {
		return out
	}
	for i := range t.Object.Generics.Arguments {
		arg := &t.Object.Generics.Arguments[i]
		switch {
		case arg.Type != nil:
			out.Arguments = append(out.Arguments, newType(arg.Type))
		case arg.Wildcard != nil:
			out.Arguments = append(out.Arguments, Type{
				Name:      arg.Wildcard.String(),
				Arguments: newTypes(arg.Wildcard.Types),
			})
		}
	}
	return out
}

func newTypes(types []java.Type) []Type {
	if len(types) == 0 {
		return nil
	}
	out := make([]Type, len(types))
	for i := range types {
		out[i] = newType(&types[i])
	}
	return out
}

func newMeta(meta []java.Meta) []Meta {
	if len(meta) == 0 {
		return nil
	}
	out := make([]Meta, len(meta))
	for i, m := range meta {
		out[i] = Meta{Kind: m.Kind.String(), Text: m.Text}
	}
	return out
}

func genericStrings(params []java.GenericParameter) []string {
	if len(params) == 0 {
		return nil
	}
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.String()
	}
	return out
}
