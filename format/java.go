package format

import (
	"io"
	"slices"
	"strings"

	"github.com/dhamidi/classgraph/java"
	"github.com/dhamidi/classgraph/java/codebase"
)

// JavaEncoder writes the declaration skeleton of every file: package,
// explicit imports, and declarations with member signatures but no bodies.
type JavaEncoder struct {
	w       io.Writer
	project *codebase.Project
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(project *codebase.Project) error {
	e.project = project
	return write(e.w, e)
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	first := true
	for _, c := range e.project.Classes() {
		if c.IsNested() {
			continue
		}
		if !first {
			sb.WriteString("\n")
		}
		first = false
		e.writeFile(&sb, c)
	}
	return []byte(sb.String()), nil
}

func (e *JavaEncoder) writeFile(sb *strings.Builder, c *java.Class) {
	if c.Package != "" {
		sb.WriteString("package ")
		sb.WriteString(c.Package.String())
		sb.WriteString(";\n\n")
	}
	if imports := explicitImports(c.Imports); len(imports) > 0 {
		for _, imp := range imports {
			sb.WriteString("import ")
			if imp.Static {
				sb.WriteString("static ")
			}
			sb.WriteString(imp.Path.String())
			sb.WriteString(";\n")
		}
		sb.WriteString("\n")
	}
	e.writeClass(sb, c, "")
}

func explicitImports(imports *java.Imports) []java.Import {
	if imports == nil {
		return nil
	}
	var out []java.Import
	for _, imp := range imports.Names {
		if !imp.Inferred {
			out = append(out, imp)
		}
	}
	slices.SortFunc(out, func(a, b java.Import) int {
		return strings.Compare(string(a.Path), string(b.Path))
	})
	return append(out, imports.Wildcards...)
}

func (e *JavaEncoder) writeClass(sb *strings.Builder, c *java.Class, indent string) {
	writeAnnotations(sb, c.Annotations, indent)
	sb.WriteString(indent)
	writeVisibility(sb, c.Visibility)
	mods := c.Modifiers
	if c.Kind != java.ClassKindClass {
		// implicit for everything but classes
		mods &^= java.ModStatic
	}
	writeModifiers(sb, mods)

	switch c.Kind {
	case java.ClassKindAnnotation:
		sb.WriteString("@interface ")
	default:
		sb.WriteString(string(c.Kind))
		sb.WriteString(" ")
	}
	sb.WriteString(c.Name)
	sb.WriteString(java.FormatGenericParameters(c.Generics))

	fields := c.Fields
	if c.Kind == java.ClassKindRecord {
		var components []string
		fields = nil
		for _, f := range c.Fields {
			if f.Modifiers.IsStatic() {
				fields = append(fields, f)
				continue
			}
			components = append(components, f.Type.String()+" "+f.Name)
		}
		sb.WriteString("(")
		sb.WriteString(strings.Join(components, ", "))
		sb.WriteString(")")
	}

	writeTypeList(sb, " extends ", c.Extends)
	writeTypeList(sb, " implements ", c.Implements)
	writeTypeList(sb, " permits ", c.Permits)
	sb.WriteString(" {\n")

	inner := indent + "    "
	if len(c.EnumConstants) > 0 {
		sb.WriteString(inner)
		sb.WriteString(strings.Join(c.EnumConstants, ", "))
		sb.WriteString(";\n")
	}
	for _, f := range fields {
		writeAnnotations(sb, f.Annotations, inner)
		sb.WriteString(inner)
		writeVisibility(sb, f.Visibility)
		writeModifiers(sb, f.Modifiers)
		sb.WriteString(f.Type.String())
		sb.WriteString(" ")
		sb.WriteString(f.Name)
		sb.WriteString(";\n")
	}
	for i := range c.Methods {
		e.writeMethod(sb, &c.Methods[i], inner)
	}
	for _, nested := range e.project.Nested(c.Path) {
		e.writeClass(sb, nested, inner)
	}
	sb.WriteString(indent)
	sb.WriteString("}\n")
}

func (e *JavaEncoder) writeMethod(sb *strings.Builder, m *java.Method, indent string) {
	writeAnnotations(sb, m.Annotations, indent)
	sb.WriteString(indent)
	writeVisibility(sb, m.Visibility)
	writeModifiers(sb, m.Modifiers)
	if generics := java.FormatGenericParameters(m.Generics); generics != "" {
		sb.WriteString(generics)
		sb.WriteString(" ")
	}
	if m.ReturnType != nil {
		sb.WriteString(m.ReturnType.String())
		sb.WriteString(" ")
	}
	if m.Kind == java.MethodCompactConstructor {
		sb.WriteString(m.Name)
	} else {
		sb.WriteString(m.Signature())
	}
	writeTypeList(sb, " throws ", m.Throws)
	sb.WriteString(";\n")
}

func writeAnnotations(sb *strings.Builder, annotations []string, indent string) {
	for _, a := range annotations {
		sb.WriteString(indent)
		sb.WriteString("@")
		sb.WriteString(a)
		sb.WriteString("\n")
	}
}

func writeVisibility(sb *strings.Builder, v java.Visibility) {
	if v == java.VisibilityPackage || v == "" {
		return
	}
	sb.WriteString(string(v))
	sb.WriteString(" ")
}

func writeModifiers(sb *strings.Builder, mods java.Modifiers) {
	for _, name := range mods.Names() {
		sb.WriteString(name)
		sb.WriteString(" ")
	}
}

func writeTypeList(sb *strings.Builder, keyword string, types []java.Type) {
	if len(types) == 0 {
		return
	}
	sb.WriteString(keyword)
	for i := range types {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(types[i].String())
	}
}
