package codebase

import (
	"github.com/dhamidi/classgraph/java"
)

// Resolver binds type references seen from one declaration.
type Resolver struct {
	prelude  *java.Imports
	imports  *java.Imports
	paths    map[java.ClassPath]struct{}
	generics java.NameSet
}

// NewResolver returns the resolver for class. The prelude table is always
// empty: references to the standard library stay unresolved.
func NewResolver(p *Project, class *java.Class) *Resolver {
	return &Resolver{
		prelude:  java.NewImports(),
		imports:  class.Imports,
		paths:    p.Paths,
		generics: class.GenericNames,
	}
}

// Resolve binds one textual path. The first matching rule wins:
//
//  1. path is a declared path,
//  2. the first segment is in the import table,
//  3. the first segment is in the prelude table,
//  4. path is a visible generic parameter name.
//
// Rules 2 and 3 bind to the imported path. A qualified reference such as
// Outer.Inner binds to the nested declaration instead when that path is
// declared.
func (r *Resolver) Resolve(path java.Path) java.Resolution {
	if r.declared(path) {
		return java.Resolution{Kind: java.ResolvedPath, Path: path}
	}
	first := path.First()
	if imp, ok := r.imports.Lookup(first); ok {
		return java.Resolution{Kind: java.ResolvedPath, Path: r.qualify(imp.Path, path)}
	}
	if imp, ok := r.prelude.Lookup(first); ok {
		return java.Resolution{Kind: java.ResolvedPath, Path: r.qualify(imp.Path, path)}
	}
	if r.generics.Contains(string(path)) {
		return java.Resolution{Kind: java.ResolvedGeneric, Path: path}
	}
	return java.Resolution{Kind: java.Unresolved}
}

func (r *Resolver) qualify(imported, path java.Path) java.Path {
	rest := path.Rest()
	if rest == "" {
		return imported
	}
	if nested := imported.Push(string(rest)); r.declared(nested) {
		return nested
	}
	return imported
}

func (r *Resolver) declared(path java.Path) bool {
	_, ok := r.paths[java.ClassPath(path)]
	return ok
}

func (r *Resolver) resolve(t *java.Type) {
	if t.Object == nil {
		return
	}
	t.Object.Path.Resolved = r.Resolve(t.Object.Path.Original)
}

// withMethod returns a resolver that also sees the generic parameters
// declared by m.
func (r *Resolver) withMethod(m *java.Method) *Resolver {
	names := java.GenericParameterNames(m.Generics)
	if len(names) == 0 {
		return r
	}
	scoped := *r
	scoped.generics = r.generics.Extend(names...)
	return &scoped
}

// ResolveClass binds every type reference declared on class.
func (r *Resolver) ResolveClass(class *java.Class) {
	class.WalkMemberTypes(r.resolve)
	for i := range class.Methods {
		m := &class.Methods[i]
		m.WalkTypes(r.withMethod(m).resolve)
	}
}

// ResolveTypes binds every type reference in the project. It must run after
// ResolveImports and at most once per project.
func ResolveTypes(p *Project) {
	var counts Counts
	for _, class := range p.Classes() {
		NewResolver(p, class).ResolveClass(class)
		counts.Add(CountResolutions(class))
	}
	log.Infof("resolved %d references: %d declared, %d generic, %d unresolved",
		counts.Total(), counts.Declared, counts.Generic, counts.Unresolved)
}

// Counts tallies the resolution outcome of object type references.
type Counts struct {
	Declared   int
	Generic    int
	Unresolved int
}

func (c *Counts) Add(other Counts) {
	c.Declared += other.Declared
	c.Generic += other.Generic
	c.Unresolved += other.Unresolved
}

func (c Counts) Total() int {
	return c.Declared + c.Generic + c.Unresolved
}

func CountResolutions(class *java.Class) Counts {
	var counts Counts
	class.WalkTypes(func(t *java.Type) {
		if t.Object == nil {
			return
		}
		switch t.Object.Path.Resolved.Kind {
		case java.ResolvedPath:
			counts.Declared++
		case java.ResolvedGeneric:
			counts.Generic++
		default:
			counts.Unresolved++
		}
	})
	return counts
}
