package codebase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/classgraph/java"
	"github.com/dhamidi/classgraph/java/parser"
)

const srcA = `package p;

import q.C;

public class A<T> extends B {
  C c;
  T value;
  Missing missing;
  Inner inner;

  <U> U pick(T a, U b) { return b; }

  static class Inner {
    T bad;
  }

  class Node {
    T item;
  }
}
`

const srcB = `package p;

class B {
  A.Inner inner;
  A self;
}
`

const srcC = `package q;

public class C {}
`

func sampleFiles() Files {
	return Files{
		"p/A.java": []byte(srcA),
		"p/B.java": []byte(srcB),
		"q/C.java": []byte(srcC),
	}
}

func loadProject(t *testing.T, files Files) *Project {
	t.Helper()
	project, err := Load(context.Background(), files, WithWorkers(2))
	require.NoError(t, err)
	return project
}

func resolution(t *testing.T, typ *java.Type) java.Resolution {
	t.Helper()
	require.NotNil(t, typ.Object, "type %s is not an object type", typ)
	return typ.Object.Path.Resolved
}

func field(t *testing.T, class *java.Class, name string) *java.Field {
	t.Helper()
	for i := range class.Fields {
		if class.Fields[i].Name == name {
			return &class.Fields[i]
		}
	}
	t.Fatalf("%s has no field %s", class.Path, name)
	return nil
}

func TestParseAllIndexesDeclarations(t *testing.T) {
	project, err := ParseAll(context.Background(), sampleFiles())
	require.NoError(t, err)

	assert.Equal(t, []java.ClassPath{"p.A", "p.A.Inner", "p.A.Node", "p.B", "q.C"}, project.SortedPaths())
	assert.Equal(t, []java.PackagePath{"p", "q"}, project.PackageNames())
	assert.ElementsMatch(t, []java.ClassPath{"p.A", "p.A.Inner", "p.A.Node", "p.B"}, project.Packages["p"])
	assert.Equal(t, []java.ClassPath{"p.A.Inner", "p.A.Node"}, project.Children["p.A"])
	assert.Equal(t, java.ClassPath("p.A"), project.Roots["p/A.java"])
	assert.Equal(t, "p/A.java", project.FilePaths["p.A.Inner"])

	a, ok := project.Class("p.A")
	require.True(t, ok)
	assert.Nil(t, a.Inner, "nested declarations are detached")

	inner, ok := project.Class("p.A.Inner")
	require.True(t, ok)
	assert.Same(t, a.Imports, inner.Imports, "declarations of one file share an import table")
	assert.Same(t, a.Imports, project.Imports["p.A"])

	enclosing, ok := project.Enclosing(inner)
	require.True(t, ok)
	assert.Same(t, a, enclosing)
	_, ok = project.Enclosing(a)
	assert.False(t, ok)

	nested := project.Nested("p.A")
	require.Len(t, nested, 2)
	assert.Equal(t, "Inner", nested[0].Name)
	assert.Equal(t, "Node", nested[1].Name)

	assert.Same(t, a, project.FileClass("p/A.java"))
	assert.Nil(t, project.FileClass("missing.java"))
}

func TestResolveImportsInfersEntries(t *testing.T) {
	files := sampleFiles()
	files["r/E.java"] = []byte("package r;\nimport q.*;\nclass E { C c; }\n")

	project, err := ParseAll(context.Background(), files)
	require.NoError(t, err)
	ResolveImports(project)

	a := project.Imports["p.A"]
	tests := []struct {
		name     string
		path     java.Path
		inferred bool
	}{
		{"C", "q.C", false},
		{"Inner", "p.A.Inner", true},
		{"Node", "p.A.Node", true},
		{"B", "p.B", true},
		{"A", "p.A", true},
	}
	for _, tt := range tests {
		imp, ok := a.Lookup(tt.name)
		if assert.True(t, ok, "import %s", tt.name) {
			assert.Equal(t, tt.path, imp.Path, "import %s", tt.name)
			assert.Equal(t, tt.inferred, imp.Inferred, "import %s", tt.name)
		}
	}

	e := project.Imports["r.E"]
	imp, ok := e.Lookup("C")
	require.True(t, ok)
	assert.Equal(t, java.Path("q.C"), imp.Path)
	assert.True(t, imp.Inferred)
	require.Len(t, e.Wildcards, 1)
	assert.Equal(t, java.Path("q.*"), e.Wildcards[0].Path)
}

func TestResolveTypes(t *testing.T) {
	project := loadProject(t, sampleFiles())
	a, _ := project.Class("p.A")

	tests := []struct {
		field string
		want  java.Resolution
	}{
		{"c", java.Resolution{Kind: java.ResolvedPath, Path: "q.C"}},
		{"value", java.Resolution{Kind: java.ResolvedGeneric, Path: "T"}},
		{"missing", java.Resolution{Kind: java.Unresolved}},
		{"inner", java.Resolution{Kind: java.ResolvedPath, Path: "p.A.Inner"}},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, resolution(t, &field(t, a, tt.field).Type))
		})
	}

	assert.Equal(t, java.Resolution{Kind: java.ResolvedPath, Path: "p.B"}, resolution(t, &a.Extends[0]))
}

func TestResolveTypesGenericScopes(t *testing.T) {
	project := loadProject(t, sampleFiles())
	a, _ := project.Class("p.A")

	require.Len(t, a.Methods, 1)
	pick := a.Methods[0]
	assert.Equal(t, java.ResolvedGeneric, resolution(t, pick.ReturnType).Kind, "method generic U")
	assert.Equal(t, java.ResolvedGeneric, resolution(t, &pick.Parameters[0].Type).Kind, "class generic T")
	assert.Equal(t, java.ResolvedGeneric, resolution(t, &pick.Parameters[1].Type).Kind, "method generic U")

	for _, f := range a.Fields {
		if f.Type.Object != nil {
			assert.NotEqual(t, java.Path("U"), f.Type.Object.Path.Resolved.Path, "method generics stay local")
		}
	}

	inner, _ := project.Class("p.A.Inner")
	assert.Equal(t, java.Unresolved, resolution(t, &field(t, inner, "bad").Type).Kind,
		"static nested declarations do not see enclosing generics")

	node, _ := project.Class("p.A.Node")
	assert.Equal(t, java.ResolvedGeneric, resolution(t, &field(t, node, "item").Type).Kind)
}

func TestResolveQualifiedThroughImport(t *testing.T) {
	project := loadProject(t, sampleFiles())
	b, _ := project.Class("p.B")

	assert.Equal(t, java.Resolution{Kind: java.ResolvedPath, Path: "p.A.Inner"}, resolution(t, &field(t, b, "inner").Type))
	assert.Equal(t, java.Resolution{Kind: java.ResolvedPath, Path: "p.A"}, resolution(t, &field(t, b, "self").Type))
}

func TestResolveQualifiedMissingMember(t *testing.T) {
	files := Files{
		"x/Outer.java": []byte("package x;\npublic class Outer {}\n"),
		"p/B.java":     []byte("package p;\nimport x.Outer;\nclass B { Outer.Missing f; }\n"),
	}
	project := loadProject(t, files)
	b, _ := project.Class("p.B")

	got := resolution(t, &field(t, b, "f").Type)
	assert.Equal(t, java.Resolution{Kind: java.ResolvedPath, Path: "x.Outer"}, got)
	_, ok := project.Class(got.Path)
	assert.True(t, ok)
}

func TestExplicitImportBeatsSibling(t *testing.T) {
	files := Files{
		"p/C.java": []byte("package p;\nclass C {}\n"),
		"p/D.java": []byte("package p;\nimport q.C;\nclass D { C c; }\n"),
		"q/C.java": []byte(srcC),
	}
	project := loadProject(t, files)
	d, _ := project.Class("p.D")

	assert.Equal(t, java.Path("q.C"), resolution(t, &field(t, d, "c").Type).Path)
}

func TestResolveDeclaredPathFirst(t *testing.T) {
	files := Files{
		"a/X.java": []byte("package a;\nclass X { b.Y y; java.util.List<b.Y> ys; }\n"),
		"b/Y.java": []byte("package b;\nclass Y {}\n"),
	}
	project := loadProject(t, files)
	x, _ := project.Class("a.X")

	assert.Equal(t, java.Resolution{Kind: java.ResolvedPath, Path: "b.Y"}, resolution(t, &field(t, x, "y").Type))

	ys := field(t, x, "ys").Type
	assert.Equal(t, java.Unresolved, resolution(t, &ys).Kind, "standard library stays unresolved")
	require.NotNil(t, ys.Object.Generics)
	assert.Equal(t, java.Path("b.Y"), resolution(t, ys.Object.Generics.Arguments[0].Type).Path)
}

func TestCountResolutions(t *testing.T) {
	project := loadProject(t, sampleFiles())
	a, _ := project.Class("p.A")

	counts := CountResolutions(a)
	// B, C and Inner are declared; value and the three types of pick are generic.
	assert.Equal(t, Counts{Declared: 3, Generic: 4, Unresolved: 1}, counts)
	assert.Equal(t, 8, counts.Total())
}

func TestParseAllFailures(t *testing.T) {
	files := sampleFiles()
	files["bad/X.java"] = []byte("package bad;\nclass { }\n")
	files["bad/Y.java"] = []byte("class Y {")

	_, err := ParseAll(context.Background(), files)
	require.Error(t, err)

	var failures Failures
	require.True(t, errors.As(err, &failures))
	require.Len(t, failures, 2)
	assert.Equal(t, "bad/X.java", failures[0].Path)
	assert.Equal(t, "bad/Y.java", failures[1].Path)

	x := failures.ForFile("bad/X.java")
	require.NotNil(t, x)
	line, column := x.Position()
	assert.Equal(t, 2, line)
	assert.Equal(t, 7, column)
	assert.Equal(t, parser.ErrExpectedToken, x.Err.Kind)
	assert.Contains(t, x.Error(), "bad/X.java:2:7: expected token")

	y := failures.ForFile("bad/Y.java")
	assert.Equal(t, parser.ErrExpectedTokenEOF, y.Err.Kind)
	assert.Equal(t, len("class Y {"), y.Offset())
	assert.Nil(t, failures.ForFile("p/A.java"))

	assert.Contains(t, err.Error(), "2 files failed to parse")
}

func TestParsePartialKeepsParsedFiles(t *testing.T) {
	files := sampleFiles()
	files["bad/X.java"] = []byte("class { }")

	project, failures, err := ParsePartial(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Len(t, project.Types, 5)
	_, ok := project.Roots["bad/X.java"]
	assert.False(t, ok)
}

func TestParseAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseAll(ctx, sampleFiles())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDuplicateRootSkipped(t *testing.T) {
	files := Files{
		"one/A.java": []byte("package p;\nclass A { int first; }\n"),
		"two/A.java": []byte("package p;\nclass A { int second; }\n"),
	}
	project := loadProject(t, files)

	a, ok := project.Class("p.A")
	require.True(t, ok)
	assert.Equal(t, "first", a.Fields[0].Name)
	assert.Equal(t, "one/A.java", project.FilePaths["p.A"])
	_, ok = project.Roots["two/A.java"]
	assert.False(t, ok)
}

func TestLineColumn(t *testing.T) {
	text := []byte("ab\ncd\n")
	tests := []struct {
		offset       int
		line, column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{100, 3, 1},
		{-5, 1, 1},
	}
	for _, tt := range tests {
		line, column := LineColumn(text, tt.offset)
		assert.Equal(t, tt.line, line, "line at %d", tt.offset)
		assert.Equal(t, tt.column, column, "column at %d", tt.offset)
	}
}
