package codebase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/classgraph/java"
)

func TestOffsetPosition(t *testing.T) {
	text := []byte("a\U0001F600b\nc")
	tests := []struct {
		offset int
		pos    protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{1, protocol.Position{Line: 0, Character: 1}},
		{5, protocol.Position{Line: 0, Character: 3}},
		{6, protocol.Position{Line: 0, Character: 4}},
		{7, protocol.Position{Line: 1, Character: 0}},
		{8, protocol.Position{Line: 1, Character: 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.pos, OffsetPosition(text, tt.offset), "offset %d", tt.offset)
		assert.Equal(t, tt.offset, PositionOffset(text, tt.pos), "position %+v", tt.pos)
	}

	assert.Equal(t, 6, PositionOffset(text, protocol.Position{Line: 0, Character: 100}))
	assert.Equal(t, len(text), PositionOffset(text, protocol.Position{Line: 5, Character: 0}))
}

func TestDiagnostics(t *testing.T) {
	files := Files{
		"A.java": []byte("class { }"),
		"B.java": []byte("class B {\n"),
	}
	_, failures, err := ParsePartial(context.Background(), files)
	require.NoError(t, err)

	diagnostics := Diagnostics(failures)
	require.Len(t, diagnostics, 2)

	a := diagnostics["A.java"]
	require.Len(t, a, 1)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 6},
		End:   protocol.Position{Line: 0, Character: 7},
	}, a[0].Range)
	require.NotNil(t, a[0].Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *a[0].Severity)
	assert.Equal(t, "classgraph", *a[0].Source)
	assert.Contains(t, a[0].Message, "expected token")

	b := diagnostics["B.java"]
	require.Len(t, b, 1)
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, b[0].Range.Start)
	assert.Equal(t, b[0].Range.Start, b[0].Range.End)
}

func TestDocumentSymbol(t *testing.T) {
	project := loadProject(t, sampleFiles())
	a := project.FileClass("p/A.java")
	require.NotNil(t, a)

	symbol := DocumentSymbol(project, a, []byte(srcA))
	assert.Equal(t, "A", symbol.Name)
	assert.Equal(t, protocol.SymbolKindClass, symbol.Kind)
	assert.Equal(t, protocol.Position{Line: 4, Character: 13}, symbol.SelectionRange.Start)
	assert.Equal(t, protocol.Position{Line: 4, Character: 0}, symbol.Range.Start)

	var names []string
	for _, child := range symbol.Children {
		names = append(names, child.Name)
	}
	assert.Equal(t, []string{"c", "value", "missing", "inner", "pick", "Inner", "Node"}, names)

	pick := symbol.Children[4]
	assert.Equal(t, protocol.SymbolKindMethod, pick.Kind)
	assert.Equal(t, "<U> pick(T a, U b) U", *pick.Detail)
	assert.Equal(t, protocol.SymbolKindField, symbol.Children[0].Kind)
	assert.Equal(t, "C", *symbol.Children[0].Detail)
	require.Len(t, symbol.Children[5].Children, 1)
	assert.Equal(t, "bad", symbol.Children[5].Children[0].Name)
}

func TestDocumentSymbolKinds(t *testing.T) {
	src := "enum Color { RED, GREEN; Color() {} }"
	project := loadProject(t, Files{"Color.java": []byte(src)})

	symbol := DocumentSymbol(project, project.FileClass("Color.java"), []byte(src))
	assert.Equal(t, protocol.SymbolKindEnum, symbol.Kind)
	require.Len(t, symbol.Children, 3)

	green := symbol.Children[1]
	assert.Equal(t, "GREEN", green.Name)
	assert.Equal(t, protocol.SymbolKindEnumMember, green.Kind)
	assert.Equal(t, protocol.UInteger(strings.Index(src, "GREEN")), green.SelectionRange.Start.Character)
	assert.Equal(t, protocol.SymbolKindConstructor, symbol.Children[2].Kind)

	tests := []struct {
		kind java.ClassKind
		want protocol.SymbolKind
	}{
		{java.ClassKindClass, protocol.SymbolKindClass},
		{java.ClassKindInterface, protocol.SymbolKindInterface},
		{java.ClassKindAnnotation, protocol.SymbolKindInterface},
		{java.ClassKindEnum, protocol.SymbolKindEnum},
		{java.ClassKindRecord, protocol.SymbolKindStruct},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classSymbolKind(tt.kind), "kind %s", tt.kind)
	}
}

func TestHoverAt(t *testing.T) {
	project := loadProject(t, sampleFiles())
	a := project.FileClass("p/A.java")

	tests := []struct {
		at   string
		want string
	}{
		{"A<T>", "class p.A"},
		{"value;", "p.A.value T"},
		{"pick", "p.A.<U> pick(T a, U b) U"},
		{"Inner {", "class p.A.Inner"},
		{"bad", "p.A.Inner.bad T"},
	}
	for _, tt := range tests {
		offset := strings.Index(srcA, tt.at)
		require.GreaterOrEqual(t, offset, 0, tt.at)
		value, ok := HoverAt(project, a, offset)
		if assert.True(t, ok, tt.at) {
			assert.Equal(t, "```java\n"+tt.want+"\n```", value)
		}
	}

	_, ok := HoverAt(project, a, strings.Index(srcA, "import"))
	assert.False(t, ok)
}

func TestURIConversion(t *testing.T) {
	path, err := uriToPath("file:///home/dev/src/A.java")
	require.NoError(t, err)
	assert.Equal(t, "/home/dev/src/A.java", path)

	path, err = uriToPath("mem://localhost/A.java")
	require.NoError(t, err)
	assert.Equal(t, "mem://localhost/A.java", path)

	assert.Equal(t, "file:///home/dev/src/A.java", pathToURI("/home/dev/src/A.java"))
	assert.Equal(t, "mem://localhost/A.java", pathToURI("mem://localhost/A.java"))
}
