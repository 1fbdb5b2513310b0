package format

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/classgraph/java/codebase"
)

const sample = `package p;

import q.C;

public class A<T> extends B implements C {
  private static final int MAX = 1;

  @Deprecated
  public <U> U pick(T a, U b) throws E { return null; }

  A() {}

  enum Color { RED, GREEN }
}
`

func loadSample(t *testing.T) *codebase.Project {
	t.Helper()
	project, err := codebase.Load(context.Background(), codebase.Files{"p/A.java": []byte(sample)})
	require.NoError(t, err)
	return project
}

func encode(t *testing.T, name string, project *codebase.Project) string {
	t.Helper()
	var buf bytes.Buffer
	enc, err := NewEncoder(name, &buf)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(project))
	return buf.String()
}

func findClass(t *testing.T, doc *Document, path string) Class {
	t.Helper()
	for _, c := range doc.Classes {
		if c.Path == path {
			return c
		}
	}
	t.Fatalf("no class %s in document", path)
	return Class{}
}

func TestNewEncoderUnknown(t *testing.T) {
	_, err := NewEncoder("xml", &bytes.Buffer{})
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestJSONEncoder(t *testing.T) {
	out := encode(t, "json", loadSample(t))

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Classes, 2)

	a := findClass(t, &doc, "p.A")
	assert.Equal(t, "p/A.java", a.File)
	assert.Equal(t, "class", a.Kind)
	assert.Equal(t, []string{"T"}, a.Generics)
	assert.Equal(t, Type{Name: "B", Resolution: "unresolved"}, a.Extends[0])
	assert.Equal(t, Type{Name: "C", Resolution: "path", Target: "q.C"}, a.Implements[0])

	require.Len(t, a.Fields, 1)
	assert.Equal(t, Type{Name: "int"}, a.Fields[0].Type)
	assert.Equal(t, []string{"static", "final"}, a.Fields[0].Modifiers)

	require.Len(t, a.Methods, 2)
	pick := a.Methods[0]
	assert.Equal(t, "method", pick.Kind)
	assert.Equal(t, []string{"U"}, pick.Generics)
	assert.Equal(t, &Type{Name: "U", Resolution: "generic"}, pick.ReturnType)
	assert.Equal(t, []string{"Deprecated"}, pick.Annotations)
	assert.Equal(t, "constructor", a.Methods[1].Kind)
	assert.Nil(t, a.Methods[1].ReturnType)

	color := findClass(t, &doc, "p.A.Color")
	assert.Equal(t, "p.A", color.Parent)
	assert.Equal(t, []string{"RED", "GREEN"}, color.EnumConstants)
}

func TestYAMLEncoder(t *testing.T) {
	out := encode(t, "yaml", loadSample(t))
	assert.True(t, strings.HasPrefix(out, "classes:\n"))

	var doc Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	a := findClass(t, &doc, "p.A")
	assert.Equal(t, "q.C", a.Implements[0].Target)
	assert.Equal(t, "T", a.Methods[0].Parameters[0].Type.Name)
	assert.Equal(t, "generic", a.Methods[0].Parameters[0].Type.Resolution)
}

func TestLineEncoder(t *testing.T) {
	out := encode(t, "line", loadSample(t))
	want := strings.Join([]string{
		"class\tp.A\tpublic\t-",
		"field\tp.A.MAX\tint\tprivate\tstatic,final",
		"method\tp.A.pick\tU\tT,U\tpublic\t-",
		"constructor\tp.A.A\t-\t-\tpackage\t-",
		"enum\tp.A.Color\tpackage\tstatic",
	}, "\n") + "\n"
	assert.Equal(t, want, out)
}

func TestJavaEncoder(t *testing.T) {
	out := encode(t, "java", loadSample(t))
	want := `package p;

import q.C;

public class A<T> extends B implements C {
    private static final int MAX;
    @Deprecated
    public <U> U pick(T a, U b) throws E;
    A();
    enum Color {
        RED, GREEN;
    }
}
`
	assert.Equal(t, want, out)
}

func TestTableEncoder(t *testing.T) {
	out := encode(t, "table", loadSample(t))

	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "UNRESOLVED")
	assert.Contains(t, out, "p.A.Color")
	assert.Contains(t, out, "TOTAL 2")
}

func TestTypeArguments(t *testing.T) {
	files := codebase.Files{
		"p/M.java": []byte("package p;\nclass M<K> { java.util.Map<K, ? extends M<K>> map; }\n"),
	}
	project, err := codebase.Load(context.Background(), files)
	require.NoError(t, err)

	doc := NewDocument(project)
	field := doc.Classes[0].Fields[0].Type
	assert.Equal(t, "unresolved", field.Resolution)
	require.Len(t, field.Arguments, 2)
	assert.Equal(t, Type{Name: "K", Resolution: "generic"}, field.Arguments[0])

	wildcard := field.Arguments[1]
	assert.Empty(t, wildcard.Resolution)
	require.Len(t, wildcard.Arguments, 1)
	assert.Equal(t, "p.M", wildcard.Arguments[0].Target)
}

func TestRefsEncoder(t *testing.T) {
	project := loadSample(t)

	out := encode(t, "refs", project)
	assert.Equal(t, strings.Join([]string{
		"p.A\tB\tunresolved\t-",
		"p.A\tC\tpath\tq.C",
		"p.A\tT\tgeneric\tT",
		"p.A\tU\tgeneric\tU",
		"p.A\tE\tunresolved\t-",
		"p.A\tU\tgeneric\tU",
	}, "\n")+"\n", out)

	var buf bytes.Buffer
	require.NoError(t, NewRefsEncoder(&buf).UnresolvedOnly(true).Encode(project))
	assert.Equal(t, "p.A\tB\tunresolved\t-\np.A\tE\tunresolved\t-\n", buf.String())
}
