package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/classgraph/java"
	"github.com/dhamidi/classgraph/java/codebase"
)

// LineEncoder writes one tab-separated record per declaration, field and
// method. Empty columns are written as "-".
type LineEncoder struct {
	w       io.Writer
	project *codebase.Project
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(project *codebase.Project) error {
	e.project = project
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, c := range e.project.Classes() {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n", c.Kind, c.Path, c.Visibility, modifiersStr(c.Modifiers))

		for _, f := range c.Fields {
			fmt.Fprintf(&sb, "field\t%s.%s\t%s\t%s\t%s\n",
				c.Path,
				f.Name,
				f.Type.String(),
				f.Visibility,
				modifiersStr(f.Modifiers),
			)
		}

		for i := range c.Methods {
			m := &c.Methods[i]
			fmt.Fprintf(&sb, "%s\t%s.%s\t%s\t%s\t%s\t%s\n",
				m.Kind,
				c.Path,
				m.Name,
				returnTypeStr(m),
				parametersStr(m.Parameters),
				m.Visibility,
				modifiersStr(m.Modifiers),
			)
		}
	}
	return []byte(sb.String()), nil
}

func modifiersStr(mods java.Modifiers) string {
	names := mods.Names()
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

func returnTypeStr(m *java.Method) string {
	if m.ReturnType == nil {
		return "-"
	}
	return m.ReturnType.String()
}

func parametersStr(params []java.Parameter) string {
	if len(params) == 0 {
		return "-"
	}
	var parts []string
	for _, p := range params {
		t := p.Type.String()
		if p.Varargs {
			t += "..."
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, ",")
}
