// Package format renders resolved projects and parse failures.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/classgraph/java/codebase"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(project *codebase.Project) error
}

// Names lists the formats accepted by NewEncoder.
var Names = []string{"json", "yaml", "line", "table", "java", "refs"}

func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	case "table":
		return NewTableEncoder(w), nil
	case "java":
		return NewJavaEncoder(w), nil
	case "refs":
		return NewRefsEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q, want one of %v", name, Names)
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
