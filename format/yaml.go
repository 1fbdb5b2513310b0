package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/classgraph/java/codebase"
)

type YAMLEncoder struct {
	w       io.Writer
	project *codebase.Project
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(project *codebase.Project) error {
	e.project = project
	return write(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(NewDocument(e.project))
}
