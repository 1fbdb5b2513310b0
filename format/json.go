package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/classgraph/java/codebase"
)

type JSONEncoder struct {
	w       io.Writer
	project *codebase.Project
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(project *codebase.Project) error {
	e.project = project
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(e.project), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
