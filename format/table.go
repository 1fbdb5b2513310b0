package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/dhamidi/classgraph/java/codebase"
)

// TableEncoder summarizes every declaration with its member counts and the
// resolution outcome of its type references.
type TableEncoder struct {
	w       io.Writer
	project *codebase.Project
}

func NewTableEncoder(w io.Writer) *TableEncoder {
	return &TableEncoder{w: w}
}

func (e *TableEncoder) Encode(project *codebase.Project) error {
	e.project = project
	return write(e.w, e)
}

func (e *TableEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Path", "Kind", "Fields", "Methods", "Declared", "Generic", "Unresolved"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	var total codebase.Counts
	classes := e.project.Classes()
	for _, c := range classes {
		counts := codebase.CountResolutions(c)
		total.Add(counts)
		table.Append([]string{
			c.Path.String(),
			string(c.Kind),
			fmt.Sprintf("%d", len(c.Fields)),
			fmt.Sprintf("%d", len(c.Methods)),
			fmt.Sprintf("%d", counts.Declared),
			fmt.Sprintf("%d", counts.Generic),
			fmt.Sprintf("%d", counts.Unresolved),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(classes)),
		"", "", "",
		fmt.Sprintf("%d", total.Declared),
		fmt.Sprintf("%d", total.Generic),
		fmt.Sprintf("%d", total.Unresolved),
	})

	table.Render()
	return buf.Bytes(), nil
}
