package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/classgraph/java"
	"github.com/dhamidi/classgraph/java/codebase"
)

// RefsEncoder writes one tab-separated record per object type reference:
// the declaring class, the path as written, the resolution kind and the
// resolved path.
type RefsEncoder struct {
	w              io.Writer
	project        *codebase.Project
	unresolvedOnly bool
}

func NewRefsEncoder(w io.Writer) *RefsEncoder {
	return &RefsEncoder{w: w}
}

// UnresolvedOnly limits the output to references that did not resolve.
func (e *RefsEncoder) UnresolvedOnly(only bool) *RefsEncoder {
	e.unresolvedOnly = only
	return e
}

func (e *RefsEncoder) Encode(project *codebase.Project) error {
	e.project = project
	return write(e.w, e)
}

func (e *RefsEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, c := range e.project.Classes() {
		c.WalkTypes(func(t *java.Type) {
			if t.Object == nil {
				return
			}
			resolved := t.Object.Path.Resolved
			if e.unresolvedOnly && resolved.Kind != java.Unresolved {
				return
			}
			target := resolved.Path.String()
			if target == "" {
				target = "-"
			}
			fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n", c.Path, t.Object.Path.Original, resolved.Kind, target)
		})
	}
	return []byte(sb.String()), nil
}
