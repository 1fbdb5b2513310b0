package codebase

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dhamidi/classgraph/java/parser"
)

// FileError is the parse failure of one file together with its source text.
type FileError struct {
	Path string
	Text []byte
	Err  *parser.Error
}

func (e *FileError) Error() string {
	line, column := e.Position()
	return fmt.Sprintf("%s:%d:%d: %v", e.Path, line, column, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Offset returns the byte offset the failure points at. Failures at end of
// input point past the last byte.
func (e *FileError) Offset() int {
	if e.Err.Span == nil {
		return len(e.Text)
	}
	return e.Err.Span.Start
}

// Position returns the 1-based line and column of the failure.
func (e *FileError) Position() (line, column int) {
	return LineColumn(e.Text, e.Offset())
}

// LineColumn converts a byte offset into a 1-based line and byte column by
// counting newlines before offset.
func LineColumn(text []byte, offset int) (line, column int) {
	offset = min(max(offset, 0), len(text))
	before := text[:offset]
	line = bytes.Count(before, []byte{'\n'}) + 1
	column = offset - bytes.LastIndexByte(before, '\n')
	return line, column
}

// Failures lists every file that failed to parse. It is never empty when
// returned as an error.
type Failures []*FileError

func (f Failures) Error() string {
	if len(f) == 1 {
		return f[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d files failed to parse:", len(f))
	for _, err := range f {
		sb.WriteString("\n  ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// ForFile returns the failure of path, or nil.
func (f Failures) ForFile(path string) *FileError {
	for _, err := range f {
		if err.Path == path {
			return err
		}
	}
	return nil
}
