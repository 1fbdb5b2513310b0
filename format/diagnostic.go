package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/classgraph/java/codebase"
)

// DiagnosticWriter prints parse failures as a location line followed by
// the offending source line with the failing token underlined:
//
//	src/A.java:2:7: error: expected token: expected identifier, got "{" at 19
//	   2 | class { }
//	     |       ^
type DiagnosticWriter struct {
	w     io.Writer
	color bool

	errorStyle    lipgloss.Style
	locationStyle lipgloss.Style
	gutterStyle   lipgloss.Style
	markStyle     lipgloss.Style
}

func NewDiagnosticWriter(w io.Writer, color bool) *DiagnosticWriter {
	return &DiagnosticWriter{
		w:             w,
		color:         color,
		errorStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		locationStyle: lipgloss.NewStyle().Bold(true),
		gutterStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		markStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	}
}

func (d *DiagnosticWriter) render(style lipgloss.Style, s string) string {
	if !d.color {
		return s
	}
	return style.Render(s)
}

func (d *DiagnosticWriter) Write(failures codebase.Failures) error {
	for _, f := range failures {
		if _, err := io.WriteString(d.w, d.Render(f)); err != nil {
			return err
		}
	}
	return nil
}

// Render formats one failure. The message is the parser's error text
// without the location prefix.
func (d *DiagnosticWriter) Render(f *codebase.FileError) string {
	line, column := f.Position()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s\n",
		d.render(d.locationStyle, fmt.Sprintf("%s:%d:%d:", f.Path, line, column)),
		d.render(d.errorStyle, "error:"),
		f.Err.Error(),
	)

	text := sourceLine(f.Text, f.Offset())
	gutter := fmt.Sprintf("%4d | ", line)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	sb.WriteString(d.render(d.gutterStyle, gutter))
	sb.WriteString(text)
	sb.WriteString("\n")

	sb.WriteString(d.render(d.gutterStyle, blank))
	sb.WriteString(padding(text, column-1))
	sb.WriteString(d.render(d.markStyle, underline(f)))
	sb.WriteString("\n")
	return sb.String()
}

func sourceLine(text []byte, offset int) string {
	offset = min(max(offset, 0), len(text))
	start := bytes.LastIndexByte(text[:offset], '\n') + 1
	end := bytes.IndexByte(text[offset:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += offset
	}
	return strings.TrimRight(string(text[start:end]), "\r")
}

// padding keeps tabs so the mark lines up with the source line.
func padding(line string, column int) string {
	var sb strings.Builder
	for i, r := range line {
		if i >= column {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func underline(f *codebase.FileError) string {
	if f.Err.Span == nil {
		return "^"
	}
	span := f.Text[f.Err.Span.Start:min(f.Err.Span.End, len(f.Text))]
	if i := bytes.IndexByte(span, '\n'); i >= 0 {
		span = span[:i]
	}
	if width := utf8.RuneCount(span); width > 1 {
		return "^" + strings.Repeat("~", width-1)
	}
	return "^"
}
