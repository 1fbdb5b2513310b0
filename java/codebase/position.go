package codebase

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/classgraph/java"
)

// OffsetPosition converts a byte offset into a zero-based LSP position.
// Characters are counted in UTF-16 code units.
func OffsetPosition(text []byte, offset int) protocol.Position {
	offset = min(max(offset, 0), len(text))
	lineStart := bytes.LastIndexByte(text[:offset], '\n') + 1
	line := bytes.Count(text[:lineStart], []byte{'\n'})
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(utf16Len(text[lineStart:offset])),
	}
}

// PositionOffset is the inverse of OffsetPosition. Positions past the end
// of a line clamp to the line end.
func PositionOffset(text []byte, pos protocol.Position) int {
	offset := 0
	for line := protocol.UInteger(0); line < pos.Line; line++ {
		i := bytes.IndexByte(text[offset:], '\n')
		if i < 0 {
			return len(text)
		}
		offset += i + 1
	}
	units := protocol.UInteger(0)
	for offset < len(text) && text[offset] != '\n' && units < pos.Character {
		r, size := utf8.DecodeRune(text[offset:])
		units += protocol.UInteger(utf16.RuneLen(r))
		offset += size
	}
	return offset
}

func SpanRange(text []byte, span java.Span) protocol.Range {
	return protocol.Range{
		Start: OffsetPosition(text, span.Start),
		End:   OffsetPosition(text, span.End),
	}
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
		b = b[size:]
	}
	return n
}

// findIdent locates the first occurrence of name at or after from that is
// not part of a longer identifier.
func findIdent(text []byte, from int, name string) (java.Span, bool) {
	if from < 0 || from > len(text) || name == "" {
		return java.Span{}, false
	}
	for from <= len(text) {
		i := bytes.Index(text[from:], []byte(name))
		if i < 0 {
			return java.Span{}, false
		}
		start := from + i
		end := start + len(name)
		if !identByteAt(text, start-1) && !identByteAt(text, end) {
			return java.Span{Start: start, End: end}, true
		}
		from = start + 1
	}
	return java.Span{}, false
}

func identByteAt(text []byte, i int) bool {
	if i < 0 || i >= len(text) {
		return false
	}
	c := text[i]
	return c == '_' || c == '$' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
