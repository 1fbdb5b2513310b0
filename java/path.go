package java

import "strings"

// Path is a dot-joined qualified name such as "java.util.List".
// The empty Path has no segments.
type Path string

const wildcardSegment = "*"

func NewPath(segments ...string) Path {
	var p Path
	for _, s := range segments {
		p = p.Push(s)
	}
	return p
}

// Push returns p with segment appended.
func (p Path) Push(segment string) Path {
	if p == "" {
		return Path(segment)
	}
	return p + "." + Path(segment)
}

// Pop returns p without its last segment. Popping a single segment path
// yields the empty path.
func (p Path) Pop() Path {
	i := strings.LastIndexByte(string(p), '.')
	if i < 0 {
		return ""
	}
	return p[:i]
}

func (p Path) First() string {
	if i := strings.IndexByte(string(p), '.'); i >= 0 {
		return string(p[:i])
	}
	return string(p)
}

func (p Path) Last() string {
	if i := strings.LastIndexByte(string(p), '.'); i >= 0 {
		return string(p[i+1:])
	}
	return string(p)
}

// Rest returns everything after the first segment.
func (p Path) Rest() Path {
	if i := strings.IndexByte(string(p), '.'); i >= 0 {
		return p[i+1:]
	}
	return ""
}

func (p Path) IsWildcard() bool {
	return p.Last() == wildcardSegment
}

func (p Path) IsEmpty() bool {
	return p == ""
}

func (p Path) Segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), ".")
}

func (p Path) String() string {
	return string(p)
}

// PackagePath groups the declarations that share a package.
type PackagePath Path

func (p PackagePath) String() string {
	return string(p)
}

// ClassPath identifies exactly one declaration project-wide. It converts
// freely from a Path, so a type reference can be looked up directly.
type ClassPath Path

func (c ClassPath) Path() Path {
	return Path(c)
}

func (c ClassPath) String() string {
	return string(c)
}
