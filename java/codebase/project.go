package codebase

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sort"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/classgraph/java"
	"github.com/dhamidi/classgraph/java/parser"
)

var log = commonlog.GetLogger("classgraph.codebase")

// Files maps a file path to its complete source text.
type Files map[string][]byte

// Paths returns the file paths in sorted order.
func (f Files) Paths() []string {
	paths := make([]string, 0, len(f))
	for path := range f {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

type Option func(*options)

type options struct {
	workers int
}

// WithWorkers bounds the number of files parsed concurrently.
// Values below one mean one worker per CPU.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Project indexes every declaration of a set of files by its qualified path.
// Nested declarations are detached from their parent's Inner list and
// stored as entries of their own.
type Project struct {
	// Types owns every declaration.
	Types map[java.ClassPath]*java.Class
	// Paths is the set of all declared paths.
	Paths map[java.ClassPath]struct{}
	// Imports holds one shared import table per file, keyed by the path
	// of the file's root declaration.
	Imports map[java.ClassPath]*java.Imports
	// FilePaths maps a declaration to the file it was parsed from.
	FilePaths map[java.ClassPath]string
	// Packages groups declarations by package.
	Packages map[java.PackagePath][]java.ClassPath
	// Children maps a path to the declarations directly beneath it.
	Children map[java.Path][]java.ClassPath
	// Roots maps a file to its root declaration.
	Roots map[string]java.ClassPath
}

func NewProject() *Project {
	return &Project{
		Types:     make(map[java.ClassPath]*java.Class),
		Paths:     make(map[java.ClassPath]struct{}),
		Imports:   make(map[java.ClassPath]*java.Imports),
		FilePaths: make(map[java.ClassPath]string),
		Packages:  make(map[java.PackagePath][]java.ClassPath),
		Children:  make(map[java.Path][]java.ClassPath),
		Roots:     make(map[string]java.ClassPath),
	}
}

// ParseAll parses every file and indexes the result. It returns the project
// only if every file parsed; otherwise the error is a Failures listing each
// file that did not.
func ParseAll(ctx context.Context, files Files, opts ...Option) (*Project, error) {
	project, failures, err := ParsePartial(ctx, files, opts...)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return nil, failures
	}
	return project, nil
}

// ParsePartial is ParseAll for callers that want the files that did parse
// even when others failed. Files that fail are not indexed.
func ParsePartial(ctx context.Context, files Files, opts ...Option) (*Project, Failures, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	paths := files.Paths()
	roots := make([]*java.Class, len(paths))
	errs := make([]*FileError, len(paths))

	var group errgroup.Group
	group.SetLimit(o.workers)
	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			root, err := parser.Parse(files[path])
			if err != nil {
				var perr *parser.Error
				if !errors.As(err, &perr) {
					return fmt.Errorf("parse %s: %w", path, err)
				}
				errs[i] = &FileError{Path: path, Text: files[path], Err: perr}
				return nil
			}
			roots[i] = root
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	project := NewProject()
	var failures Failures
	for i, path := range paths {
		if errs[i] != nil {
			log.Debugf("%s", errs[i])
			failures = append(failures, errs[i])
			continue
		}
		project.add(path, roots[i])
	}
	log.Infof("parsed %d files, %d declarations, %d failures", len(paths), len(project.Types), len(failures))
	return project, failures, nil
}

func (p *Project) add(file string, root *java.Class) {
	rootPath := java.ClassPath(root.Path)
	if _, dup := p.Types[rootPath]; dup {
		log.Warningf("%s: %s already declared in %s, skipping file", file, rootPath, p.FilePaths[rootPath])
		return
	}
	p.Roots[file] = rootPath
	p.Imports[rootPath] = root.Imports
	p.addClass(file, root)
}

func (p *Project) addClass(file string, class *java.Class) {
	inner := class.Inner
	class.Inner = nil

	path := java.ClassPath(class.Path)
	if _, dup := p.Types[path]; dup {
		log.Warningf("%s: duplicate declaration %s", file, path)
	} else {
		p.Types[path] = class
		p.Paths[path] = struct{}{}
		p.FilePaths[path] = file
		pkg := java.PackagePath(class.Package)
		p.Packages[pkg] = append(p.Packages[pkg], path)
		parent := class.Path.Pop()
		p.Children[parent] = append(p.Children[parent], path)
	}

	for _, c := range inner {
		p.addClass(file, c)
	}
}

// Class looks up a declaration by qualified path.
func (p *Project) Class(path java.Path) (*java.Class, bool) {
	class, ok := p.Types[java.ClassPath(path)]
	return class, ok
}

// Classes returns every declaration sorted by path.
func (p *Project) Classes() []*java.Class {
	classes := make([]*java.Class, 0, len(p.Types))
	for _, path := range p.SortedPaths() {
		classes = append(classes, p.Types[path])
	}
	return classes
}

func (p *Project) SortedPaths() []java.ClassPath {
	paths := make([]java.ClassPath, 0, len(p.Paths))
	for path := range p.Paths {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// Nested returns the declarations whose enclosing declaration is path, in
// source order.
func (p *Project) Nested(path java.Path) []*java.Class {
	var nested []*java.Class
	for _, child := range p.Children[path] {
		if class := p.Types[child]; class.Parent == path {
			nested = append(nested, class)
		}
	}
	return nested
}

// FileClass returns the root declaration of file, or nil if the file is
// not part of the project.
func (p *Project) FileClass(file string) *java.Class {
	root, ok := p.Roots[file]
	if !ok {
		return nil
	}
	return p.Types[root]
}

// Enclosing returns the declaration that immediately encloses class.
func (p *Project) Enclosing(class *java.Class) (*java.Class, bool) {
	if !class.IsNested() {
		return nil, false
	}
	return p.Class(class.Parent)
}

func (p *Project) PackageNames() []java.PackagePath {
	names := make([]java.PackagePath, 0, len(p.Packages))
	for name := range p.Packages {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load parses files and runs both resolution passes.
func Load(ctx context.Context, files Files, opts ...Option) (*Project, error) {
	project, err := ParseAll(ctx, files, opts...)
	if err != nil {
		return nil, err
	}
	ResolveImports(project)
	ResolveTypes(project)
	return project, nil
}
