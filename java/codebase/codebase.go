package codebase

import (
	"context"
	"sync"

	"github.com/viant/afs"
)

// Codebase keeps the sources below a root directory and a resolved Project
// built from them. Every change rebuilds the project from all known files.
type Codebase struct {
	mu       sync.RWMutex
	rootDir  string
	fs       afs.Service
	opts     []Option
	files    Files
	project  *Project
	failures Failures
}

func New(rootDir string, opts ...Option) *Codebase {
	return NewWithFS(afs.New(), rootDir, opts...)
}

func NewWithFS(fs afs.Service, rootDir string, opts ...Option) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		fs:      fs,
		opts:    opts,
		files:   make(Files),
		project: NewProject(),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll replaces the known files with everything below the root.
func (c *Codebase) ScanAll(ctx context.Context) error {
	files, err := LoadDirWith(ctx, c.fs, c.rootDir)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = files
	return c.rebuildLocked(ctx)
}

// ScanFile reads path from storage and updates it.
func (c *Codebase) ScanFile(ctx context.Context, path string) error {
	content, err := LoadFile(ctx, c.fs, path)
	if err != nil {
		return err
	}
	return c.UpdateFile(ctx, FileKey(path), content)
}

func (c *Codebase) UpdateFile(ctx context.Context, path string, content []byte) error {
	return c.UpdateFiles(ctx, Files{path: content}, nil)
}

func (c *Codebase) RemoveFile(ctx context.Context, path string) error {
	return c.UpdateFiles(ctx, nil, []string{path})
}

// UpdateFiles applies a batch of changes with a single rebuild.
func (c *Codebase) UpdateFiles(ctx context.Context, changed Files, removed []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, path := range removed {
		delete(c.files, path)
	}
	for path, content := range changed {
		c.files[path] = content
	}
	return c.rebuildLocked(ctx)
}

func (c *Codebase) rebuildLocked(ctx context.Context) error {
	project, failures, err := ParsePartial(ctx, c.files, c.opts...)
	if err != nil {
		return err
	}
	ResolveImports(project)
	ResolveTypes(project)
	c.project = project
	c.failures = failures
	return nil
}

// Project returns the latest resolved project. It is never modified after
// being returned.
func (c *Codebase) Project() *Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.project
}

// Failures returns the files that did not parse in the latest rebuild.
func (c *Codebase) Failures() Failures {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.failures
}

func (c *Codebase) File(path string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	content, ok := c.files[path]
	return content, ok
}

func (c *Codebase) FilePaths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files.Paths()
}
