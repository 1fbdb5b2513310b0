package codebase

import (
	"slices"

	"github.com/dhamidi/classgraph/java"
)

// ResolveImports completes every file's import table with inferred entries.
// For a file whose root declaration is R it adds, without replacing any
// entry already present:
//
//  1. the declarations nested directly in R,
//  2. the declarations directly beneath R's enclosing path, which is R's
//     package for a top-level declaration,
//  3. the declarations directly beneath the prefix of each wildcard import.
//
// Explicit imports therefore win over all inferred entries, and earlier
// steps win over later ones.
func ResolveImports(p *Project) {
	roots := make([]java.ClassPath, 0, len(p.Imports))
	for root := range p.Imports {
		roots = append(roots, root)
	}
	slices.Sort(roots)

	for _, root := range roots {
		imports := p.Imports[root]
		owner := root.Path()

		inferred := 0
		for _, child := range p.Children[owner] {
			if imports.Infer(child.Path()) {
				inferred++
			}
		}
		for _, sibling := range p.Children[owner.Pop()] {
			if imports.Infer(sibling.Path()) {
				inferred++
			}
		}
		for _, wildcard := range imports.Wildcards {
			for _, member := range p.Children[wildcard.Path.Pop()] {
				if imports.Infer(member.Path()) {
					inferred++
				}
			}
		}
		log.Debugf("%s: %d inferred imports", root, inferred)
	}
}
