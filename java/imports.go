package java

// Import is one entry of a file's import table.
type Import struct {
	Path     Path
	Static   bool
	Inferred bool
}

// Imports is the import table of one compilation unit. Every declaration
// parsed from the same file points at the same table.
type Imports struct {
	Names     map[string]Import
	Wildcards []Import
}

func NewImports() *Imports {
	return &Imports{Names: make(map[string]Import)}
}

// Add records an explicit import. A later explicit import of the same
// simple name replaces the earlier one.
func (i *Imports) Add(imp Import) {
	if imp.Path.IsWildcard() {
		i.Wildcards = append(i.Wildcards, imp)
		return
	}
	i.Names[imp.Path.Last()] = imp
}

// Infer records path under its simple name unless that name is already
// bound. It reports whether the entry was inserted.
func (i *Imports) Infer(path Path) bool {
	name := path.Last()
	if _, ok := i.Names[name]; ok {
		return false
	}
	i.Names[name] = Import{Path: path, Inferred: true}
	return true
}

func (i *Imports) Lookup(name string) (Import, bool) {
	if i == nil {
		return Import{}, false
	}
	imp, ok := i.Names[name]
	return imp, ok
}
