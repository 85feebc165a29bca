package kruntime

import "github.com/gosuda/kode/ast"

// EntryName is the registry key of a `fn main` definition.
const EntryName = "main"

// FallbackEntryName is used when no `fn main` exists.
const FallbackEntryName = "app"

// Module is the function table contributed by one import.
type Module struct {
	Name  string
	Path  string
	Funcs map[string]ast.FuncDef
}

// Registry resolves call names. Local definitions win over imported ones;
// imported modules are searched in the order they were first imported.
type Registry struct {
	local   map[string]ast.FuncDef
	modules []*Module
}

func NewRegistry() *Registry {
	return &Registry{local: map[string]ast.FuncDef{}}
}

// Define registers a local function. Entry definitions are stored under
// EntryName.
func (r *Registry) Define(def ast.FuncDef) {
	key := def.Name
	if def.IsEntry {
		key = EntryName
	}
	r.local[key] = def
}

// AddModule registers m. A module imported again replaces the earlier table
// but keeps its place in the search order.
func (r *Registry) AddModule(m *Module) {
	for i, existing := range r.modules {
		if existing.Name == m.Name {
			r.modules[i] = m
			return
		}
	}
	r.modules = append(r.modules, m)
}

func (r *Registry) Local(name string) (ast.FuncDef, bool) {
	def, ok := r.local[name]
	return def, ok
}

func (r *Registry) Lookup(name string) (ast.FuncDef, bool) {
	if def, ok := r.local[name]; ok {
		return def, true
	}
	for _, m := range r.modules {
		if def, ok := m.Funcs[name]; ok {
			return def, true
		}
	}
	return ast.FuncDef{}, false
}

// Modules lists imported module names in search order.
func (r *Registry) Modules() []string {
	names := make([]string, len(r.modules))
	for i, m := range r.modules {
		names[i] = m.Name
	}
	return names
}

// entry picks the program entry point from the local table.
func (r *Registry) entry() (ast.FuncDef, string, bool) {
	if def, ok := r.local[EntryName]; ok {
		return def, EntryName, true
	}
	if def, ok := r.local[FallbackEntryName]; ok {
		return def, FallbackEntryName, true
	}
	return ast.FuncDef{}, "", false
}
