package kruntime

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gosuda/kode/ast"
	"github.com/gosuda/kode/diag"
	"github.com/gosuda/kode/lexer"
	"github.com/gosuda/kode/parser"
)

// SourceExt is the file extension of kode sources.
const SourceExt = ".kode"

// ModuleSource locates the source of an imported module. A missing module
// must be reported with an error matching fs.ErrNotExist.
type ModuleSource interface {
	Open(name string) (path string, src string, err error)
}

// DirSource reads <Dir>/<name>.kode from disk.
type DirSource struct {
	Dir string
}

func (s DirSource) Open(name string) (string, string, error) {
	path := filepath.Join(s.Dir, name+SourceExt)
	data, err := os.ReadFile(path)
	if err != nil {
		return path, "", err
	}
	return path, string(data), nil
}

// MapSource serves modules from memory, keyed by file name ("math.kode").
type MapSource map[string]string

func (s MapSource) Open(name string) (string, string, error) {
	path := name + SourceExt
	src, ok := s[path]
	if !ok {
		return path, "", &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return path, src, nil
}

// importModule resolves name and registers its function definitions. Imports
// inside the module are dropped.
func (in *Interpreter) importModule(name string) error {
	path, src, err := in.modules.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return diag.Newf(diag.KindImport, "Module '%s' not found at path '%s'", name, path)
		}
		return diag.Wrap(diag.KindImport, err, "Error reading module '%s'", name)
	}

	funcs, cached := in.cache.get(path, src)
	if !cached {
		funcs, err = loadModule(name, path, src)
		if err != nil {
			return err
		}
		in.cache.put(path, src, funcs)
	}
	in.logger.Debug().
		Str("module", name).
		Str("path", path).
		Bool("cached", cached).
		Int("funcs", len(funcs)).
		Msg("module imported")
	in.reg.AddModule(&Module{Name: name, Path: path, Funcs: funcs})
	return nil
}

func loadModule(name, path, src string) (map[string]ast.FuncDef, error) {
	lx := lexer.New(src)
	tokens, err := lx.Tokenize()
	if err != nil {
		return nil, diag.Wrap(diag.KindImport, err, "Lexer error on module '%s'", name)
	}
	p := parser.New(path, tokens)
	p.SetPositions(lx.Positions())
	stmts, err := p.ParseModule()
	if err != nil {
		return nil, diag.Wrap(diag.KindImport, err, "Parse error on module '%s'", name)
	}
	funcs := map[string]ast.FuncDef{}
	for _, stmt := range stmts {
		def, ok := stmt.(ast.FuncDef)
		if !ok {
			continue
		}
		def.IsEntry = false
		funcs[def.Name] = def
	}
	return funcs, nil
}
