package kode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosuda/kode/ast"
	"github.com/gosuda/kode/lexer"
	"github.com/gosuda/kode/parser"
	kruntime "github.com/gosuda/kode/runtime"
)

// Tokenize returns the token stream of src.
func Tokenize(src string) ([]lexer.Token, error) {
	return lexer.Tokenize(src)
}

// Parse only returns the AST for tooling use.
func Parse(file, src string) ([]ast.Statement, error) {
	return parser.ParseSource(file, src)
}

// Compile parses src and builds an interpreter with the program declared:
// functions are registered and imports resolved. Call Execute to run it.
func Compile(file, src string, opts kruntime.Options) (*kruntime.Interpreter, error) {
	program, err := parser.ParseSource(file, src)
	if err != nil {
		return nil, err
	}
	in := kruntime.New(opts)
	if err := in.Declare(program); err != nil {
		return nil, err
	}
	return in, nil
}

// Run compiles src and executes its entry point.
func Run(file, src string, opts kruntime.Options) (kruntime.Value, error) {
	in, err := Compile(file, src, opts)
	if err != nil {
		return kruntime.Void(), err
	}
	return in.Execute()
}

// RunFile runs the program stored at path. Imports resolve next to the file
// unless opts.Modules is set.
func RunFile(path string, opts kruntime.Options) (kruntime.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return kruntime.Void(), err
	}
	if opts.Modules == nil {
		opts.Modules = kruntime.DirSource{Dir: filepath.Dir(path)}
	}
	return Run(path, string(src), opts)
}

// DefaultEntryFile is the program RunFiles starts from when no entry is given.
const DefaultEntryFile = "main" + kruntime.SourceExt

// RunFiles runs the program stored under entry in files, resolving imports
// against the same map. Print output is collected and returned instead of
// written to opts.Stdout.
func RunFiles(files map[string]string, entry string, opts kruntime.Options) ([]kruntime.Output, kruntime.Value, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		entry = DefaultEntryFile
	}
	if filepath.Ext(entry) == "" {
		entry += kruntime.SourceExt
	}
	src, ok := files[entry]
	if !ok {
		return nil, kruntime.Void(), fmt.Errorf("entry file %q not provided", entry)
	}
	opts.Modules = kruntime.MapSource(files)
	in, err := Compile(entry, src, opts)
	if err != nil {
		return nil, kruntime.Void(), err
	}
	var outputs []kruntime.Output
	in.SetOutputHook(func(out kruntime.Output) {
		outputs = append(outputs, out)
	})
	v, err := in.Execute()
	return outputs, v, err
}
