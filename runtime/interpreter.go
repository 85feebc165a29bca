// Package kruntime evaluates kode programs by walking their AST.
package kruntime

import (
	"io"
	"os"

	"github.com/oarkflow/log"

	"github.com/gosuda/kode/ast"
	"github.com/gosuda/kode/diag"
)

const (
	// MaxLoopIterations bounds the body executions of a single while or for
	// statement.
	MaxLoopIterations = 100000
	// DefaultMaxCallDepth is used when Options.MaxCallDepth is not positive.
	DefaultMaxCallDepth = 10000
)

type Options struct {
	// Modules resolves import statements. Defaults to DirSource{Dir: "."}.
	Modules      ModuleSource
	MaxCallDepth int
	// Stdout receives print output when no output hook is installed.
	Stdout io.Writer
	Logger *log.Logger
	// Cache is optional and may be shared between interpreters.
	Cache *ModuleCache
}

type Interpreter struct {
	env      *Env
	reg      *Registry
	modules  ModuleSource
	cache    *ModuleCache
	logger   *log.Logger
	stdout   io.Writer
	output   func(Output)
	maxDepth int
	depth    int
}

func New(opts Options) *Interpreter {
	in := &Interpreter{
		env:      NewEnv(),
		reg:      NewRegistry(),
		modules:  opts.Modules,
		cache:    opts.Cache,
		logger:   opts.Logger,
		stdout:   opts.Stdout,
		maxDepth: opts.MaxCallDepth,
	}
	if in.modules == nil {
		in.modules = DirSource{Dir: "."}
	}
	if in.logger == nil {
		in.logger = DefaultLogger()
	}
	if in.stdout == nil {
		in.stdout = os.Stdout
	}
	if in.maxDepth <= 0 {
		in.maxDepth = DefaultMaxCallDepth
	}
	return in
}

// DefaultLogger only reports errors, on stderr.
func DefaultLogger() *log.Logger {
	return &log.Logger{
		Level:  log.ErrorLevel,
		Writer: &log.IOWriter{Writer: os.Stderr},
	}
}

func (in *Interpreter) Env() *Env {
	return in.env
}

func (in *Interpreter) Registry() *Registry {
	return in.reg
}

// Run declares program and executes its entry point.
func (in *Interpreter) Run(program []ast.Statement) (Value, error) {
	if err := in.Declare(program); err != nil {
		return Void(), err
	}
	return in.Execute()
}

// Declare registers the top-level function definitions of program and
// resolves its imports. Other statements are ignored.
func (in *Interpreter) Declare(program []ast.Statement) error {
	for _, stmt := range program {
		switch s := stmt.(type) {
		case ast.FuncDef:
			in.reg.Define(s)
		case ast.ImportStmt:
			if err := in.importModule(s.Module); err != nil {
				return err
			}
		}
	}
	return nil
}

// Execute invokes the entry point: "main" if declared, otherwise "app".
func (in *Interpreter) Execute() (Value, error) {
	def, name, ok := in.reg.entry()
	if !ok {
		return Void(), diag.New(diag.KindNoEntryPoint,
			"No entry point found. Either 'main' function or 'app' function is required.")
	}
	in.logger.Debug().Str("entry", name).Int("modules", len(in.reg.modules)).Msg("executing entry point")
	return in.callFunction(name, def, nil)
}
