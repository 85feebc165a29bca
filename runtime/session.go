package kruntime

import (
	"github.com/gosuda/kode/ast"
	"github.com/gosuda/kode/parser"
)

// Session evaluates source incrementally against one persistent global
// scope and registry. It backs the interactive shell.
type Session struct {
	in *Interpreter
}

func NewSession(opts Options) *Session {
	return &Session{in: New(opts)}
}

func (s *Session) Interpreter() *Interpreter {
	return s.in
}

// Eval parses src and runs it statement by statement. Function definitions
// and imports are registered, everything else executes immediately. The
// result is the value of the final statement when it is an expression
// statement, the returned value if a return statement ran, and void
// otherwise.
func (s *Session) Eval(file, src string) (Value, error) {
	stmts, err := parser.ParseSource(file, src)
	if err != nil {
		return Void(), err
	}
	last := Void()
	for _, stmt := range stmts {
		last = Void()
		switch st := stmt.(type) {
		case ast.FuncDef:
			s.in.reg.Define(st)
			continue
		case ast.ImportStmt:
			if err := s.in.importModule(st.Module); err != nil {
				return Void(), err
			}
			continue
		case ast.ExprStmt:
			v, err := s.in.evalExpr(st.Expr)
			if err != nil {
				return Void(), err
			}
			last = v
			continue
		}
		res, err := s.in.execStmt(stmt)
		if err != nil {
			return Void(), err
		}
		if res.kind == resultReturn {
			return res.value, nil
		}
	}
	return last, nil
}

// Run executes the entry point declared so far in the session.
func (s *Session) Run() (Value, error) {
	return s.in.Execute()
}
