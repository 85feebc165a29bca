package kruntime

import (
	"github.com/gosuda/kode/ast"
	"github.com/gosuda/kode/diag"
)

type resultKind int

const (
	resultNone resultKind = iota
	resultReturn
)

type execResult struct {
	kind  resultKind
	value Value
}

func (in *Interpreter) runBody(stmts []ast.Statement) (execResult, error) {
	for _, stmt := range stmts {
		res, err := in.execStmt(stmt)
		if err != nil {
			return execResult{}, err
		}
		if res.kind == resultReturn {
			return res, nil
		}
	}
	return execResult{kind: resultNone}, nil
}

func (in *Interpreter) execStmt(stmt ast.Statement) (execResult, error) {
	switch s := stmt.(type) {
	case ast.LetStmt:
		v, err := in.evalExpr(s.Value)
		if err != nil {
			return execResult{}, err
		}
		in.env.Define(s.Name, v)
		return execResult{kind: resultNone}, nil
	case ast.AssignStmt:
		v, err := in.evalExpr(s.Value)
		if err != nil {
			return execResult{}, err
		}
		if err := in.assign(s.Name, v); err != nil {
			return execResult{}, err
		}
		return execResult{kind: resultNone}, nil
	case ast.PrintStmt:
		v, err := in.evalExpr(s.Value)
		if err != nil {
			return execResult{}, err
		}
		in.emit(v.String())
		return execResult{kind: resultNone}, nil
	case ast.ExprStmt:
		if _, err := in.evalExpr(s.Expr); err != nil {
			return execResult{}, err
		}
		return execResult{kind: resultNone}, nil
	case ast.ReturnStmt:
		v, err := in.evalExpr(s.Value)
		if err != nil {
			return execResult{}, err
		}
		return execResult{kind: resultReturn, value: v}, nil
	case ast.IfStmt:
		cond, err := in.condition(s.Cond, "if")
		if err != nil {
			return execResult{}, err
		}
		if cond {
			return in.runBody(s.Then)
		}
		return in.runBody(s.Else)
	case ast.WhileStmt:
		return in.execWhile(s)
	case ast.ForStmt:
		return in.execFor(s)
	case ast.BlockStmt:
		in.env.Push()
		defer in.env.Pop()
		return in.runBody(s.Body)
	case ast.TryStmt:
		res, err := in.runBody(s.Body)
		if err != nil {
			in.logger.Debug().Err(err).Msg("try body failed, running catch")
			return in.runBody(s.Catch)
		}
		return res, nil
	case ast.FuncDef, ast.ImportStmt:
		// handled by the declaration pass
		return execResult{kind: resultNone}, nil
	default:
		return execResult{}, diag.Newf(diag.KindUnknown, "unsupported statement %T", stmt)
	}
}

func (in *Interpreter) execWhile(s ast.WhileStmt) (execResult, error) {
	for n := 0; ; n++ {
		cond, err := in.loopCondition(s.Cond)
		if err != nil {
			return execResult{}, err
		}
		if !cond {
			return execResult{kind: resultNone}, nil
		}
		if n >= MaxLoopIterations {
			return execResult{}, loopLimitError()
		}
		res, err := in.runBody(s.Body)
		if err != nil || res.kind == resultReturn {
			return res, err
		}
	}
}

// execFor runs a C-style loop in its own scope. Without a condition the body
// and update run exactly once.
func (in *Interpreter) execFor(s ast.ForStmt) (execResult, error) {
	in.env.Push()
	defer in.env.Pop()
	if s.Init != nil {
		if _, err := in.execStmt(s.Init); err != nil {
			return execResult{}, err
		}
	}
	for n := 0; ; n++ {
		if s.Cond != nil {
			cond, err := in.loopCondition(s.Cond)
			if err != nil {
				return execResult{}, err
			}
			if !cond {
				return execResult{kind: resultNone}, nil
			}
		}
		if n >= MaxLoopIterations {
			return execResult{}, loopLimitError()
		}
		res, err := in.runBody(s.Body)
		if err != nil || res.kind == resultReturn {
			return res, err
		}
		if s.Update != nil {
			if _, err := in.execStmt(s.Update); err != nil {
				return execResult{}, err
			}
		}
		if s.Cond == nil {
			return execResult{kind: resultNone}, nil
		}
	}
}

func loopLimitError() error {
	return diag.Newf(diag.KindInfiniteLoop,
		"Possible infinite loop detected: exceeded %d iterations", MaxLoopIterations)
}

func (in *Interpreter) condition(e ast.Expr, construct string) (bool, error) {
	v, err := in.evalExpr(e)
	if err != nil {
		return false, err
	}
	if v.Kind() != BoolKind {
		return false, diag.Newf(diag.KindTypeMismatch,
			"%s condition must be a boolean, got %s", construct, v.Kind())
	}
	return v.Bool(), nil
}

// loopCondition keeps a loop going only while its condition is true. Any
// other value, including a non-boolean, ends the loop.
func (in *Interpreter) loopCondition(e ast.Expr) (bool, error) {
	v, err := in.evalExpr(e)
	if err != nil {
		return false, err
	}
	return v.Kind() == BoolKind && v.Bool(), nil
}

func (in *Interpreter) assign(name string, v Value) error {
	if !in.env.Set(name, v) {
		return diag.Newf(diag.KindUndefinedVariable, "Cannot assign to undefined variable '%s'", name)
	}
	return nil
}
