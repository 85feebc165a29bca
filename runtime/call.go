package kruntime

import (
	"github.com/gosuda/kode/ast"
	"github.com/gosuda/kode/diag"
)

// evalCall dispatches a call. Identifier callees are resolved through the
// registry only; variables are never consulted for them.
func (in *Interpreter) evalCall(call ast.CallExpr) (Value, error) {
	if id, ok := call.Callee.(ast.Ident); ok && id.Name == ast.ArrayAssignIntrinsic {
		return in.arrayAssign(call.Args)
	}
	args := make([]Value, len(call.Args))
	for i, arg := range call.Args {
		v, err := in.evalExpr(arg)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	if id, ok := call.Callee.(ast.Ident); ok {
		def, found := in.reg.Lookup(id.Name)
		if !found {
			return Value{}, diag.Newf(diag.KindUndefinedFunction, "Undefined function '%s'", id.Name)
		}
		return in.callFunction(id.Name, def, args)
	}
	callee, err := in.evalExpr(call.Callee)
	if err != nil {
		return Value{}, err
	}
	if callee.kind != ClosureKind {
		return Value{}, diag.Newf(diag.KindTypeMismatch,
			"Callee must be a function identifier or closure, got %s", callee.kind)
	}
	return in.callClosure(callee.fn, args)
}

// callFunction runs def in a new scope pushed on the current stack.
func (in *Interpreter) callFunction(name string, def ast.FuncDef, args []Value) (Value, error) {
	if len(args) != len(def.Params) {
		return Value{}, diag.Newf(diag.KindArityMismatch,
			"Function '%s' expects %d args, got %d", name, len(def.Params), len(args))
	}
	if err := in.enterCall(); err != nil {
		return Value{}, err
	}
	defer in.leaveCall()

	in.env.Push()
	defer in.env.Pop()
	for i, param := range def.Params {
		in.env.Define(param, args[i])
	}
	return in.runCallBody(def.Body, func(stmt int, err error) error {
		return &diag.CallError{Func: name, Stmt: stmt, Err: err}
	})
}

// callClosure runs c against a fresh copy of its captured environment. The
// caller's environment is restored afterwards.
func (in *Interpreter) callClosure(c *Closure, args []Value) (Value, error) {
	if len(args) != len(c.Params) {
		return Value{}, diag.Newf(diag.KindArityMismatch,
			"Closure expects %d args, got %d", len(c.Params), len(args))
	}
	if err := in.enterCall(); err != nil {
		return Value{}, err
	}
	defer in.leaveCall()

	saved := in.env
	in.env = c.Env.Snapshot()
	defer func() { in.env = saved }()

	in.env.Push()
	for i, param := range c.Params {
		in.env.Define(param, args[i])
	}
	return in.runCallBody(c.Body, func(stmt int, err error) error {
		return &diag.CallError{Closure: true, Stmt: stmt, Err: err}
	})
}

func (in *Interpreter) runCallBody(body []ast.Statement, annotate func(int, error) error) (Value, error) {
	for i, stmt := range body {
		res, err := in.execStmt(stmt)
		if err != nil {
			return Value{}, annotate(i+1, err)
		}
		if res.kind == resultReturn {
			return res.value, nil
		}
	}
	return Void(), nil
}

func (in *Interpreter) enterCall() error {
	if in.depth >= in.maxDepth {
		return diag.Newf(diag.KindRecursionLimit, "Maximum call depth of %d exceeded", in.maxDepth)
	}
	in.depth++
	return nil
}

func (in *Interpreter) leaveCall() {
	in.depth--
}
