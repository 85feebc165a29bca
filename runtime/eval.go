package kruntime

import (
	"github.com/gosuda/kode/ast"
	"github.com/gosuda/kode/diag"
)

func (in *Interpreter) evalExpr(e ast.Expr) (Value, error) {
	switch ex := e.(type) {
	case ast.IntLit:
		return Int(ex.Value), nil
	case ast.FloatLit:
		return Float(ex.Value), nil
	case ast.BoolLit:
		return Bool(ex.Value), nil
	case ast.StringLit:
		return Str(ex.Value), nil
	case ast.Ident:
		v, ok := in.env.Get(ex.Name)
		if !ok {
			return Value{}, diag.Newf(diag.KindUndefinedVariable, "Undefined variable '%s'", ex.Name)
		}
		return v, nil
	case ast.BinaryExpr:
		left, err := in.evalExpr(ex.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := in.evalExpr(ex.Right)
		if err != nil {
			return Value{}, err
		}
		return evalBinary(ex.Op, left, right)
	case ast.UnaryExpr:
		v, err := in.evalExpr(ex.Operand)
		if err != nil {
			return Value{}, err
		}
		return evalUnary(ex.Op, v)
	case ast.CallExpr:
		return in.evalCall(ex)
	case ast.ArrayLit:
		elems := make([]Value, len(ex.Elems))
		for i, elem := range ex.Elems {
			v, err := in.evalExpr(elem)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Array(elems), nil
	case ast.IndexExpr:
		target, err := in.evalExpr(ex.Target)
		if err != nil {
			return Value{}, err
		}
		index, err := in.evalExpr(ex.Index)
		if err != nil {
			return Value{}, err
		}
		return indexValue(target, index)
	case ast.ClosureExpr:
		return ClosureValue(&Closure{
			Params: ex.Params,
			Body:   ex.Body,
			Env:    in.env.Snapshot(),
		}), nil
	case ast.AssignExpr:
		v, err := in.evalExpr(ex.Value)
		if err != nil {
			return Value{}, err
		}
		if err := in.assign(ex.Name, v); err != nil {
			return Value{}, err
		}
		return v, nil
	default:
		return Value{}, diag.Newf(diag.KindUnknown, "unsupported expression %T", e)
	}
}
