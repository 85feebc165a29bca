package kruntime

import (
	"math"

	"github.com/gosuda/kode/ast"
	"github.com/gosuda/kode/diag"
)

// floatEpsilon is the tolerance for float equality.
const floatEpsilon = 2.220446049250313e-16

func evalBinary(op ast.BinaryOp, left, right Value) (Value, error) {
	switch {
	case left.kind == IntKind && right.kind == IntKind:
		return intBinary(op, left.i, right.i)
	case left.IsNumber() && right.IsNumber():
		kind := "floats"
		if left.kind != right.kind {
			kind = "mixed number types"
		}
		return floatBinary(op, left.number(), right.number(), kind)
	case left.kind == BoolKind && right.kind == BoolKind:
		switch op {
		case ast.OpAnd:
			return Bool(left.b && right.b), nil
		case ast.OpOr:
			return Bool(left.b || right.b), nil
		case ast.OpEqual:
			return Bool(left.b == right.b), nil
		case ast.OpNotEqual:
			return Bool(left.b != right.b), nil
		}
		return Value{}, diag.Newf(diag.KindTypeMismatch, "Unsupported operator '%s' for booleans", op)
	case left.kind == StringKind && right.kind == StringKind:
		switch op {
		case ast.OpAdd:
			return Str(left.s + right.s), nil
		case ast.OpEqual:
			return Bool(left.s == right.s), nil
		case ast.OpNotEqual:
			return Bool(left.s != right.s), nil
		}
		return Value{}, diag.Newf(diag.KindTypeMismatch, "Unsupported operator '%s' for strings", op)
	case left.kind == StringKind && right.IsNumber(), left.IsNumber() && right.kind == StringKind:
		if op == ast.OpAdd {
			return Str(left.String() + right.String()), nil
		}
		return Value{}, diag.Newf(diag.KindTypeMismatch,
			"Unsupported operator '%s' between %s and %s", op, left.kind, right.kind)
	}
	return Value{}, diag.Newf(diag.KindTypeMismatch,
		"Type mismatch in binary operation: %s %s %s", left.kind, op, right.kind)
}

func intBinary(op ast.BinaryOp, l, r int64) (Value, error) {
	switch op {
	case ast.OpAdd:
		return Int(l + r), nil
	case ast.OpSub:
		return Int(l - r), nil
	case ast.OpMul:
		return Int(l * r), nil
	case ast.OpDiv:
		if r == 0 {
			return Value{}, diag.New(diag.KindDivisionByZero, "Division by zero")
		}
		return Int(l / r), nil
	case ast.OpMod:
		if r == 0 {
			return Value{}, diag.New(diag.KindDivisionByZero, "Modulo by zero")
		}
		return Int(l % r), nil
	case ast.OpEqual:
		return Bool(l == r), nil
	case ast.OpNotEqual:
		return Bool(l != r), nil
	case ast.OpLess:
		return Bool(l < r), nil
	case ast.OpGreater:
		return Bool(l > r), nil
	case ast.OpLessEqual:
		return Bool(l <= r), nil
	case ast.OpGreaterEqual:
		return Bool(l >= r), nil
	}
	return Value{}, diag.Newf(diag.KindTypeMismatch, "Unsupported binary operator '%s' for numbers", op)
}

func floatBinary(op ast.BinaryOp, l, r float64, kind string) (Value, error) {
	switch op {
	case ast.OpAdd:
		return Float(l + r), nil
	case ast.OpSub:
		return Float(l - r), nil
	case ast.OpMul:
		return Float(l * r), nil
	case ast.OpDiv:
		if r == 0 {
			return Value{}, diag.New(diag.KindDivisionByZero, "Division by zero")
		}
		return Float(l / r), nil
	case ast.OpEqual:
		return Bool(math.Abs(l-r) < floatEpsilon), nil
	case ast.OpNotEqual:
		return Bool(math.Abs(l-r) >= floatEpsilon), nil
	case ast.OpLess:
		return Bool(l < r), nil
	case ast.OpGreater:
		return Bool(l > r), nil
	case ast.OpLessEqual:
		return Bool(l <= r), nil
	case ast.OpGreaterEqual:
		return Bool(l >= r), nil
	}
	return Value{}, diag.Newf(diag.KindTypeMismatch, "Unsupported binary operator '%s' for %s", op, kind)
}

func evalUnary(op ast.UnaryOp, v Value) (Value, error) {
	switch {
	case op == ast.OpNeg && v.kind == IntKind:
		return Int(-v.i), nil
	case op == ast.OpNeg && v.kind == FloatKind:
		return Float(-v.f), nil
	case op == ast.OpNot && v.kind == BoolKind:
		return Bool(!v.b), nil
	}
	return Value{}, diag.Newf(diag.KindTypeMismatch, "Unsupported unary operator '%s' for %s", op, v.kind)
}
