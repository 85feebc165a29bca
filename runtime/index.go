package kruntime

import (
	"slices"

	"github.com/gosuda/kode/ast"
	"github.com/gosuda/kode/diag"
)

// checkIndex validates index against a container of length n. what names the
// container in error messages ("Array" or "String").
func checkIndex(index Value, n int, what string) (int, error) {
	if index.kind != IntKind {
		return 0, diag.Newf(diag.KindTypeMismatch, "%s index must be an integer, got %s", what, index.kind)
	}
	i := index.i
	if i < 0 {
		return 0, diag.Newf(diag.KindIndexOutOfBounds,
			"%s index cannot be negative: %d (length: %d)", what, i, n)
	}
	if i >= int64(n) {
		return 0, diag.Newf(diag.KindIndexOutOfBounds,
			"%s index out of bounds: %d (length: %d)", what, i, n)
	}
	return int(i), nil
}

func indexValue(target, index Value) (Value, error) {
	switch target.kind {
	case ArrayKind:
		i, err := checkIndex(index, len(target.arr), "Array")
		if err != nil {
			return Value{}, err
		}
		return target.arr[i], nil
	case StringKind:
		runes := []rune(target.s)
		i, err := checkIndex(index, len(runes), "String")
		if err != nil {
			return Value{}, err
		}
		return Str(string(runes[i])), nil
	}
	return Value{}, diag.Newf(diag.KindTypeMismatch, "Cannot index non-array type: %s", target.kind)
}

// arrayAssign implements `target[index] = value`. The target must be a
// variable or an index chain rooted at one; the updated array is written back
// to that variable and value is returned.
func (in *Interpreter) arrayAssign(args []ast.Expr) (Value, error) {
	if len(args) != 3 {
		return Value{}, diag.Newf(diag.KindArityMismatch,
			"Function '%s' expects 3 args, got %d", ast.ArrayAssignIntrinsic, len(args))
	}
	root, path, err := in.assignPath(args[0])
	if err != nil {
		return Value{}, err
	}
	index, err := in.evalExpr(args[1])
	if err != nil {
		return Value{}, err
	}
	value, err := in.evalExpr(args[2])
	if err != nil {
		return Value{}, err
	}
	current, ok := in.env.Get(root)
	if !ok {
		return Value{}, diag.Newf(diag.KindUndefinedVariable, "Undefined variable '%s'", root)
	}
	updated, err := setIndexed(current, append(path, index), value)
	if err != nil {
		return Value{}, err
	}
	in.env.Set(root, updated)
	return value, nil
}

func (in *Interpreter) assignPath(e ast.Expr) (string, []Value, error) {
	switch t := e.(type) {
	case ast.Ident:
		return t.Name, nil, nil
	case ast.IndexExpr:
		root, path, err := in.assignPath(t.Target)
		if err != nil {
			return "", nil, err
		}
		index, err := in.evalExpr(t.Index)
		if err != nil {
			return "", nil, err
		}
		return root, append(path, index), nil
	}
	return "", nil, diag.New(diag.KindInvalidAssignmentTarget,
		"Array assignment target must be a variable or an element of one")
}

// setIndexed returns a copy of container with the element at path replaced.
func setIndexed(container Value, path []Value, value Value) (Value, error) {
	switch container.kind {
	case ArrayKind:
	case StringKind:
		return Value{}, diag.New(diag.KindTypeMismatch, "Cannot assign to an index of a string")
	default:
		return Value{}, diag.Newf(diag.KindTypeMismatch, "Cannot index non-array type: %s", container.kind)
	}
	i, err := checkIndex(path[0], len(container.arr), "Array")
	if err != nil {
		return Value{}, err
	}
	elems := slices.Clone(container.arr)
	if len(path) == 1 {
		elems[i] = value
		return Array(elems), nil
	}
	inner, err := setIndexed(elems[i], path[1:], value)
	if err != nil {
		return Value{}, err
	}
	elems[i] = inner
	return Array(elems), nil
}
