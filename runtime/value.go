package kruntime

import (
	"math"
	"strconv"
	"strings"

	"github.com/gosuda/kode/ast"
)

type ValueKind int

const (
	VoidKind ValueKind = iota
	IntKind
	FloatKind
	BoolKind
	StringKind
	ArrayKind
	ClosureKind
)

func (k ValueKind) String() string {
	switch k {
	case VoidKind:
		return "void"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case BoolKind:
		return "bool"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ClosureKind:
		return "closure"
	default:
		return "unknown"
	}
}

// Value is an immutable kode value. The zero Value is void.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	b    bool
	s    string
	arr  []Value
	fn   *Closure
}

// Closure is a function literal together with the environment snapshot taken
// when it was evaluated.
type Closure struct {
	Params []string
	Body   []ast.Statement
	Env    *Env
}

func Void() Value {
	return Value{}
}

func Int(v int64) Value {
	return Value{kind: IntKind, i: v}
}

func Float(v float64) Value {
	return Value{kind: FloatKind, f: v}
}

func Bool(v bool) Value {
	return Value{kind: BoolKind, b: v}
}

func Str(v string) Value {
	return Value{kind: StringKind, s: v}
}

// Array wraps elems. The caller must not modify elems afterwards.
func Array(elems []Value) Value {
	return Value{kind: ArrayKind, arr: elems}
}

func ClosureValue(c *Closure) Value {
	return Value{kind: ClosureKind, fn: c}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) Int64() int64 {
	return v.i
}

func (v Value) Float64() float64 {
	return v.f
}

func (v Value) Bool() bool {
	return v.b
}

// Elems returns the array elements. The slice is shared and must be treated
// as read-only.
func (v Value) Elems() []Value {
	return v.arr
}

func (v Value) Closure() *Closure {
	return v.fn
}

func (v Value) IsNumber() bool {
	return v.kind == IntKind || v.kind == FloatKind
}

// number returns the value as a float, promoting ints.
func (v Value) number() float64 {
	if v.kind == IntKind {
		return float64(v.i)
	}
	return v.f
}

// String renders the value the way print shows it.
func (v Value) String() string {
	switch v.kind {
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case FloatKind:
		switch {
		case math.IsNaN(v.f):
			return "NaN"
		case math.IsInf(v.f, 1):
			return "inf"
		case math.IsInf(v.f, -1):
			return "-inf"
		}
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case BoolKind:
		return strconv.FormatBool(v.b)
	case StringKind:
		return v.s
	case ArrayKind:
		parts := make([]string, len(v.arr))
		for i, elem := range v.arr {
			parts[i] = elem.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ClosureKind:
		return "<function>"
	default:
		return "void"
	}
}
