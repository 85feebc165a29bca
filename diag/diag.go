// Package diag defines the error kinds shared by the lexer, parser and
// interpreter.
package diag

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindLex
	KindParse
	KindImport
	KindUndefinedVariable
	KindUndefinedFunction
	KindArityMismatch
	KindTypeMismatch
	KindDivisionByZero
	KindIndexOutOfBounds
	KindInvalidAssignmentTarget
	KindNoEntryPoint
	KindInfiniteLoop
	KindRecursionLimit
)

var kindNames = map[Kind]string{
	KindUnknown:                 "unknown",
	KindLex:                     "lex error",
	KindParse:                   "parse error",
	KindImport:                  "import error",
	KindUndefinedVariable:       "undefined variable",
	KindUndefinedFunction:       "undefined function",
	KindArityMismatch:           "arity mismatch",
	KindTypeMismatch:            "type mismatch",
	KindDivisionByZero:          "division by zero",
	KindIndexOutOfBounds:        "index out of bounds",
	KindInvalidAssignmentTarget: "invalid assignment target",
	KindNoEntryPoint:            "no entry point",
	KindInfiniteLoop:            "infinite loop suspected",
	KindRecursionLimit:          "recursion limit exceeded",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Pos is a 1-based line/column pair. The zero Pos means "no position".
type Pos struct {
	Line   int
	Column int
}

func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Error is a classified failure. Msg is the human readable text; Err is an
// optional cause such as the lexer error inside an import failure.
type Error struct {
	Kind Kind
	Msg  string
	Pos  Pos
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Pos.IsValid() {
		msg = fmt.Sprintf("%s at %s", msg, e.Pos)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func At(kind Kind, pos Pos, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// CallError records the call site an error escaped from. It never changes the
// kind of the wrapped error.
type CallError struct {
	Func    string
	Closure bool
	Stmt    int
	Err     error
}

func (e *CallError) Error() string {
	if e.Closure {
		return fmt.Sprintf("In closure, statement #%d: %v", e.Stmt, e.Err)
	}
	return fmt.Sprintf("In function '%s', statement #%d: %v", e.Func, e.Stmt, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost *Error in err's chain; call frames
// are looked through.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Trace lists the call frames err passed through, outermost first.
func Trace(err error) []*CallError {
	var frames []*CallError
	for err != nil {
		if ce, ok := err.(*CallError); ok {
			frames = append(frames, ce)
		}
		err = errors.Unwrap(err)
	}
	return frames
}
