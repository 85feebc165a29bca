package kruntime

import "maps"

// Env is a stack of variable scopes. It always holds at least one scope.
type Env struct {
	scopes []map[string]Value
}

func NewEnv() *Env {
	return &Env{scopes: []map[string]Value{{}}}
}

func (e *Env) Push() {
	e.scopes = append(e.scopes, map[string]Value{})
}

// Pop drops the innermost scope. The global scope is never removed.
func (e *Env) Pop() {
	if len(e.scopes) > 1 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

func (e *Env) Depth() int {
	return len(e.scopes)
}

// Define binds name in the innermost scope, shadowing outer bindings.
func (e *Env) Define(name string, v Value) {
	e.scopes[len(e.scopes)-1][name] = v
}

func (e *Env) Get(name string) (Value, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Set rebinds name in the nearest scope that holds it. It reports false when
// no scope does.
func (e *Env) Set(name string, v Value) bool {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i][name]; ok {
			e.scopes[i][name] = v
			return true
		}
	}
	return false
}

// Snapshot copies every scope. Values are immutable, so copying the maps is
// enough to detach the result from later mutation.
func (e *Env) Snapshot() *Env {
	scopes := make([]map[string]Value, len(e.scopes))
	for i, scope := range e.scopes {
		scopes[i] = maps.Clone(scope)
	}
	return &Env{scopes: scopes}
}
