// Package runtime implements the evaluator's supporting state: the scoped
// Environment with constant protection (spec §3.3), the call stack used
// for diagnostics, and the `this` stack used for method dispatch.
package runtime

import (
	"fmt"

	"github.com/o2l-lang/o2l/internal/object"
)

// Environment is a stack of frames, each holding a name->Value mapping and
// the set of names declared const in that frame (§3.3). Grounded on the
// teacher's outer-chain Environment (internal/evaluator/environment.go in
// the teacher), generalized with a per-frame constant set.
type Environment struct {
	vars     map[string]object.Value
	consts   map[string]bool
	outer    *Environment
}

// NewEnvironment creates a fresh top-level (global) environment.
func NewEnvironment() *Environment {
	return &Environment{
		vars:   make(map[string]object.Value),
		consts: make(map[string]bool),
	}
}

// NewEnclosed creates a new scope nested inside outer (pushed on `if`,
// `while`, method entry, etc., per §3.3 invariant 3).
func NewEnclosed(outer *Environment) *Environment {
	e := NewEnvironment()
	e.outer = outer
	return e
}

// Get resolves name, walking frames innermost-outward (invariant 3).
func (e *Environment) Get(name string) (object.Value, bool) {
	if v, ok := e.vars[name]; ok {
		return v, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// IsConst reports whether name was declared const in any enclosing frame.
func (e *Environment) IsConst(name string) bool {
	if e.consts[name] {
		return true
	}
	if e.outer != nil {
		return e.outer.IsConst(name)
	}
	return false
}

// frameOf returns the innermost frame in which name is bound, or nil.
func (e *Environment) frameOf(name string) *Environment {
	if _, ok := e.vars[name]; ok {
		return e
	}
	if e.outer != nil {
		return e.outer.frameOf(name)
	}
	return nil
}

// Declare binds name to v in the innermost (this) frame. It fails per
// invariant 1 ("defining a name that is already a constant in any
// enclosing frame fails") if name is const anywhere visible.
func (e *Environment) Declare(name string, v object.Value, isConst bool) error {
	if e.IsConst(name) {
		return fmt.Errorf("cannot redeclare constant variable '%s'", name)
	}
	e.vars[name] = v
	if isConst {
		e.consts[name] = true
	}
	return nil
}

// Assign reassigns an existing variable in the frame where it lives,
// failing per invariant 2 if the name is const.
func (e *Environment) Assign(name string, v object.Value) error {
	if e.IsConst(name) {
		return fmt.Errorf("cannot reassign constant variable '%s'", name)
	}
	frame := e.frameOf(name)
	if frame == nil {
		return fmt.Errorf("undefined variable '%s'", name)
	}
	frame.vars[name] = v
	return nil
}
