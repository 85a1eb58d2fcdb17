// Package errs defines O2L's closed error taxonomy (spec §7). Lexer/parser
// produce SyntaxError; the evaluator produces EvaluationError,
// TypeMismatchError, and UnresolvedReferenceError. The three evaluator
// kinds carry an optional call-stack snapshot attached at construction
// time; SyntaxError carries none. All four are
// plain Go errors — not panics — so every caller decides explicitly
// whether to propagate or handle them.
package errs

import (
	"fmt"
	"strings"

	"github.com/o2l-lang/o2l/internal/runtime"
)

// SyntaxError is raised when the lexer or parser rejects input. It never
// carries a call-stack snapshot: the program never started running.
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error: %s (%s:%d:%d)", e.Message, e.File, e.Line, e.Column)
}

// runtimeError is the shared shape of the three evaluator-raised error
// kinds; each wraps it to get a distinct Go type for type-switches while
// reusing the same rendering.
type runtimeError struct {
	category string
	Message  string
	File     string
	Line     int
	Column   int
	Stack    []runtime.Frame
}

func (e *runtimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.category, e.Message)
	if len(e.Stack) > 0 {
		msg += "\n" + strings.TrimRight(runtime.FormatTrace(e.Stack), "\n")
	}
	return msg
}

// EvaluationError covers any runtime contract violation: division by
// zero, wrong arity, bad conversion, visibility violation, unsupported
// operation (§7).
type EvaluationError struct{ *runtimeError }

func NewEvaluationError(cs *runtime.CallStack, file string, line, col int, format string, args ...interface{}) *EvaluationError {
	return &EvaluationError{&runtimeError{
		category: "Evaluation Error",
		Message:  fmt.Sprintf(format, args...),
		File:     file, Line: line, Column: col,
		Stack: snapshotOf(cs),
	}}
}

// TypeMismatchError covers annotation/value tag mismatches (§7).
type TypeMismatchError struct{ *runtimeError }

func NewTypeMismatchError(cs *runtime.CallStack, file string, line, col int, format string, args ...interface{}) *TypeMismatchError {
	return &TypeMismatchError{&runtimeError{
		category: "Type Mismatch Error",
		Message:  fmt.Sprintf(format, args...),
		File:     file, Line: line, Column: col,
		Stack: snapshotOf(cs),
	}}
}

// UnresolvedReferenceError covers name/method/property lookup failures (§7).
type UnresolvedReferenceError struct{ *runtimeError }

func NewUnresolvedReferenceError(cs *runtime.CallStack, file string, line, col int, format string, args ...interface{}) *UnresolvedReferenceError {
	return &UnresolvedReferenceError{&runtimeError{
		category: "Unresolved Reference Error",
		Message:  fmt.Sprintf(format, args...),
		File:     file, Line: line, Column: col,
		Stack: snapshotOf(cs),
	}}
}

func snapshotOf(cs *runtime.CallStack) []runtime.Frame {
	if cs == nil {
		return nil
	}
	return cs.Snapshot()
}
