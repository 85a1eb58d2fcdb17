package errs

import (
	"strings"
	"testing"

	"github.com/o2l-lang/o2l/internal/runtime"
)

func TestSyntaxErrorFormatting(t *testing.T) {
	err := &SyntaxError{File: "a.obq", Line: 3, Column: 7, Message: "unexpected token"}
	want := "Syntax Error: unexpected token (a.obq:3:7)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestEvaluationErrorFormatting(t *testing.T) {
	cs := runtime.NewCallStack()
	err := NewEvaluationError(cs, "a.obq", 1, 1, "Cannot reassign constant variable '%s'", "x")
	want := "Evaluation Error: Cannot reassign constant variable 'x'"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestEvaluationErrorCarriesCallStackTrace(t *testing.T) {
	cs := runtime.NewCallStack()
	cs.Push(runtime.Frame{FunctionName: "main", ObjectName: "Main", File: "a.obq", Line: 1, Column: 1})
	err := NewEvaluationError(cs, "a.obq", 2, 4, "boom")
	got := err.Error()
	if !strings.HasPrefix(got, "Evaluation Error: boom\n") {
		t.Fatalf("Error() = %q, want a stack trace appended", got)
	}
	if !strings.Contains(got, "Main.main") {
		t.Errorf("Error() = %q, want it to mention the call-stack frame", got)
	}
}

func TestTypeMismatchErrorCategory(t *testing.T) {
	err := NewTypeMismatchError(nil, "a.obq", 1, 1, "cannot assign %s to %s", "Text", "Int")
	want := "Type Mismatch Error: cannot assign Text to Int"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnresolvedReferenceErrorCategory(t *testing.T) {
	err := NewUnresolvedReferenceError(nil, "a.obq", 1, 1, "undefined Object type '%s'", "Calc")
	want := "Unresolved Reference Error: undefined Object type 'Calc'"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNilCallStackProducesNoTrace(t *testing.T) {
	err := NewEvaluationError(nil, "a.obq", 1, 1, "boom")
	if strings.Contains(err.Error(), "\n") {
		t.Errorf("Error() = %q, want no trace with a nil call stack", err.Error())
	}
}
