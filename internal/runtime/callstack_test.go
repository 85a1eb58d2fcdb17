package runtime

import (
	"strings"
	"testing"

	"github.com/o2l-lang/o2l/internal/object"
)

func TestCallStackPushPopBalances(t *testing.T) {
	cs := NewCallStack()
	cs.Push(Frame{FunctionName: "main", ObjectName: "Main", File: "a.obq", Line: 1, Column: 1})
	cs.Push(Frame{FunctionName: "helper", ObjectName: "Util", File: "a.obq", Line: 2, Column: 3})
	if cs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cs.Len())
	}
	cs.Pop()
	if cs.Len() != 1 {
		t.Fatalf("Len() after one Pop = %d, want 1", cs.Len())
	}
	cs.Pop()
	cs.Pop() // popping an empty stack must not panic or go negative
	if cs.Len() != 0 {
		t.Fatalf("Len() after over-popping = %d, want 0", cs.Len())
	}
}

func TestFormatTraceInnermostFirst(t *testing.T) {
	frames := []Frame{
		{FunctionName: "main", ObjectName: "Main", File: "a.obq", Line: 1, Column: 1},
		{FunctionName: "helper", ObjectName: "Util", File: "a.obq", Line: 5, Column: 9},
	}
	trace := FormatTrace(frames)
	lines := strings.Split(strings.TrimRight(trace, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("FormatTrace produced %d lines, want 2:\n%s", len(lines), trace)
	}
	if !strings.Contains(lines[0], "Util.helper") {
		t.Errorf("innermost frame should print first, got: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Main.main") {
		t.Errorf("outermost frame should print last, got: %q", lines[1])
	}
}

func TestThisStackTopAndPop(t *testing.T) {
	ts := NewThisStack()
	if ts.Top() != nil {
		t.Fatal("Top() on empty stack should be nil")
	}
	a := object.NewObjectInstance("A")
	b := object.NewObjectInstance("B")
	ts.Push(a)
	ts.Push(b)
	if ts.Top() != b {
		t.Error("Top() should return the most recently pushed instance")
	}
	ts.Pop()
	if ts.Top() != a {
		t.Error("Top() after Pop() should return the previous instance")
	}
}
