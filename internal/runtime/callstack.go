package runtime

import (
	"fmt"
	"strings"

	"github.com/o2l-lang/o2l/internal/object"
)

// Frame is a single call-stack entry used purely for diagnostics (§3.3
// invariant 5): function name, receiver object name, and source location.
type Frame struct {
	FunctionName string
	ObjectName   string
	File         string
	Line         int
	Column       int
}

// CallStack is the third parallel stack alongside Environment and the
// `this` stack. It must balance across every evaluation, even when an
// error or unwind propagates through — the teacher guarantees this with an
// RAII `StackFrameGuard`. In this evaluator, method calls use
// `defer cs.Pop()` immediately following `cs.Push(...)`; constructor calls
// in evalNew pop explicitly right after the constructor body returns.
type CallStack struct {
	frames []Frame
}

func NewCallStack() *CallStack { return &CallStack{} }

func (cs *CallStack) Push(f Frame) { cs.frames = append(cs.frames, f) }

func (cs *CallStack) Pop() {
	if len(cs.frames) > 0 {
		cs.frames = cs.frames[:len(cs.frames)-1]
	}
}

func (cs *CallStack) Len() int { return len(cs.frames) }

// Snapshot copies the current frames (innermost last) for attaching to an
// error at the moment it's constructed (§7 "Errors carry the current
// call-stack snapshot at construction time").
func (cs *CallStack) Snapshot() []Frame {
	out := make([]Frame, len(cs.frames))
	copy(out, cs.frames)
	return out
}

// FormatTrace renders frames innermost-first as
// "at Object.method (file:line:col)", per §7.
func FormatTrace(frames []Frame) string {
	var sb strings.Builder
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		fmt.Fprintf(&sb, "  at %s.%s (%s:%d:%d)\n", f.ObjectName, f.FunctionName, f.File, f.Line, f.Column)
	}
	return sb.String()
}

// ThisStack is the separate stack of receiver instances pushed on method
// entry and popped on exit (§3.3 invariant 4).
type ThisStack struct {
	items []*object.ObjectInstance
}

func NewThisStack() *ThisStack { return &ThisStack{} }

func (t *ThisStack) Push(o *object.ObjectInstance) { t.items = append(t.items, o) }

func (t *ThisStack) Pop() {
	if len(t.items) > 0 {
		t.items = t.items[:len(t.items)-1]
	}
}

// Top returns the current receiver, or nil if there is none (top-level
// code outside any method).
func (t *ThisStack) Top() *object.ObjectInstance {
	if len(t.items) == 0 {
		return nil
	}
	return t.items[len(t.items)-1]
}

func (t *ThisStack) Len() int { return len(t.items) }
