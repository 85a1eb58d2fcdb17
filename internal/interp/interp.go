// Package interp implements the top-level Interpreter (spec §4.5): owns
// the root environment and ModuleLoader, executes a parsed program, and
// invokes Main.main if the program declares one.
package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/petermattis/goid"
	"gopkg.in/yaml.v3"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/evaluator"
	"github.com/o2l-lang/o2l/internal/modules"
	"github.com/o2l-lang/o2l/internal/object"
)

// Interpreter is grounded on the teacher's evaluateModule/runModule
// orchestration in cmd/funxy/main.go, simplified to the single
// tree-walking backend this repo carries (no VM, per SPEC_FULL.md §F).
type Interpreter struct {
	Eval   *evaluator.Evaluator
	Loader *modules.Loader

	Stdout io.Writer
	Stderr io.Writer
	Debug  bool

	ownerGoroutine int64
}

// New builds an Interpreter with a fresh Evaluator wired to a fresh
// ModuleLoader, attributing diagnostics to file.
func New(file string) *Interpreter {
	loader := modules.New()
	ev := evaluator.New(file, loader)
	return &Interpreter{
		Eval:           ev,
		Loader:         loader,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		ownerGoroutine: goid.Get(),
	}
}

// assertOwnerGoroutine gives teeth to spec §5's single-threaded contract:
// an Interpreter must only ever be driven from the goroutine that created
// it, since Environment/CallStack/ThisStack are not synchronized.
func (in *Interpreter) assertOwnerGoroutine() {
	if got := goid.Get(); got != in.ownerGoroutine {
		panic(fmt.Sprintf("o2l: Interpreter driven from goroutine %d, owned by %d", got, in.ownerGoroutine))
	}
}

// Execute evaluates every top-level declaration in prog, then — if a
// global Main object exists and exposes main — calls Main.main(args) and
// returns its Int value (or 0) as the process exit code.
func (in *Interpreter) Execute(prog *ast.Program, args []string) (int, error) {
	in.assertOwnerGoroutine()
	in.Eval.Stdout = in.Stdout

	modules.SetProgramArgs(append([]string{prog.File}, args...))

	if err := in.Eval.EvalProgram(prog); err != nil {
		in.reportError(err)
		return 1, err
	}

	mainVal, ok := in.Eval.Global.Get("Main")
	if !ok {
		return 0, nil
	}
	mainObj, ok := mainVal.(*object.Object)
	if !ok {
		return 0, nil
	}
	method, ok := mainObj.Instance.Methods["main"]
	if !ok {
		return 0, nil
	}

	argList := make([]object.Value, len(args))
	for i, a := range args {
		argList[i] = &object.Text{V: a}
	}

	// The args list is passed only when main declares a parameter for it;
	// a parameter-less `method main()` is called with no arguments.
	var callArgs []object.Value
	if !method.HasSig || len(method.ParamTypes) > 0 {
		callArgs = []object.Value{&object.List{ElemKind: object.KText, Items: argList}}
	}
	result, err := method.Fn(mainObj.Instance, callArgs)
	if err != nil {
		in.reportError(err)
		return 1, err
	}
	if code, ok := result.(*object.Int); ok {
		return int(code.V), nil
	}
	return 0, nil
}

func (in *Interpreter) reportError(err error) {
	fmt.Fprintln(in.Stderr, err.Error())
	if in.Debug {
		in.dumpDebugState()
	}
}

// dumpDebugState renders the call-stack snapshot as YAML on --debug, the
// same shape the teacher uses yaml.v3 for in its own config/diagnostics
// dumps (SPEC_FULL.md §B.1).
func (in *Interpreter) dumpDebugState() {
	snapshot := in.Eval.CallStack.Snapshot()
	frames := make([]map[string]interface{}, len(snapshot))
	for i, f := range snapshot {
		frames[i] = map[string]interface{}{
			"function": f.FunctionName,
			"object":   f.ObjectName,
			"file":     f.File,
			"line":     f.Line,
			"column":   f.Column,
		}
	}
	out, err := yaml.Marshal(map[string]interface{}{"call_stack": frames})
	if err != nil {
		return
	}
	fmt.Fprintln(in.Stderr, "--- debug state ---")
	in.Stderr.Write(out)
}
