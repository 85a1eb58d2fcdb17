package evaluator

import (
	"io"
	"os"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/object"
	"github.com/o2l-lang/o2l/internal/runtime"
)

// ClassDef is the template produced by evaluating an ObjectDeclaration:
// property/constructor/method ASTs kept around so `new` can mint fresh
// ObjectInstance values from them (spec §4.3.2, §4.3.3 `New`).
type ClassDef struct {
	Name         string
	Protocols    []string
	Properties   []*ast.PropertyDeclaration
	Constructors []*ast.ConstructorDeclaration

	// prototype carries the built ObjectInstance (methods wired to real
	// Go closures via buildMethodFn); `new` clones it per spec §4.3.3.
	prototype *object.ObjectInstance
}

// ProtocolDef is a named set of method signatures checked structurally
// against a ClassDef's methods at object-declaration time (spec §4.3.6).
type ProtocolDef struct {
	Name       string
	Signatures []ast.ProtocolSignature
}

// ModuleResolver is implemented by internal/modules; kept as an interface
// here so internal/evaluator never imports internal/modules (the loader
// depends on the evaluator to run module bodies, not the other way round).
type ModuleResolver interface {
	ResolveImport(ev *Evaluator, file string, parts []string, isUser, all bool) (map[string]object.Value, error)
}

// Evaluator holds all process-wide-within-one-run mutable state: the
// global scope, the two diagnostic stacks, and the type registries built
// up as object/protocol/record/enum declarations are evaluated (spec §9
// "Implementers should either thread [module/registry state] through the
// Interpreter handle or hide them behind a singleton" — here it is threaded
// explicitly through Evaluator, one instance per Interpreter run).
type Evaluator struct {
	Global    *runtime.Environment
	CallStack *runtime.CallStack
	This      *runtime.ThisStack
	Modules   ModuleResolver
	File      string

	Classes   map[string]*ClassDef
	Protocols map[string]*ProtocolDef
	Records   map[string]*object.RecordType
	Enums     map[string]*object.EnumType

	// Stdout is where the `print`/`println` intrinsics write; defaults to
	// os.Stdout but is swappable so tests can capture output without
	// touching the real process streams.
	Stdout io.Writer
}

// New creates an Evaluator with a fresh global environment, attributing
// diagnostics to file.
func New(file string, modules ModuleResolver) *Evaluator {
	return &Evaluator{
		Global:    runtime.NewEnvironment(),
		CallStack: runtime.NewCallStack(),
		This:      runtime.NewThisStack(),
		Modules:   modules,
		File:      file,
		Classes:   make(map[string]*ClassDef),
		Protocols: make(map[string]*ProtocolDef),
		Records:   make(map[string]*object.RecordType),
		Enums:     make(map[string]*object.EnumType),
		Stdout:    os.Stdout,
	}
}

// WithFile returns a shallow copy of ev attributing new diagnostics to
// file while sharing every registry and stack — used when evaluating an
// @import'd module's top-level declarations under its own fresh
// environment but the same class/protocol/record/enum registries and
// call stack (spec §4.4 step 5: "fresh environment for the module, no
// variable inheritance").
func (ev *Evaluator) WithFile(file string) *Evaluator {
	clone := *ev
	clone.File = file
	return &clone
}

func (ev *Evaluator) loc(n ast.Node) (line, col int) {
	t := n.GetToken()
	return t.Line, t.Column
}
