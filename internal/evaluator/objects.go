package evaluator

import (
	"fmt"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/object"
	"github.com/o2l-lang/o2l/internal/runtime"
)

// evalObjectDeclaration implements spec §4.3.2: build an ObjectInstance
// prototype carrying every method as a callable, record visibility, check
// protocol conformance, and register the ClassDef under its name.
func (ev *Evaluator) evalObjectDeclaration(n *ast.ObjectDeclaration, env *runtime.Environment) (Outcome, error) {
	proto := object.NewObjectInstance(n.Name)
	for _, m := range n.Methods {
		vis := object.Internal
		if m.External {
			vis = object.External
		}
		paramTypes := make([]string, len(m.Params))
		for i, p := range m.Params {
			paramTypes[i] = p.Type
		}
		proto.AddMethod(&object.Method{
			Name: m.Name, Visibility: vis,
			ParamTypes: paramTypes, ReturnType: m.ReturnType, HasSig: true,
			Fn: ev.buildMethodFn(m),
		})
	}

	def := &ClassDef{
		Name: n.Name, Protocols: n.Protocols,
		Properties: n.Properties, Constructors: n.Constructors,
	}
	def.prototype = proto

	for _, protoName := range n.Protocols {
		pd, ok := ev.Protocols[protoName]
		if !ok {
			return Outcome{}, ev.refErr(n, "Object %s conforms to undeclared Protocol %s", n.Name, protoName)
		}
		if err := checkConformance(proto, pd); err != nil {
			return Outcome{}, ev.evalErr(n, "Object %s does not implement all methods of Protocol %s: %s", n.Name, protoName, err.Error())
		}
	}

	ev.Classes[n.Name] = def

	// §4.3.2 steps 1 and 5: the declaration itself produces a live
	// ObjectInstance, registered under its own name in the environment it
	// was declared in (the global environment for top-level declarations).
	// `new` (evalNew) clones this same prototype's tables for additional
	// instances; the declaration's own instance is usable directly, which
	// is how the Interpreter finds a bare `Main` to invoke `main` on.
	instanceVal := &object.Object{Instance: proto}
	if declErr := env.Declare(n.Name, instanceVal, false); declErr != nil {
		return Outcome{}, ev.evalErr(n, "%s", declErr.Error())
	}
	return normal(instanceVal), nil
}

func checkConformance(proto *object.ObjectInstance, pd *ProtocolDef) error {
	for _, sig := range pd.Signatures {
		m, ok := proto.Methods[sig.Name]
		if !ok {
			return errf("missing method '%s'", sig.Name)
		}
		if len(m.ParamTypes) != len(sig.Params) {
			return errf("method '%s' arity mismatch", sig.Name)
		}
		for i, p := range sig.Params {
			if m.ParamTypes[i] != p.Type {
				return errf("method '%s' parameter %d type mismatch (%s != %s)", sig.Name, i+1, m.ParamTypes[i], p.Type)
			}
		}
		if m.ReturnType != sig.ReturnType {
			return errf("method '%s' return type mismatch (%s != %s)", sig.Name, m.ReturnType, sig.ReturnType)
		}
	}
	return nil
}

// buildMethodFn closes over the method declaration and the evaluator,
// producing the callable stored on the prototype's method table (spec
// §4.3.2 step 2: new scope, `this` bound, parameters bound, body run,
// Return caught, scope and `this` popped).
func (ev *Evaluator) buildMethodFn(decl *ast.MethodDeclaration) func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
	return func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
		if len(args) != len(decl.Params) {
			return nil, ev.evalErr(decl, "method '%s' expects %d argument(s), got %d", decl.Name, len(decl.Params), len(args))
		}
		scope := runtime.NewEnclosed(ev.Global)
		for i, p := range decl.Params {
			v, ok := assignTo(p.Type, args[i])
			if !ok {
				return nil, ev.typeErr(decl, "argument %d to %s: cannot assign %s to %s", i+1, decl.Name, args[i].Kind(), p.Type)
			}
			if err := scope.Declare(p.Name, v, false); err != nil {
				return nil, ev.evalErr(decl, "%s", err.Error())
			}
		}
		ev.This.Push(receiver)
		defer ev.This.Pop()

		out, err := ev.evalBlock(decl.Body, scope)
		if err != nil {
			return nil, err
		}
		switch out.Kind {
		case ThrowOutcome:
			return nil, &thrown{Value: out.Value}
		case BreakOutcome, ContinueOutcome:
			return nil, ev.evalErr(decl, "'break'/'continue' used outside a loop")
		default: // Normal or ReturnOutcome both yield their carried value
			return out.Value, nil
		}
	}
}

// evalNew implements spec §4.3.3 `New`: clone the prototype's method
// table into a fresh instance, initialize properties that have an
// initializer in declaration order, then run the matching constructor (by
// arity) with `this` bound. A property declared without an initializer
// stays unset until the constructor sets it (`this.name = value`).
func (ev *Evaluator) evalNew(n *ast.New, env *runtime.Environment) (Outcome, error) {
	def, ok := ev.Classes[n.ObjectType]
	if !ok {
		return Outcome{}, ev.refErr(n, "undefined Object type '%s'", n.ObjectType)
	}
	instance := def.prototype.Clone()

	propScope := runtime.NewEnclosed(ev.Global)
	ev.This.Push(instance)
	for _, p := range def.Properties {
		if p.Initializer == nil {
			continue
		}
		v, err := ev.evalDeclInit(p, p.DeclaredType, p.Initializer, propScope)
		if err != nil {
			ev.This.Pop()
			return Outcome{}, err
		}
		instance.SetProperty(p.Name, v)
	}
	ev.This.Pop()

	args := make([]object.Value, len(n.Args))
	for i, a := range n.Args {
		ao, err := ev.Eval(a, env)
		if err != nil || isUnwind(ao) {
			return ao, err
		}
		args[i] = ao.Value
	}

	ctor := selectConstructor(def.Constructors, len(args))
	if ctor == nil {
		if len(def.Constructors) > 0 {
			return Outcome{}, ev.evalErr(n, "no constructor of %s takes %d argument(s)", n.ObjectType, len(args))
		}
		if len(args) != 0 {
			return Outcome{}, ev.evalErr(n, "%s has no declared constructor but %d argument(s) were given", n.ObjectType, len(args))
		}
	} else {
		ctorScope := runtime.NewEnclosed(ev.Global)
		for i, p := range ctor.Params {
			v, ok := assignTo(p.Type, args[i])
			if !ok {
				return Outcome{}, ev.typeErr(n, "constructor argument %d: cannot assign %s to %s", i+1, args[i].Kind(), p.Type)
			}
			if err := ctorScope.Declare(p.Name, v, false); err != nil {
				return Outcome{}, ev.evalErr(n, "%s", err.Error())
			}
		}
		ev.CallStack.Push(runtime.Frame{FunctionName: "constructor", ObjectName: n.ObjectType, File: ev.File, Line: n.Token.Line, Column: n.Token.Column})
		ev.This.Push(instance)
		out, err := ev.evalBlock(ctor.Body, ctorScope)
		ev.This.Pop()
		ev.CallStack.Pop()
		if err != nil {
			return Outcome{}, err
		}
		if out.Kind == ThrowOutcome {
			return out, nil
		}
	}

	return normal(&object.Object{Instance: instance}), nil
}

func selectConstructor(ctors []*ast.ConstructorDeclaration, argc int) *ast.ConstructorDeclaration {
	for _, c := range ctors {
		if len(c.Params) == argc {
			return c
		}
	}
	return nil
}

func (ev *Evaluator) evalProtocolDeclaration(n *ast.ProtocolDeclaration, env *runtime.Environment) (Outcome, error) {
	ev.Protocols[n.Name] = &ProtocolDef{Name: n.Name, Signatures: n.Signatures}
	return normal(&object.Bool{V: true}), nil
}

func (ev *Evaluator) evalNamespace(n *ast.Namespace, env *runtime.Environment) (Outcome, error) {
	for _, decl := range n.Declarations {
		if _, err := ev.Eval(decl, env); err != nil {
			return Outcome{}, err
		}
	}
	return normal(&object.Bool{V: true}), nil
}

func errf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
