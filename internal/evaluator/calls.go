package evaluator

import (
	"fmt"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/object"
	"github.com/o2l-lang/o2l/internal/runtime"
)

// evalMethodCall implements spec §4.3.3. Receiver and arguments are
// evaluated left to right before dispatch (spec §5 ordering); intrinsic
// kinds (List, Text, numerics, ...) are checked before requiring Object.
func (ev *Evaluator) evalMethodCall(n *ast.MethodCall, env *runtime.Environment) (Outcome, error) {
	ro, err := ev.Eval(n.Receiver, env)
	if err != nil || isUnwind(ro) {
		return ro, err
	}
	recv := ro.Value

	args := make([]object.Value, len(n.Args))
	for i, a := range n.Args {
		ao, err := ev.Eval(a, env)
		if err != nil || isUnwind(ao) {
			return ao, err
		}
		args[i] = ao.Value
	}

	if recv.Kind() != object.KObject {
		v, err := ev.dispatchIntrinsic(n, recv, n.Method, args)
		if err != nil {
			return Outcome{}, err
		}
		return normal(v), nil
	}

	obj := recv.(*object.Object)
	method, ok := obj.Instance.Methods[n.Method]
	if !ok {
		return Outcome{}, ev.refErr(n, "Object %s has no method '%s'", obj.Instance.Name, n.Method)
	}

	_, isThis := n.Receiver.(*ast.This)
	if !isThis && method.Visibility != object.External {
		return Outcome{}, ev.evalErr(n, "method '%s' on %s is not externally accessible", n.Method, obj.Instance.Name)
	}

	ev.CallStack.Push(runtime.Frame{
		FunctionName: n.Method, ObjectName: obj.Instance.Name,
		File: ev.File, Line: n.Token.Line, Column: n.Token.Column,
	})
	defer ev.CallStack.Pop()

	result, callErr := method.Fn(obj.Instance, args)
	if callErr != nil {
		if out, ok := asThrowOutcome(callErr); ok {
			return out, nil
		}
		return Outcome{}, callErr
	}
	return normal(result), nil
}

// evalFunctionCall handles call-like forms that aren't `recv.method(...)`:
// Result.success/Result.error construction and the small set of global
// intrinsic functions (print/println) exposed without a receiver.
func (ev *Evaluator) evalFunctionCall(n *ast.FunctionCall, env *runtime.Environment) (Outcome, error) {
	args := make([]object.Value, len(n.Args))
	for i, a := range n.Args {
		ao, err := ev.Eval(a, env)
		if err != nil || isUnwind(ao) {
			return ao, err
		}
		args[i] = ao.Value
	}

	switch n.Callee {
	case "Result.success":
		if len(args) != 1 {
			return Outcome{}, ev.evalErr(n, "Result.success expects 1 argument, got %d", len(args))
		}
		return normal(&object.Result{Ok: true, Value: args[0]}), nil
	case "Result.error":
		if len(args) != 1 {
			return Outcome{}, ev.evalErr(n, "Result.error expects 1 argument, got %d", len(args))
		}
		return normal(&object.Result{Ok: false, Value: args[0]}), nil
	case "Error":
		msg := ""
		code := ""
		if len(args) > 0 {
			if t, ok := args[0].(*object.Text); ok {
				msg = t.V
			}
		}
		if len(args) > 1 {
			if t, ok := args[1].(*object.Text); ok {
				code = t.V
			}
		}
		return normal(&object.Error{Message: msg, Code: code}), nil
	case "print":
		for _, a := range args {
			fmt.Fprint(ev.Stdout, a.Inspect())
		}
		return normal(&object.Bool{V: false}), nil
	case "println":
		for _, a := range args {
			fmt.Fprint(ev.Stdout, a.Inspect())
		}
		fmt.Fprintln(ev.Stdout)
		return normal(&object.Bool{V: false}), nil
	default:
		return Outcome{}, ev.refErr(n, "undefined function '%s'", n.Callee)
	}
}

// evalMemberAccess covers three syntactically identical forms that the
// parser can't distinguish without running the program: Enum member
// selection (EnumName.Member), Record field reads, and Object property
// reads. Disambiguation happens here at evaluation time based on what the
// object expression actually resolves to.
func (ev *Evaluator) evalMemberAccess(n *ast.MemberAccess, env *runtime.Environment) (Outcome, error) {
	if ident, ok := n.Object.(*ast.Identifier); ok {
		if enumType, isEnum := ev.Enums[ident.Name]; isEnum {
			if _, ok := enumType.Members[n.Member]; !ok {
				return Outcome{}, ev.refErr(n, "Enum %s has no member '%s'", ident.Name, n.Member)
			}
			return normal(&object.Enum{Type: enumType, Member: n.Member}), nil
		}
	}

	oo, err := ev.Eval(n.Object, env)
	if err != nil || isUnwind(oo) {
		return oo, err
	}

	switch v := oo.Value.(type) {
	case *object.Object:
		if !v.Instance.HasProperty(n.Member) {
			return Outcome{}, ev.refErr(n, "Object %s has no property '%s'", v.Instance.Name, n.Member)
		}
		val, _ := v.Instance.Properties[n.Member]
		return normal(val), nil
	case *object.Record:
		val, ok := v.Values[n.Member]
		if !ok {
			return Outcome{}, ev.refErr(n, "Record %s has no field '%s'", v.Type.Name, n.Member)
		}
		return normal(val), nil
	case *object.Result:
		switch n.Member {
		case "ok":
			return normal(&object.Bool{V: v.Ok}), nil
		case "value":
			return normal(v.Value), nil
		default:
			return Outcome{}, ev.refErr(n, "Result has no member '%s'", n.Member)
		}
	case *object.Error:
		switch n.Member {
		case "message":
			return normal(&object.Text{V: v.Message}), nil
		case "code":
			return normal(&object.Text{V: v.Code}), nil
		default:
			return Outcome{}, ev.refErr(n, "Error has no member '%s'", n.Member)
		}
	default:
		return Outcome{}, ev.refErr(n, "cannot access member '%s' on %s", n.Member, oo.Value.Kind())
	}
}
