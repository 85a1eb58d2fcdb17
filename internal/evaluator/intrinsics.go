package evaluator

import (
	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/object"
)

// dispatchIntrinsic implements spec §4.6: the built-in method set carried
// by every non-Object value (Text, the four numeric kinds, List, Map, Set).
// There is no user-visible way to add to this table (no protocol
// conformance for intrinsics), so a flat switch on recv's Go type is the
// idiomatic shape here, mirroring how the teacher's own builtin-function
// table dispatches by argument kind.
func (ev *Evaluator) dispatchIntrinsic(n *ast.MethodCall, recv object.Value, method string, args []object.Value) (object.Value, error) {
	switch v := recv.(type) {
	case *object.Text:
		return ev.textIntrinsic(n, v, method, args)
	case *object.Int, *object.Long, *object.Float, *object.Double, *object.Bool:
		return ev.numericIntrinsic(n, recv, method, args)
	case *object.List:
		return ev.listIntrinsic(n, v, method, args)
	case *object.Map:
		return ev.mapIntrinsic(n, v, method, args)
	case *object.Set:
		return ev.setIntrinsic(n, v, method, args)
	default:
		return nil, ev.refErr(n, "%s has no method '%s'", recv.Kind(), method)
	}
}

func (ev *Evaluator) arity(n *ast.MethodCall, method string, args []object.Value, want int) error {
	if len(args) != want {
		return ev.evalErr(n, "%s expects %d argument(s), got %d", method, want, len(args))
	}
	return nil
}

func textArg(n *ast.MethodCall, ev *Evaluator, method string, args []object.Value, i int) (string, error) {
	t, ok := args[i].(*object.Text)
	if !ok {
		return "", ev.typeErr(n, "%s argument %d must be Text, got %s", method, i+1, args[i].Kind())
	}
	return t.V, nil
}
