package evaluator

import (
	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/object"
)

// listIntrinsic implements spec §4.6's List method set: mutation in
// place (add/remove/pop/reverse/clear) and the read-only size/empty/get.
func (ev *Evaluator) listIntrinsic(n *ast.MethodCall, recv *object.List, method string, args []object.Value) (object.Value, error) {
	switch method {
	case "add":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		recv.Items = append(recv.Items, args[0])
		return &object.Bool{V: true}, nil
	case "get":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		idx, ok := args[0].(*object.Int)
		if !ok {
			return nil, ev.typeErr(n, "get index must be Int")
		}
		if int(idx.V) < 0 || int(idx.V) >= len(recv.Items) {
			return nil, ev.evalErr(n, "List index %d out of range (size %d)", idx.V, len(recv.Items))
		}
		return recv.Items[idx.V], nil
	case "remove":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		idx, ok := args[0].(*object.Int)
		if !ok {
			return nil, ev.typeErr(n, "remove index must be Int")
		}
		if int(idx.V) < 0 || int(idx.V) >= len(recv.Items) {
			return nil, ev.evalErr(n, "List index %d out of range (size %d)", idx.V, len(recv.Items))
		}
		removed := recv.Items[idx.V]
		recv.Items = append(recv.Items[:idx.V], recv.Items[idx.V+1:]...)
		return removed, nil
	case "pop":
		if len(recv.Items) == 0 {
			return nil, ev.evalErr(n, "pop on empty List")
		}
		last := recv.Items[len(recv.Items)-1]
		recv.Items = recv.Items[:len(recv.Items)-1]
		return last, nil
	case "reverse":
		for i, j := 0, len(recv.Items)-1; i < j; i, j = i+1, j-1 {
			recv.Items[i], recv.Items[j] = recv.Items[j], recv.Items[i]
		}
		return &object.Bool{V: true}, nil
	case "size":
		return &object.Int{V: int32(len(recv.Items))}, nil
	case "empty":
		return &object.Bool{V: len(recv.Items) == 0}, nil
	case "clear":
		recv.Items = nil
		return &object.Bool{V: true}, nil
	case "iterator":
		return &object.Object{Instance: newListIterator(recv)}, nil
	default:
		return nil, ev.refErr(n, "List has no method '%s'", method)
	}
}

// newListIterator builds a minimal stateful ObjectInstance exposing
// hasNext/next, closing over a private index — List iteration has no
// dedicated Value kind in spec §3.1, so an Object is the natural vehicle.
func newListIterator(list *object.List) *object.ObjectInstance {
	it := object.NewObjectInstance("ListIterator")
	idx := 0
	it.AddMethod(&object.Method{
		Name: "hasNext", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			return &object.Bool{V: idx < len(list.Items)}, nil
		},
	})
	it.AddMethod(&object.Method{
		Name: "next", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			if idx >= len(list.Items) {
				return nil, errf("iterator exhausted")
			}
			v := list.Items[idx]
			idx++
			return v, nil
		},
	})
	return it
}

func (ev *Evaluator) mapIntrinsic(n *ast.MethodCall, recv *object.Map, method string, args []object.Value) (object.Value, error) {
	switch method {
	case "get":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		v, ok := recv.Get(args[0])
		if !ok {
			return nil, ev.evalErr(n, "Map has no key %s", args[0].Inspect())
		}
		return v, nil
	case "set":
		if err := ev.arity(n, method, args, 2); err != nil {
			return nil, err
		}
		recv.Set(args[0], args[1])
		return &object.Bool{V: true}, nil
	case "size":
		return &object.Int{V: int32(len(recv.Pairs))}, nil
	case "empty":
		return &object.Bool{V: len(recv.Pairs) == 0}, nil
	default:
		return nil, ev.refErr(n, "Map has no method '%s'", method)
	}
}

func (ev *Evaluator) setIntrinsic(n *ast.MethodCall, recv *object.Set, method string, args []object.Value) (object.Value, error) {
	switch method {
	case "add":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		return &object.Bool{V: recv.Add(args[0])}, nil
	case "contains":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		return &object.Bool{V: recv.Contains(args[0])}, nil
	case "size":
		return &object.Int{V: int32(len(recv.Items))}, nil
	case "empty":
		return &object.Bool{V: len(recv.Items) == 0}, nil
	default:
		return nil, ev.refErr(n, "Set has no method '%s'", method)
	}
}
