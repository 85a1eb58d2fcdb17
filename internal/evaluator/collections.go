package evaluator

import (
	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/object"
	"github.com/o2l-lang/o2l/internal/runtime"
)

// evalListLiteral evaluates elements left to right and requires every
// element's tag to equal the declared ElementType, if one was given
// (spec §4.3.4: "List<T> requires element tag equality at construction").
func (ev *Evaluator) evalListLiteral(n *ast.ListLiteral, env *runtime.Environment) (Outcome, error) {
	items := make([]object.Value, len(n.Elements))
	for i, e := range n.Elements {
		out, err := ev.Eval(e, env)
		if err != nil || isUnwind(out) {
			return out, err
		}
		if n.ElementType != "" {
			if ok, kind := kindMatches(n.ElementType, out.Value); !ok {
				return Outcome{}, ev.typeErr(n, "List<%s> element %d has kind %s", n.ElementType, i, kind)
			}
		}
		items[i] = out.Value
	}
	return normal(&object.List{ElemKind: elemKind(n.ElementType, items), Items: items}), nil
}

func (ev *Evaluator) evalSetLiteral(n *ast.SetLiteral, env *runtime.Environment) (Outcome, error) {
	set := &object.Set{}
	for i, e := range n.Elements {
		out, err := ev.Eval(e, env)
		if err != nil || isUnwind(out) {
			return out, err
		}
		if n.ElementType != "" {
			if ok, kind := kindMatches(n.ElementType, out.Value); !ok {
				return Outcome{}, ev.typeErr(n, "Set<%s> element %d has kind %s", n.ElementType, i, kind)
			}
		}
		set.Add(out.Value)
		_ = i
	}
	set.ElemKind = elemKind(n.ElementType, set.Items)
	return normal(set), nil
}

func (ev *Evaluator) evalMapLiteral(n *ast.MapLiteral, env *runtime.Environment) (Outcome, error) {
	m := &object.Map{}
	for _, entry := range n.Entries {
		ko, err := ev.Eval(entry.Key, env)
		if err != nil || isUnwind(ko) {
			return ko, err
		}
		vo, err := ev.Eval(entry.Value, env)
		if err != nil || isUnwind(vo) {
			return vo, err
		}
		if n.KeyType != "" {
			if ok, kind := kindMatches(n.KeyType, ko.Value); !ok {
				return Outcome{}, ev.typeErr(n, "Map key has kind %s, want %s", kind, n.KeyType)
			}
		}
		if n.ValueType != "" {
			if ok, kind := kindMatches(n.ValueType, vo.Value); !ok {
				return Outcome{}, ev.typeErr(n, "Map value has kind %s, want %s", kind, n.ValueType)
			}
		}
		m.Set(ko.Value, vo.Value)
	}
	m.KeyKind = object.Kind(n.KeyType)
	m.ValueKind = object.Kind(n.ValueType)
	return normal(m), nil
}

// kindMatches checks a declared element/key/value type name against an
// actual runtime value's tag, allowing the same numeric widening used for
// variable declarations.
func kindMatches(declared string, v object.Value) (bool, object.Kind) {
	if _, ok := assignTo(declared, v); ok {
		return true, v.Kind()
	}
	return false, v.Kind()
}

func elemKind(declared string, items []object.Value) object.Kind {
	if declared != "" {
		return object.Kind(declared)
	}
	if len(items) > 0 {
		return items[0].Kind()
	}
	return ""
}
