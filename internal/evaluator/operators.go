package evaluator

import (
	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/object"
	"github.com/o2l-lang/o2l/internal/runtime"
)

func (ev *Evaluator) evalBinaryOp(n *ast.BinaryOp, env *runtime.Environment) (Outcome, error) {
	lo, err := ev.Eval(n.Left, env)
	if err != nil || isUnwind(lo) {
		return lo, err
	}
	ro, err := ev.Eval(n.Right, env)
	if err != nil || isUnwind(ro) {
		return ro, err
	}
	left, right := lo.Value, ro.Value

	if left.Kind() == object.KText && right.Kind() == object.KText && n.Op == "+" {
		return normal(&object.Text{V: left.(*object.Text).V + right.(*object.Text).V}), nil
	}

	if !object.IsNumeric(left.Kind()) || !object.IsNumeric(right.Kind()) {
		return Outcome{}, ev.evalErr(n, "Unsupported binary operation %s between %s and %s", n.Op, left.Kind(), right.Kind())
	}

	wide := object.WiderKind(left.Kind(), right.Kind())
	result, err := applyNumericBinary(n.Op, wide, left, right)
	if err != nil {
		return Outcome{}, ev.evalErr(n, "%s", err.Error())
	}
	return normal(result), nil
}

func (ev *Evaluator) evalComparison(n *ast.Comparison, env *runtime.Environment) (Outcome, error) {
	lo, err := ev.Eval(n.Left, env)
	if err != nil || isUnwind(lo) {
		return lo, err
	}
	ro, err := ev.Eval(n.Right, env)
	if err != nil || isUnwind(ro) {
		return ro, err
	}
	left, right := lo.Value, ro.Value

	switch n.Op {
	case "==":
		return normal(&object.Bool{V: object.Equal(left, right)}), nil
	case "!=":
		return normal(&object.Bool{V: !object.Equal(left, right)}), nil
	}

	if left.Kind() == object.KBool || right.Kind() == object.KBool {
		return Outcome{}, ev.evalErr(n, "Bool only supports == and !=")
	}
	result, ok := object.Compare(left, right)
	if !ok {
		return Outcome{}, ev.evalErr(n, "Unsupported comparison %s between %s and %s", n.Op, left.Kind(), right.Kind())
	}
	var b bool
	switch n.Op {
	case "<":
		b = result < 0
	case ">":
		b = result > 0
	case "<=":
		b = result <= 0
	case ">=":
		b = result >= 0
	default:
		return Outcome{}, ev.evalErr(n, "unknown comparison operator %q", n.Op)
	}
	return normal(&object.Bool{V: b}), nil
}

func (ev *Evaluator) evalLogical(n *ast.Logical, env *runtime.Environment) (Outcome, error) {
	lo, err := ev.Eval(n.Left, env)
	if err != nil || isUnwind(lo) {
		return lo, err
	}
	lb, ok := lo.Value.(*object.Bool)
	if !ok {
		return Outcome{}, ev.typeErr(n, "left operand of %s must be Bool, got %s", n.Op, lo.Value.Kind())
	}
	if n.Op == "&&" && !lb.V {
		return normal(&object.Bool{V: false}), nil
	}
	if n.Op == "||" && lb.V {
		return normal(&object.Bool{V: true}), nil
	}
	ro, err := ev.Eval(n.Right, env)
	if err != nil || isUnwind(ro) {
		return ro, err
	}
	rb, ok := ro.Value.(*object.Bool)
	if !ok {
		return Outcome{}, ev.typeErr(n, "right operand of %s must be Bool, got %s", n.Op, ro.Value.Kind())
	}
	return normal(&object.Bool{V: rb.V}), nil
}

func (ev *Evaluator) evalUnary(n *ast.Unary, env *runtime.Environment) (Outcome, error) {
	oo, err := ev.Eval(n.Operand, env)
	if err != nil || isUnwind(oo) {
		return oo, err
	}
	v := oo.Value
	switch n.Op {
	case "-":
		switch x := v.(type) {
		case *object.Int:
			return normal(&object.Int{V: -x.V}), nil
		case *object.Long:
			return normal(&object.Long{V: -x.V}), nil
		case *object.Float:
			return normal(&object.Float{V: -x.V}), nil
		case *object.Double:
			return normal(&object.Double{V: -x.V}), nil
		default:
			return Outcome{}, ev.evalErr(n, "unary '-' requires a numeric operand, got %s", v.Kind())
		}
	case "!":
		b, ok := v.(*object.Bool)
		if !ok {
			return Outcome{}, ev.typeErr(n, "unary '!' requires a Bool operand, got %s", v.Kind())
		}
		return normal(&object.Bool{V: !b.V}), nil
	default:
		return Outcome{}, ev.evalErr(n, "unknown unary operator %q", n.Op)
	}
}
