package evaluator

import (
	"math"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/object"
)

// numericIntrinsic implements the small intrinsic set shared by Int, Long,
// Float, Double and Bool (spec §4.6): toString plus cross-conversion, and
// the Float/Double-only NaN/infinity predicates.
func (ev *Evaluator) numericIntrinsic(n *ast.MethodCall, recv object.Value, method string, args []object.Value) (object.Value, error) {
	switch method {
	case "toString":
		return &object.Text{V: recv.Inspect()}, nil
	case "toInt":
		return &object.Int{V: int32(toInt64(recv))}, nil
	case "toLong":
		return &object.Long{V: toInt64(recv)}, nil
	case "toFloat":
		return &object.Float{V: toFloat32(recv)}, nil
	case "toDouble":
		return &object.Double{V: toFloat64(recv)}, nil
	case "toBool":
		if b, ok := recv.(*object.Bool); ok {
			return b, nil
		}
		return &object.Bool{V: toFloat64(recv) != 0}, nil
	}

	switch v := recv.(type) {
	case *object.Float:
		switch method {
		case "isNaN":
			return &object.Bool{V: math.IsNaN(float64(v.V))}, nil
		case "isInfinite":
			return &object.Bool{V: math.IsInf(float64(v.V), 0)}, nil
		case "isFinite":
			return &object.Bool{V: !math.IsNaN(float64(v.V)) && !math.IsInf(float64(v.V), 0)}, nil
		}
	case *object.Double:
		switch method {
		case "isNaN":
			return &object.Bool{V: math.IsNaN(v.V)}, nil
		case "isInfinite":
			return &object.Bool{V: math.IsInf(v.V, 0)}, nil
		case "isFinite":
			return &object.Bool{V: !math.IsNaN(v.V) && !math.IsInf(v.V, 0)}, nil
		}
	}

	return nil, ev.refErr(n, "%s has no method '%s'", recv.Kind(), method)
}
