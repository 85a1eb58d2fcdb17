package evaluator

import (
	"fmt"

	"github.com/o2l-lang/o2l/internal/object"
)

// applyNumericBinary operates in the wider of the two operand kinds, per
// spec §4.3.4's "Int < Long < Float < Double" lattice: both operands are
// widened to `wide` and the operator runs there.
func applyNumericBinary(op string, wide object.Kind, left, right object.Value) (object.Value, error) {
	switch wide {
	case object.KInt:
		a, b := toInt32(left), toInt32(right)
		return intArith(op, a, b)
	case object.KLong:
		a, b := toInt64(left), toInt64(right)
		return longArith(op, a, b)
	case object.KFloat:
		a, b := toFloat32(left), toFloat32(right)
		return floatArith(op, a, b)
	case object.KDouble:
		a, b := toFloat64(left), toFloat64(right)
		return doubleArith(op, a, b)
	default:
		return nil, fmt.Errorf("non-numeric widened kind %s", wide)
	}
}

func toInt32(v object.Value) int32 {
	switch x := v.(type) {
	case *object.Int:
		return x.V
	case *object.Long:
		return int32(x.V)
	case *object.Float:
		return int32(x.V)
	case *object.Double:
		return int32(x.V)
	}
	return 0
}

func toInt64(v object.Value) int64 {
	switch x := v.(type) {
	case *object.Int:
		return int64(x.V)
	case *object.Long:
		return x.V
	case *object.Float:
		return int64(x.V)
	case *object.Double:
		return int64(x.V)
	}
	return 0
}

func toFloat32(v object.Value) float32 {
	switch x := v.(type) {
	case *object.Int:
		return float32(x.V)
	case *object.Long:
		return float32(x.V)
	case *object.Float:
		return x.V
	case *object.Double:
		return float32(x.V)
	}
	return 0
}

func toFloat64(v object.Value) float64 {
	switch x := v.(type) {
	case *object.Int:
		return float64(x.V)
	case *object.Long:
		return float64(x.V)
	case *object.Float:
		return float64(x.V)
	case *object.Double:
		return x.V
	}
	return 0
}

func intArith(op string, a, b int32) (object.Value, error) {
	switch op {
	case "+":
		return &object.Int{V: a + b}, nil
	case "-":
		return &object.Int{V: a - b}, nil
	case "*":
		return &object.Int{V: a * b}, nil
	case "/":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &object.Int{V: a / b}, nil
	case "%":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &object.Int{V: a % b}, nil
	default:
		return nil, fmt.Errorf("unknown binary operator %q", op)
	}
}

func longArith(op string, a, b int64) (object.Value, error) {
	switch op {
	case "+":
		return &object.Long{V: a + b}, nil
	case "-":
		return &object.Long{V: a - b}, nil
	case "*":
		return &object.Long{V: a * b}, nil
	case "/":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &object.Long{V: a / b}, nil
	case "%":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &object.Long{V: a % b}, nil
	default:
		return nil, fmt.Errorf("unknown binary operator %q", op)
	}
}

func floatArith(op string, a, b float32) (object.Value, error) {
	switch op {
	case "+":
		return &object.Float{V: a + b}, nil
	case "-":
		return &object.Float{V: a - b}, nil
	case "*":
		return &object.Float{V: a * b}, nil
	case "/":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &object.Float{V: a / b}, nil
	case "%":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &object.Float{V: float32(int64(a) % int64(b))}, nil
	default:
		return nil, fmt.Errorf("unknown binary operator %q", op)
	}
}

func doubleArith(op string, a, b float64) (object.Value, error) {
	switch op {
	case "+":
		return &object.Double{V: a + b}, nil
	case "-":
		return &object.Double{V: a - b}, nil
	case "*":
		return &object.Double{V: a * b}, nil
	case "/":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &object.Double{V: a / b}, nil
	case "%":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &object.Double{V: float64(int64(a) % int64(b))}, nil
	default:
		return nil, fmt.Errorf("unknown binary operator %q", op)
	}
}
