package modules

import (
	"math"

	"github.com/o2l-lang/o2l/internal/object"
)

// newTestingModule ships the non-stub subset of the original's
// TestLibrary.cpp assertions (spec.md SPEC_FULL.md §D.4): equality/
// ordering/emptiness checks plus a running pass/fail counter, faithfully
// including the float/double tolerance from §3.4 and the original's own
// stubbed `assertNull` (always true — the original never implemented a
// real null/None check since O2L has no null value).
func newTestingModule() *object.ObjectInstance {
	inst := object.NewObjectInstance("testing")
	passed, failed := 0, 0

	record := func(ok bool) *object.Bool {
		if ok {
			passed++
		} else {
			failed++
		}
		return &object.Bool{V: ok}
	}

	inst.AddMethod(&object.Method{Name: "assertEqual", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			if len(args) != 2 {
				return nil, errf("assertEqual expects 2 arguments, got %d", len(args))
			}
			return record(valuesApproxEqual(args[0], args[1])), nil
		}})
	inst.AddMethod(&object.Method{Name: "assertTrue", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			b, ok := args[0].(*object.Bool)
			return record(ok && b.V), nil
		}})
	inst.AddMethod(&object.Method{Name: "assertFalse", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			b, ok := args[0].(*object.Bool)
			return record(ok && !b.V), nil
		}})
	inst.AddMethod(&object.Method{Name: "assertNull", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			return record(true), nil
		}})
	inst.AddMethod(&object.Method{Name: "assertNotNull", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			return record(len(args) == 1 && args[0] != nil), nil
		}})
	inst.AddMethod(&object.Method{Name: "assertGreaterThan", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			c, err := compareNumeric(args)
			if err != nil {
				return nil, err
			}
			return record(c > 0), nil
		}})
	inst.AddMethod(&object.Method{Name: "assertGreaterEqual", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			c, err := compareNumeric(args)
			if err != nil {
				return nil, err
			}
			return record(c >= 0), nil
		}})
	inst.AddMethod(&object.Method{Name: "assertLess", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			c, err := compareNumeric(args)
			if err != nil {
				return nil, err
			}
			return record(c < 0), nil
		}})
	inst.AddMethod(&object.Method{Name: "assertLessEqual", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			c, err := compareNumeric(args)
			if err != nil {
				return nil, err
			}
			return record(c <= 0), nil
		}})
	inst.AddMethod(&object.Method{Name: "assertNotEmpty", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			switch v := args[0].(type) {
			case *object.Text:
				return record(v.V != ""), nil
			case *object.List:
				return record(len(v.Items) > 0), nil
			case *object.Set:
				return record(len(v.Items) > 0), nil
			case *object.Map:
				return record(len(v.Pairs) > 0), nil
			default:
				return record(true), nil
			}
		}})
	inst.AddMethod(&object.Method{Name: "summary", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			return &object.Text{V: summaryLine(passed, failed)}, nil
		}})
	return inst
}

func summaryLine(passed, failed int) string {
	total := passed + failed
	status := "PASS"
	if failed > 0 {
		status = "FAIL"
	}
	return status + ": " + itoa(passed) + "/" + itoa(total) + " assertions passed"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

// valuesApproxEqual matches spec §3.4's 1e-7/1e-15 Float/Double tolerance
// rather than bit-exact equality, so floating-point test assertions behave
// the way the original's TestLibrary.cpp promises.
func valuesApproxEqual(a, b object.Value) bool {
	switch x := a.(type) {
	case *object.Float:
		y, ok := b.(*object.Float)
		return ok && math.Abs(float64(x.V-y.V)) < 1e-7
	case *object.Double:
		y, ok := b.(*object.Double)
		return ok && math.Abs(x.V-y.V) < 1e-15
	default:
		return object.Equal(a, b)
	}
}

func compareNumeric(args []object.Value) (int, error) {
	if len(args) != 2 {
		return 0, errf("expects 2 arguments, got %d", len(args))
	}
	if !object.IsNumeric(args[0].Kind()) || !object.IsNumeric(args[1].Kind()) {
		return 0, errf("arguments must be numeric")
	}
	c, ok := object.Compare(args[0], args[1])
	if !ok {
		return 0, errf("arguments cannot be ordered")
	}
	return c, nil
}
