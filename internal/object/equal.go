package object

import "math"

// Equal implements §3.4: structural equality for same-tag primitives,
// numeric promotion across mixed numeric tags, false across any other
// cross-tag pair.
func Equal(a, b Value) bool {
	if IsNumeric(a.Kind()) && IsNumeric(b.Kind()) && a.Kind() != b.Kind() {
		af, _ := asDouble(a)
		bf, _ := asDouble(b)
		return af == bf
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Int:
		return av.V == b.(*Int).V
	case *Long:
		return av.V == b.(*Long).V
	case *Float:
		return av.V == b.(*Float).V // raw IEEE comparison; NaN != NaN
	case *Double:
		return av.V == b.(*Double).V
	case *Bool:
		return av.V == b.(*Bool).V
	case *Char:
		return av.V == b.(*Char).V
	case *Text:
		return av.V == b.(*Text).V
	case *List:
		bv := b.(*List)
		if len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv := b.(*Map)
		if len(av.Pairs) != len(bv.Pairs) {
			return false
		}
		for _, p := range av.Pairs {
			bval, ok := bv.Get(p.Key)
			if !ok || !Equal(p.Value, bval) {
				return false
			}
		}
		return true
	case *Set:
		bv := b.(*Set)
		if len(av.Items) != len(bv.Items) {
			return false
		}
		for _, it := range av.Items {
			if !bv.Contains(it) {
				return false
			}
		}
		return true
	case *Enum:
		bv := b.(*Enum)
		return av.Type.Name == bv.Type.Name && av.Member == bv.Member
	case *Record:
		bv := b.(*Record)
		if av.Type.Name != bv.Type.Name {
			return false
		}
		for _, f := range av.Type.Fields {
			if !Equal(av.Values[f], bv.Values[f]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		return av.Instance == bv.Instance
	case *Error:
		bv := b.(*Error)
		return av.Message == bv.Message && av.Code == bv.Code
	default:
		return false
	}
}

func asDouble(v Value) (float64, bool) {
	switch t := v.(type) {
	case *Int:
		return float64(t.V), true
	case *Long:
		return float64(t.V), true
	case *Float:
		return float64(t.V), true
	case *Double:
		return t.V, true
	default:
		return 0, false
	}
}

// Compare orders two values per §3.4/§4.3.4: same-tag ordering, Int<->Float
// style promotion for mixed numerics, error otherwise. ok is false when the
// pair cannot be ordered (EvaluationError territory for the caller).
func Compare(a, b Value) (result int, ok bool) {
	if IsNumeric(a.Kind()) && IsNumeric(b.Kind()) {
		af, _ := asDouble(a)
		bf, _ := asDouble(b)
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	if a.Kind() != b.Kind() {
		return 0, false
	}
	switch av := a.(type) {
	case *Text:
		bv := b.(*Text)
		switch {
		case av.V < bv.V:
			return -1, true
		case av.V > bv.V:
			return 1, true
		default:
			return 0, true
		}
	case *Char:
		bv := b.(*Char)
		return int(av.V) - int(bv.V), true
	default:
		return 0, false
	}
}

// NearlyEqual implements the testing library's assertEqual tolerance rule
// (§3.4): 1e-7 for Float, 1e-15 for Double. Non-float/double pairs fall
// back to structural Equal.
func NearlyEqual(a, b Value) bool {
	switch av := a.(type) {
	case *Float:
		if bv, ok := b.(*Float); ok {
			return math.Abs(float64(av.V-bv.V)) <= 1e-7
		}
	case *Double:
		if bv, ok := b.(*Double); ok {
			return math.Abs(av.V-bv.V) <= 1e-15
		}
	}
	return Equal(a, b)
}
