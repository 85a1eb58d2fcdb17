package evaluator

import (
	"testing"

	"github.com/o2l-lang/o2l/internal/lexer"
	"github.com/o2l-lang/o2l/internal/object"
	"github.com/o2l-lang/o2l/internal/parser"
)

// evalSrc parses and evaluates every top-level declaration of src, then
// calls Main.main() if Main declares it, returning its result value.
func evalSrc(t *testing.T, src string) (object.Value, error) {
	t.Helper()
	lx := lexer.New(src)
	p := parser.New(lx, "<test>")
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}

	ev := New("<test>", nil)
	if err := ev.EvalProgram(prog); err != nil {
		return nil, err
	}

	mainVal, ok := ev.Global.Get("Main")
	if !ok {
		return nil, nil
	}
	mainObj := mainVal.(*object.Object)
	method, ok := mainObj.Instance.Methods["main"]
	if !ok {
		return nil, nil
	}
	return method.Fn(mainObj.Instance, nil)
}

func TestObjectDeclarationRegistersItselfAsGlobalInstance(t *testing.T) {
	src := `Object Main { method main(): Int { return 1 } }`
	lx := lexer.New(src)
	p := parser.New(lx, "<test>")
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	ev := New("<test>", nil)
	if err := ev.EvalProgram(prog); err != nil {
		t.Fatalf("EvalProgram: %s", err)
	}
	v, ok := ev.Global.Get("Main")
	if !ok {
		t.Fatal("Object declaration did not register 'Main' in the global environment")
	}
	obj, ok := v.(*object.Object)
	if !ok {
		t.Fatalf("Global.Get(Main) = %T, want *object.Object", v)
	}
	if _, ok := obj.Instance.Methods["main"]; !ok {
		t.Fatal("registered Main instance has no 'main' method")
	}
}

func TestNewClonesPrototypeWithIndependentProperties(t *testing.T) {
	src := `
Object Counter {
    property n: Int
    constructor(start: Int) { this.n = start }
    @external method get(): Int { return this.n }
}
Object Main {
    method main(): Int {
        a: Counter = new Counter(1)
        b: Counter = new Counter(2)
        return a.get() + b.get()
    }
}
`
	v, err := evalSrc(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := v.(*object.Int).V; got != 3 {
		t.Errorf("a.get() + b.get() = %d, want 3", got)
	}
}

func TestProtocolConformanceEnforced(t *testing.T) {
	src := `
Protocol Greeter { method greet(): Text }
Object Silent : Greeter { method other(): Int { return 1 } }
Object Main { method main(): Int { return 0 } }
`
	_, err := evalSrc(t, src)
	if err == nil {
		t.Fatal("expected a conformance error, Silent does not implement Greeter")
	}
}

func TestProtocolConformanceSatisfied(t *testing.T) {
	src := `
Protocol Greeter { method greet(): Text }
Object Polite : Greeter { method greet(): Text { return "hi" } }
Object Main { method main(): Int { return 0 } }
`
	if _, err := evalSrc(t, src); err != nil {
		t.Fatalf("unexpected conformance error: %s", err)
	}
}

func TestListIntrinsicsAddAndSize(t *testing.T) {
	src := `
Object Main {
    method main(): Int {
        xs: List<Int> = List<Int>[1, 2, 3]
        xs.add(4)
        return xs.size()
    }
}
`
	v, err := evalSrc(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := v.(*object.Int).V; got != 4 {
		t.Errorf("xs.size() after add = %d, want 4", got)
	}
}

func TestSetIntrinsicsDeduplicate(t *testing.T) {
	src := `
Object Main {
    method main(): Int {
        s: Set<Int> = Set<Int>[1, 1, 2]
        return s.size()
    }
}
`
	v, err := evalSrc(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := v.(*object.Int).V; got != 2 {
		t.Errorf("Set<Int>[1, 1, 2].size() = %d, want 2", got)
	}
}

func TestMapIntrinsicsGetSet(t *testing.T) {
	src := `
Object Main {
    method main(): Int {
        m: Map<Text, Int> = Map<Text, Int>{"a": 1}
        m.set("b", 2)
        return m.get("a") + m.get("b")
    }
}
`
	v, err := evalSrc(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := v.(*object.Int).V; got != 3 {
		t.Errorf("m.get(a)+m.get(b) = %d, want 3", got)
	}
}

func TestTryCatchCatchesThrow(t *testing.T) {
	src := `
Object Main {
    method main(): Int {
        try {
            throw "boom"
        } catch (e) {
            return 1
        }
        return 0
    }
}
`
	v, err := evalSrc(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := v.(*object.Int).V; got != 1 {
		t.Errorf("main() = %d, want 1 (caught)", got)
	}
}

func TestFinallyRunsOnNormalReturn(t *testing.T) {
	src := `
Object Main {
    method main(): Int {
        x: Int = 0
        try {
            x = 1
        } finally {
            x = 2
        }
        return x
    }
}
`
	v, err := evalSrc(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := v.(*object.Int).V; got != 2 {
		t.Errorf("main() = %d, want 2 (finally overwrote x)", got)
	}
}

func TestNumericPromotionWidensToDouble(t *testing.T) {
	src := `Object Main { method main(): Double { return 1 + 2.5 } }`
	v, err := evalSrc(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	dv, ok := v.(*object.Double)
	if !ok {
		t.Fatalf("main() returned %T, want *object.Double", v)
	}
	if dv.V != 3.5 {
		t.Errorf("main() = %v, want 3.5", dv.V)
	}
}

func TestResultSuccessCarriesValue(t *testing.T) {
	src := `
Object Main {
    method main(): Int {
        r: Result = Result.success(5)
        if (r.ok) {
            return r.value
        }
        return -1
    }
}
`
	v, err := evalSrc(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := v.(*object.Int).V; got != 5 {
		t.Errorf("main() = %d, want 5", got)
	}
}

func TestUndefinedObjectTypeIsUnresolvedReference(t *testing.T) {
	src := `Object Main { method main(): Int { x: Ghost = new Ghost() return 0 } }`
	_, err := evalSrc(t, src)
	if err == nil {
		t.Fatal("expected an unresolved-reference error for undefined Object type 'Ghost'")
	}
}
