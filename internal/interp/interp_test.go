package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/o2l-lang/o2l/internal/lexer"
	"github.com/o2l-lang/o2l/internal/parser"
)

// run parses src as file, evaluates it, and invokes Main.main(args) if
// present, returning captured stdout, the exit code, and any error.
func run(t *testing.T, src string, args []string) (string, int, error) {
	t.Helper()
	lx := lexer.New(src)
	p := parser.New(lx, "<test>")
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}

	in := New("<test>")
	var out bytes.Buffer
	in.Stdout = &out
	in.Stderr = &out

	code, execErr := in.Execute(prog, args)
	return out.String(), code, execErr
}

// =============================================================================
// Scenario 1: binary op promotion
// =============================================================================

func TestScenario_BinaryOpPromotion(t *testing.T) {
	src := `Object Main { method main(): Double { return 1 + 2.5 } }`
	_, code, err := run(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if code != 0 {
		t.Errorf("want exit code 0 (return is not Int), got %d", code)
	}
}

// =============================================================================
// Scenario 2: constant reassignment rejected
// =============================================================================

func TestScenario_ConstReassignmentRejected(t *testing.T) {
	src := `Object Main { method main(): Int { const x: Int = 5; x = 6; return x } }`
	_, _, err := run(t, src, nil)
	if err == nil {
		t.Fatal("expected an evaluation error, got none")
	}
	if !strings.Contains(err.Error(), "Cannot reassign constant variable 'x'") {
		t.Errorf("error %q does not contain expected message", err.Error())
	}
}

// =============================================================================
// Scenario 3: external-visibility enforcement
// =============================================================================

func TestScenario_ExternalVisibilityEnforcement(t *testing.T) {
	src := `
Object Calc { method secret(): Int { return 42 } }
Object Main { method main(): Int { c: Calc = new Calc(); return c.secret() } }
`
	_, _, err := run(t, src, nil)
	if err == nil {
		t.Fatal("expected an evaluation error, got none")
	}
	if !strings.Contains(err.Error(), "not externally accessible") {
		t.Errorf("error %q does not contain expected message", err.Error())
	}
}

// =============================================================================
// Scenario 4: string comparison
// =============================================================================

func TestScenario_StringComparison(t *testing.T) {
	src := `Object Main { method main(): Int { if ("hello" == "hello") { return 1 } return 0 } }`
	_, code, err := run(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if code != 1 {
		t.Errorf("want exit code 1, got %d", code)
	}
}

// =============================================================================
// Scenario 5: while with break + continue
// =============================================================================

func TestScenario_WhileBreakContinue(t *testing.T) {
	src := `
Object Main {
    method main(): Int {
        sum: Int = 0
        i: Int = 1
        while true {
            if i > 9 {
                break
            }
            if i % 2 == 0 {
                i = i + 1
                continue
            }
            sum = sum + i
            i = i + 1
        }
        return sum
    }
}
`
	_, code, err := run(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if code != 25 {
		t.Errorf("want exit code 25 (sum of odd integers 1..9), got %d", code)
	}
}

// =============================================================================
// Scenario 6: circular @import
// =============================================================================

func TestScenario_CircularImport(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "A.obq")
	bPath := filepath.Join(dir, "B.obq")

	if err := os.WriteFile(aPath, []byte("@import B\n"), 0o644); err != nil {
		t.Fatalf("write A.obq: %s", err)
	}
	if err := os.WriteFile(bPath, []byte("@import A\n"), 0o644); err != nil {
		t.Fatalf("write B.obq: %s", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %s", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %s", err)
	}
	defer os.Chdir(wd)

	src := "@import A\nObject Main { method main(): Int { return 0 } }\n"
	_, _, execErr := run(t, src, nil)
	if execErr == nil {
		t.Fatal("expected a circular-import error, got none")
	}
	want := "Circular @import detected: A -> B -> A"
	if !strings.Contains(execErr.Error(), want) {
		t.Errorf("error %q does not contain %q", execErr.Error(), want)
	}
}

// =============================================================================
// Program output and argv plumbing
// =============================================================================

func TestExecute_PrintAndProgramArgs(t *testing.T) {
	src := `
import system.os

Object Main {
    method main(args: List<Text>): Int {
        println("args: " + args.size().toString())
        return 0
    }
}
`
	out, code, err := run(t, src, []string{"one", "two"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if code != 0 {
		t.Errorf("want exit code 0, got %d", code)
	}
	if !strings.Contains(out, "args: 2") {
		t.Errorf("output %q does not contain expected arg count", out)
	}
}

func TestExecute_NoMainIsNotAnError(t *testing.T) {
	src := `Object Helper { method ping(): Int { return 1 } }`
	_, code, err := run(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if code != 0 {
		t.Errorf("want exit code 0 when no Main.main exists, got %d", code)
	}
}
