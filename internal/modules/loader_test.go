package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/o2l-lang/o2l/internal/evaluator"
	"github.com/o2l-lang/o2l/internal/object"
)

func TestResolveImportNativeModule(t *testing.T) {
	l := New()
	ev := evaluator.New("<test>", l)
	exports, err := l.ResolveImport(ev, "<test>", []string{"system", "os"}, false, false)
	if err != nil {
		t.Fatalf("ResolveImport(system.os): %s", err)
	}
	v, ok := exports["os"]
	if !ok {
		t.Fatalf("exports = %v, want an 'os' binding", exports)
	}
	obj, ok := v.(*object.Object)
	if !ok {
		t.Fatalf("exports[os] = %T, want *object.Object", v)
	}
	if _, ok := obj.Instance.Properties["args"]; !ok {
		t.Error("system.os instance is missing its 'args' property")
	}
}

func TestResolveImportUnknownLibraryModule(t *testing.T) {
	l := New()
	ev := evaluator.New("<test>", l)
	if _, err := l.ResolveImport(ev, "<test>", []string{"no", "such", "module"}, false, false); err == nil {
		t.Fatal("expected an error resolving an unregistered library module")
	}
}

func TestResolveImportNativeModuleWithMethods(t *testing.T) {
	l := New()
	ev := evaluator.New("<test>", l)
	exports, err := l.ResolveImport(ev, "<test>", []string{"testing"}, false, false)
	if err != nil {
		t.Fatalf("ResolveImport(testing): %s", err)
	}
	obj := exports["testing"].(*object.Object)
	if _, ok := obj.Instance.Methods["assertEqual"]; !ok {
		t.Error("testing module instance is missing 'assertEqual'")
	}
}

// withTempWorkdir chdirs into a fresh temp directory for the duration of
// the test, restoring the original working directory on cleanup.
func withTempWorkdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %s", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %s", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return dir
}

func TestResolveUserImportReadsFromSearchPath(t *testing.T) {
	dir := withTempWorkdir(t)
	src := `Object Util { method id(): Int { return 7 } }`
	if err := os.WriteFile(filepath.Join(dir, "util.obq"), []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}

	l := New()
	ev := evaluator.New("<test>", l)
	exports, err := l.ResolveImport(ev, "<test>", []string{"util"}, true, false)
	if err != nil {
		t.Fatalf("ResolveImport(@import util): %s", err)
	}
	if _, ok := exports["Util"]; !ok {
		t.Fatalf("exports = %v, want a 'Util' binding", exports)
	}
}

func TestResolveUserImportMissingFile(t *testing.T) {
	withTempWorkdir(t)
	l := New()
	ev := evaluator.New("<test>", l)
	if _, err := l.ResolveImport(ev, "<test>", []string{"missing"}, true, false); err == nil {
		t.Fatal("expected an error for a user module that does not exist on any search path")
	}
}

func TestResolveUserImportCachesByAbsolutePath(t *testing.T) {
	dir := withTempWorkdir(t)
	src := `Object Util { method id(): Int { return 7 } }`
	if err := os.WriteFile(filepath.Join(dir, "util.obq"), []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}

	l := New()
	ev := evaluator.New("<test>", l)
	first, err := l.ResolveImport(ev, "<test>", []string{"util"}, true, false)
	if err != nil {
		t.Fatalf("first ResolveImport: %s", err)
	}
	second, err := l.ResolveImport(ev, "<test>", []string{"util"}, true, false)
	if err != nil {
		t.Fatalf("second ResolveImport: %s", err)
	}
	if first["Util"] != second["Util"] {
		t.Error("a repeated @import of the same module should return the cached export map, not re-evaluate")
	}
}

func TestCircularUserImportDetected(t *testing.T) {
	dir := withTempWorkdir(t)
	a := `@import B
Object A { method id(): Int { return 1 } }`
	b := `@import A
Object B { method id(): Int { return 2 } }`
	if err := os.WriteFile(filepath.Join(dir, "A.obq"), []byte(a), 0o644); err != nil {
		t.Fatalf("WriteFile A: %s", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "B.obq"), []byte(b), 0o644); err != nil {
		t.Fatalf("WriteFile B: %s", err)
	}

	l := New()
	ev := evaluator.New("<test>", l)
	_, err := l.ResolveImport(ev, "<test>", []string{"A"}, true, false)
	if err == nil {
		t.Fatal("expected a circular @import error")
	}
	want := "Circular @import detected: A -> B -> A"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
