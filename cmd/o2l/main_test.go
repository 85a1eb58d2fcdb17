package main

import (
	"os"
	"path/filepath"
	"testing"
)

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

func TestParseSourceSucceeds(t *testing.T) {
	prog, err := parseSource(`Object Main { method main(): Int { return 0 } }`, "<test>")
	if err != nil {
		t.Fatalf("parseSource: %s", err)
	}
	if len(prog.Declarations) != 1 {
		t.Fatalf("Declarations = %d, want 1", len(prog.Declarations))
	}
}

func TestParseSourceSyntaxError(t *testing.T) {
	if _, err := parseSource(`Object Main { method main() { return`, "<test>"); err == nil {
		t.Fatal("expected a syntax error for an unterminated block")
	}
}

func TestResolveEntrypointReadsManifest(t *testing.T) {
	dir := withTempWorkdir(t)
	manifest := "entrypoint = \"main.obq\"\n"
	if err := os.WriteFile(filepath.Join(dir, "o2l.toml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}
	entry, err := resolveEntrypoint(".")
	if err != nil {
		t.Fatalf("resolveEntrypoint: %s", err)
	}
	want := filepath.Join(".", "main.obq")
	if entry != want {
		t.Errorf("entry = %q, want %q", entry, want)
	}
}

func TestResolveEntrypointSkipsCommentsAndBlankLines(t *testing.T) {
	dir := withTempWorkdir(t)
	manifest := "# a comment\n\n  entrypoint   =   \"app.obq\"  \n"
	if err := os.WriteFile(filepath.Join(dir, "o2l.toml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}
	entry, err := resolveEntrypoint(".")
	if err != nil {
		t.Fatalf("resolveEntrypoint: %s", err)
	}
	if entry != filepath.Join(".", "app.obq") {
		t.Errorf("entry = %q, want %q", entry, filepath.Join(".", "app.obq"))
	}
}

func TestResolveEntrypointMissingManifest(t *testing.T) {
	withTempWorkdir(t)
	if _, err := resolveEntrypoint("."); err == nil {
		t.Fatal("expected an error when o2l.toml is absent")
	}
}

func TestResolveEntrypointMissingKey(t *testing.T) {
	dir := withTempWorkdir(t)
	if err := os.WriteFile(filepath.Join(dir, "o2l.toml"), []byte("name = \"demo\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}
	if _, err := resolveEntrypoint("."); err == nil {
		t.Fatal("expected an error when o2l.toml has no entrypoint key")
	}
}

func TestRunRunExecutesExplicitFile(t *testing.T) {
	dir := withTempWorkdir(t)
	src := `Object Main { method main(): Int { return 3 } }`
	path := filepath.Join(dir, "app.obq")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}
	if code := runRun([]string{"app.obq"}); code != 3 {
		t.Errorf("runRun = %d, want 3", code)
	}
}

func TestRunRunMissingFileReturnsNonZero(t *testing.T) {
	withTempWorkdir(t)
	if code := runRun([]string{"does-not-exist.obq"}); code != 1 {
		t.Errorf("runRun(missing file) = %d, want 1", code)
	}
}

func TestRunRunFallsBackToManifestEntrypoint(t *testing.T) {
	dir := withTempWorkdir(t)
	src := `Object Main { method main(): Int { return 9 } }`
	if err := os.WriteFile(filepath.Join(dir, "app.obq"), []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile app.obq: %s", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "o2l.toml"), []byte("entrypoint = \"app.obq\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile o2l.toml: %s", err)
	}
	if code := runRun(nil); code != 9 {
		t.Errorf("runRun(nil) = %d, want 9", code)
	}
}

func TestRunParseValidFileReturnsZero(t *testing.T) {
	dir := withTempWorkdir(t)
	src := `Object Main { method main(): Int { return 0 } }`
	path := filepath.Join(dir, "app.obq")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}
	if code := runParse([]string{"app.obq"}); code != 0 {
		t.Errorf("runParse = %d, want 0", code)
	}
}

func TestRunParseNoPathGiven(t *testing.T) {
	if code := runParse(nil); code != 1 {
		t.Errorf("runParse(nil) = %d, want 1", code)
	}
}
