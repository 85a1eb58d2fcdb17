// Command o2l is the language's CLI: run a program, parse-check a file,
// or drop into a line-by-line REPL. Argument parsing is hand-rolled over
// os.Args, matching the teacher's own cmd/funxy/main.go rather than
// reaching for a flag framework.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/config"
	"github.com/o2l-lang/o2l/internal/evaluator"
	"github.com/o2l-lang/o2l/internal/interp"
	"github.com/o2l-lang/o2l/internal/lexer"
	"github.com/o2l-lang/o2l/internal/modules"
	"github.com/o2l-lang/o2l/internal/object"
	"github.com/o2l-lang/o2l/internal/parser"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "-help", "--help", "help":
		printUsage()
	case "-version", "--version", "version":
		fmt.Println("o2l", config.Version)
	case "repl":
		runRepl()
	case "parse":
		os.Exit(runParse(os.Args[2:]))
	case "run":
		os.Exit(runRun(os.Args[2:]))
	default:
		// Bare `o2l file.obq [args...]` is shorthand for `o2l run ...`.
		os.Exit(runRun(os.Args[1:]))
	}
}

func printUsage() {
	fmt.Println(`o2l - a tree-walking interpreter

Usage:
  o2l run [file.obq] [--debug] [program-args...]
  o2l parse <file.obq> [--json-output]
  o2l repl
  o2l --help | --version

If file.obq is omitted, run resolves the entrypoint from o2l.toml's
"entrypoint" key in the current directory.`)
}

// runRun implements `o2l run` (and the bare-file shorthand): resolve the
// entrypoint, lex+parse+evaluate it, then invoke Main.main if present.
func runRun(args []string) int {
	debug := false
	var rest []string
	for _, a := range args {
		if a == "-debug" || a == "--debug" {
			debug = true
			continue
		}
		rest = append(rest, a)
	}

	var path string
	var programArgs []string
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		path = rest[0]
		programArgs = rest[1:]
	} else {
		entry, err := resolveEntrypoint(".")
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}
		path = entry
		programArgs = rest
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %s\n", path, err.Error())
		return 1
	}

	prog, err := parseSource(string(src), path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	in := interp.New(path)
	in.Debug = debug
	code, err := in.Execute(prog, programArgs)
	if err != nil {
		return 1
	}
	return code
}

// runParse implements `o2l parse`: lex and parse only, report syntax
// errors. --json-output is accepted but not honored (§E: AST JSON
// serialization is explicitly out of scope) — it prints a plain-text
// summary plus a notice instead of erroring.
func runParse(args []string) int {
	jsonRequested := false
	var path string
	for _, a := range args {
		if a == "--json-output" {
			jsonRequested = true
			continue
		}
		if path == "" {
			path = a
		}
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: o2l parse <file.obq> [--json-output]")
		return 1
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %s\n", path, err.Error())
		return 1
	}
	prog, err := parseSource(string(src), path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	fmt.Printf("%s: %d top-level declaration(s)\n", path, len(prog.Declarations))
	for _, d := range prog.Declarations {
		fmt.Printf("  %T\n", d)
	}
	if jsonRequested {
		fmt.Fprintln(os.Stderr, "note: --json-output is not implemented; AST serialization is out of scope")
	}
	return 0
}

// runRepl implements `o2l repl`: one shared global Environment and
// ModuleLoader across every line, colorized via go-isatty when attached
// to a terminal.
func runRepl() {
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	loader := modules.New()
	ev := evaluator.New("<repl>", loader)

	scanner := bufio.NewScanner(os.Stdin)
	prompt := func() {
		if color {
			fmt.Print("\033[36mo2l>\033[0m ")
		} else {
			fmt.Print("o2l> ")
		}
	}

	prompt()
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			prompt()
			continue
		}

		prog, err := parseSource(line, "<repl>")
		if err != nil {
			printReplError(err.Error(), color)
			prompt()
			continue
		}

		var last object.Value
		var evalErr error
		for _, decl := range prog.Declarations {
			out, err := ev.Eval(decl, ev.Global)
			if err != nil {
				evalErr = err
				break
			}
			last = out.Value
		}
		if evalErr != nil {
			printReplError(evalErr.Error(), color)
		} else if last != nil {
			fmt.Println(last.Inspect())
		}
		prompt()
	}
	fmt.Println()
}

func printReplError(msg string, color bool) {
	if color {
		fmt.Fprintf(os.Stderr, "\033[31m%s\033[0m\n", msg)
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

func parseSource(src, file string) (*ast.Program, error) {
	lx := lexer.New(src)
	p := parser.New(lx, file)
	return p.ParseProgram()
}

// resolveEntrypoint reads o2l.toml's "entrypoint" key via the naive
// one-key-per-line scanner the spec pins (§B.3): no TOML library, no
// nesting, just `key = "value"` lines.
func resolveEntrypoint(dir string) (string, error) {
	manifestPath := filepath.Join(dir, config.ManifestFile)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return "", fmt.Errorf("no file argument given and %s not found: %w", config.ManifestFile, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		if key != config.ManifestEntrypointKey {
			continue
		}
		val := strings.TrimSpace(parts[1])
		val = strings.Trim(val, `"`)
		return filepath.Join(dir, val), nil
	}
	return "", fmt.Errorf("%s has no %q key", config.ManifestFile, config.ManifestEntrypointKey)
}
