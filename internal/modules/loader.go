// Package modules implements the ModuleLoader (spec §4.4): resolution of
// both `import` (library/native) and `@import` (user source) forms, with
// cycle detection over the chain of files/specs currently mid-resolution.
package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/config"
	"github.com/o2l-lang/o2l/internal/evaluator"
	"github.com/o2l-lang/o2l/internal/lexer"
	"github.com/o2l-lang/o2l/internal/object"
	"github.com/o2l-lang/o2l/internal/parser"
	"github.com/o2l-lang/o2l/internal/runtime"
)

// Loader implements evaluator.ModuleResolver. Grounded on the teacher's
// internal/modules/loader.go: a path->loaded-module cache plus a
// currently-loading stack for cycle detection. Cycles are detected on one
// chain only, loadingChain, which holds the resolved paths of the user
// files currently being loaded; there is no separate chain of import specs.
type Loader struct {
	loadedModules map[string]map[string]object.Value
	astStorage    map[string]*ast.Program
	loadingChain  []string
	userSearch    []string
	librarySearch []string
}

// New creates a Loader whose user-import search path is the current
// working directory plus ./src. librarySearch lists ./.o2l/lib, ./modules
// and ./lib, but ResolveImport does not consult it: a library `import`
// resolves only to a module in the native registry (nativeModules), and
// library source files on disk are not searched.
func New() *Loader {
	return &Loader{
		loadedModules: make(map[string]map[string]object.Value),
		astStorage:    make(map[string]*ast.Program),
		userSearch:    []string{".", "./src"},
		librarySearch: []string{"./.o2l/lib", "./modules", "./lib"},
	}
}

// ResolveImport implements evaluator.ModuleResolver.
func (l *Loader) ResolveImport(ev *evaluator.Evaluator, file string, parts []string, isUser, all bool) (map[string]object.Value, error) {
	spec := strings.Join(parts, ".")
	if !isUser {
		if factory, ok := nativeModules[spec]; ok {
			instance := factory()
			return map[string]object.Value{parts[len(parts)-1]: &object.Object{Instance: instance}}, nil
		}
		return nil, fmt.Errorf("unknown library module '%s'", spec)
	}
	return l.resolveUser(ev, parts)
}

func (l *Loader) resolveUser(ev *evaluator.Evaluator, parts []string) (map[string]object.Value, error) {
	path, err := l.findUserFile(parts)
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	if cached, ok := l.loadedModules[absPath]; ok {
		return cached, nil
	}

	for _, p := range l.loadingChain {
		if p == absPath {
			chain := append(append([]string{}, l.loadingChain...), absPath)
			names := make([]string, len(chain))
			for i, c := range chain {
				names[i] = config.TrimSourceExt(filepath.Base(c))
			}
			return nil, fmt.Errorf("Circular @import detected: %s", strings.Join(names, " -> "))
		}
	}

	l.loadingChain = append(l.loadingChain, absPath)
	defer func() { l.loadingChain = l.loadingChain[:len(l.loadingChain)-1] }()

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read module %s: %w", path, err)
	}

	lx := lexer.New(string(src))
	p := parser.New(lx, path)
	prog, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	l.astStorage[absPath] = prog

	moduleEv := ev.WithFile(path)
	moduleEv.Global = runtime.NewEnvironment()
	moduleEv.Modules = l

	for _, decl := range prog.Declarations {
		if imp, ok := decl.(*ast.Import); ok && imp.IsUser {
			if _, err := moduleEv.Eval(imp, moduleEv.Global); err != nil {
				return nil, err
			}
		}
	}

	exports := make(map[string]object.Value)
	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.Import:
			continue
		case *ast.ObjectDeclaration:
			if _, err := moduleEv.Eval(d, moduleEv.Global); err != nil {
				return nil, err
			}
			if v, ok := moduleEv.Global.Get(d.Name); ok {
				exports[d.Name] = v
			}
		default:
			if _, err := moduleEv.Eval(d, moduleEv.Global); err != nil {
				return nil, err
			}
		}
	}

	l.loadedModules[absPath] = exports
	return exports, nil
}

func (l *Loader) findUserFile(parts []string) (string, error) {
	rel := filepath.Join(parts...) + config.SourceFileExt
	for _, dir := range l.userSearch {
		candidate := filepath.Join(dir, rel)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("cannot find user module '%s' in %v", strings.Join(parts, "."), l.userSearch)
}
