package evaluator

import (
	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/object"
	"github.com/o2l-lang/o2l/internal/runtime"
)

// evalImport resolves an import/@import through the configured
// ModuleResolver and binds the result into env, either under the
// trailing path segment's name or, for a wildcard import, under every
// exported name (spec §4.4, §4.3.5).
func (ev *Evaluator) evalImport(n *ast.Import, env *runtime.Environment) (Outcome, error) {
	if ev.Modules == nil {
		return Outcome{}, ev.evalErr(n, "no module resolver configured, cannot import %v", n.Path)
	}
	exports, err := ev.Modules.ResolveImport(ev, ev.File, n.Path, n.IsUser, n.All)
	if err != nil {
		return Outcome{}, err
	}

	if n.All {
		for name, v := range exports {
			if declErr := env.Declare(name, v, true); declErr != nil {
				return Outcome{}, ev.evalErr(n, "%s", declErr.Error())
			}
		}
		return normal(&object.Bool{V: true}), nil
	}

	name := n.Alias
	if name == "" {
		name = n.Path[len(n.Path)-1]
	}
	v, ok := exports[n.Path[len(n.Path)-1]]
	if !ok {
		return Outcome{}, ev.refErr(n, "module %v exports nothing named '%s'", n.Path, n.Path[len(n.Path)-1])
	}
	if declErr := env.Declare(name, v, true); declErr != nil {
		return Outcome{}, ev.evalErr(n, "%s", declErr.Error())
	}
	return normal(&object.Bool{V: true}), nil
}
