package evaluator

import (
	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/object"
	"github.com/o2l-lang/o2l/internal/runtime"
)

// evalBlock evaluates statements in order, yielding the value of the last
// one (spec §3.5 Block: "Ordered list of statements; yields the last
// value"); any non-Normal outcome from a statement short-circuits the rest
// of the block and propagates immediately.
func (ev *Evaluator) evalBlock(n *ast.Block, env *runtime.Environment) (Outcome, error) {
	var last Outcome = normal(&object.Bool{V: false})
	for _, stmt := range n.Statements {
		out, err := ev.Eval(stmt, env)
		if err != nil {
			return Outcome{}, err
		}
		if isUnwind(out) {
			return out, nil
		}
		last = out
	}
	return last, nil
}

func (ev *Evaluator) evalIf(n *ast.If, env *runtime.Environment) (Outcome, error) {
	co, err := ev.Eval(n.Cond, env)
	if err != nil || isUnwind(co) {
		return co, err
	}
	cb, ok := co.Value.(*object.Bool)
	if !ok {
		return Outcome{}, ev.typeErr(n, "if condition must be Bool, got %s", co.Value.Kind())
	}
	if cb.V {
		return ev.evalBlock(n.Then, runtime.NewEnclosed(env))
	}
	for i, elifCond := range n.ElifConds {
		eo, err := ev.Eval(elifCond, env)
		if err != nil || isUnwind(eo) {
			return eo, err
		}
		eb, ok := eo.Value.(*object.Bool)
		if !ok {
			return Outcome{}, ev.typeErr(n, "else-if condition must be Bool, got %s", eo.Value.Kind())
		}
		if eb.V {
			return ev.evalBlock(n.ElifThen[i], runtime.NewEnclosed(env))
		}
	}
	if n.Else != nil {
		return ev.evalBlock(n.Else, runtime.NewEnclosed(env))
	}
	return normal(&object.Bool{V: false}), nil
}

func (ev *Evaluator) evalWhile(n *ast.While, env *runtime.Environment) (Outcome, error) {
	for {
		co, err := ev.Eval(n.Cond, env)
		if err != nil || isUnwind(co) {
			return co, err
		}
		cb, ok := co.Value.(*object.Bool)
		if !ok {
			return Outcome{}, ev.typeErr(n, "while condition must be Bool, got %s", co.Value.Kind())
		}
		if !cb.V {
			return normal(&object.Bool{V: false}), nil
		}
		out, err := ev.evalBlock(n.Body, runtime.NewEnclosed(env))
		if err != nil {
			return Outcome{}, err
		}
		switch out.Kind {
		case BreakOutcome:
			return normal(&object.Bool{V: false}), nil
		case ContinueOutcome, Normal:
			continue
		default: // Return, Throw
			return out, nil
		}
	}
}

// evalTryCatchFinally implements spec §4.3.7: run try, route a user throw
// to catch, run finally unconditionally on every exit path, and let a
// finally-raised outcome supersede whatever was in flight.
func (ev *Evaluator) evalTryCatchFinally(n *ast.TryCatchFinally, env *runtime.Environment) (Outcome, error) {
	out, err := ev.evalBlock(n.Try, runtime.NewEnclosed(env))

	if err == nil && out.Kind == ThrowOutcome && n.Catch != nil {
		catchEnv := runtime.NewEnclosed(env)
		if n.CatchName != "" {
			if declErr := catchEnv.Declare(n.CatchName, out.Value, false); declErr != nil {
				return Outcome{}, ev.evalErr(n, "%s", declErr.Error())
			}
		}
		out, err = ev.evalBlock(n.Catch, catchEnv)
	}

	if n.Finally != nil {
		finOut, finErr := ev.evalBlock(n.Finally, runtime.NewEnclosed(env))
		if finErr != nil {
			return Outcome{}, finErr
		}
		if isUnwind(finOut) {
			return finOut, nil
		}
	}

	return out, err
}
