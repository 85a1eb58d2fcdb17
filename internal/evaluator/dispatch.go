package evaluator

import (
	"fmt"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/errs"
	"github.com/o2l-lang/o2l/internal/object"
	"github.com/o2l-lang/o2l/internal/runtime"
)

// Eval is the single dispatch point from AST node to Outcome (spec §4.3:
// "a single dispatch function from AST node to Value"). It is a plain Go
// type switch rather than a Visitor double-dispatch — see DESIGN.md.
func (ev *Evaluator) Eval(node ast.Node, env *runtime.Environment) (Outcome, error) {
	switch n := node.(type) {

	// ---- Literals ----
	case *ast.IntLiteral:
		return normal(&object.Int{V: n.Value}), nil
	case *ast.LongLiteral:
		return normal(&object.Long{V: n.Value}), nil
	case *ast.FloatLiteral:
		return normal(&object.Float{V: n.Value}), nil
	case *ast.DoubleLiteral:
		return normal(&object.Double{V: n.Value}), nil
	case *ast.BoolLiteral:
		return normal(&object.Bool{V: n.Value}), nil
	case *ast.CharLiteral:
		return normal(&object.Char{V: n.Value}), nil
	case *ast.TextLiteral:
		return normal(&object.Text{V: n.Value}), nil

	// ---- Names ----
	case *ast.Identifier:
		return ev.evalIdentifier(n, env)
	case *ast.This:
		recv := ev.This.Top()
		if recv == nil {
			return Outcome{}, ev.evalErr(n, "'this' referenced outside any method")
		}
		return normal(&object.Object{Instance: recv}), nil

	// ---- Operators ----
	case *ast.BinaryOp:
		return ev.evalBinaryOp(n, env)
	case *ast.Comparison:
		return ev.evalComparison(n, env)
	case *ast.Logical:
		return ev.evalLogical(n, env)
	case *ast.Unary:
		return ev.evalUnary(n, env)

	// ---- Declarations & assignment ----
	case *ast.VariableDeclaration:
		return ev.evalVariableDeclaration(n, env)
	case *ast.ConstDeclaration:
		return ev.evalConstDeclaration(n, env)
	case *ast.VariableAssignment:
		return ev.evalVariableAssignment(n, env)
	case *ast.PropertyDeclaration:
		return ev.evalPropertyDeclarationAsStatement(n, env)
	case *ast.PropertyAssignment:
		return ev.evalPropertyAssignment(n, env)

	// ---- Control flow ----
	case *ast.Block:
		return ev.evalBlock(n, env)
	case *ast.ExpressionStatement:
		return ev.Eval(n.Expr, env)
	case *ast.If:
		return ev.evalIf(n, env)
	case *ast.While:
		return ev.evalWhile(n, env)
	case *ast.Break:
		return Outcome{Kind: BreakOutcome}, nil
	case *ast.Continue:
		return Outcome{Kind: ContinueOutcome}, nil
	case *ast.Return:
		if n.Value == nil {
			// Bare `return`: the language has no null/void value, so a
			// returnless return yields Bool(false) as its nearest analog.
			return Outcome{Kind: ReturnOutcome, Value: &object.Bool{V: false}}, nil
		}
		out, err := ev.Eval(n.Value, env)
		if err != nil || isUnwind(out) {
			return out, err
		}
		return Outcome{Kind: ReturnOutcome, Value: out.Value}, nil
	case *ast.Throw:
		out, err := ev.Eval(n.Value, env)
		if err != nil || isUnwind(out) {
			return out, err
		}
		return Outcome{Kind: ThrowOutcome, Value: out.Value}, nil
	case *ast.TryCatchFinally:
		return ev.evalTryCatchFinally(n, env)

	// ---- Calls & construction ----
	case *ast.MethodCall:
		return ev.evalMethodCall(n, env)
	case *ast.FunctionCall:
		return ev.evalFunctionCall(n, env)
	case *ast.New:
		return ev.evalNew(n, env)
	case *ast.MemberAccess:
		return ev.evalMemberAccess(n, env)

	// ---- Collections ----
	case *ast.ListLiteral:
		return ev.evalListLiteral(n, env)
	case *ast.MapLiteral:
		return ev.evalMapLiteral(n, env)
	case *ast.SetLiteral:
		return ev.evalSetLiteral(n, env)

	// ---- Declarations that install registries, not values ----
	case *ast.ObjectDeclaration:
		return ev.evalObjectDeclaration(n, env)
	case *ast.RecordDeclaration:
		return ev.evalRecordDeclaration(n, env)
	case *ast.RecordInstantiation:
		return ev.evalRecordInstantiation(n, env)
	case *ast.EnumDeclaration:
		return ev.evalEnumDeclaration(n, env)
	case *ast.ProtocolDeclaration:
		return ev.evalProtocolDeclaration(n, env)

	// ---- Modules & namespaces ----
	case *ast.Import:
		return ev.evalImport(n, env)
	case *ast.Namespace:
		return ev.evalNamespace(n, env)

	default:
		return Outcome{}, ev.evalErr(node, "cannot evaluate node of type %T", node)
	}
}

// EvalProgram evaluates every top-level declaration in order, per spec
// §4.5 (the Interpreter then separately looks for Main.main).
func (ev *Evaluator) EvalProgram(prog *ast.Program) error {
	ev.File = prog.File
	for _, decl := range prog.Declarations {
		if _, err := ev.Eval(decl, ev.Global); err != nil {
			return err
		}
	}
	return nil
}

func (ev *Evaluator) evalErr(n ast.Node, format string, args ...interface{}) error {
	line, col := ev.loc(n)
	return errs.NewEvaluationError(ev.CallStack, ev.File, line, col, format, args...)
}

func (ev *Evaluator) typeErr(n ast.Node, format string, args ...interface{}) error {
	line, col := ev.loc(n)
	return errs.NewTypeMismatchError(ev.CallStack, ev.File, line, col, format, args...)
}

func (ev *Evaluator) refErr(n ast.Node, format string, args ...interface{}) error {
	line, col := ev.loc(n)
	return errs.NewUnresolvedReferenceError(ev.CallStack, ev.File, line, col, format, args...)
}

func (ev *Evaluator) evalIdentifier(n *ast.Identifier, env *runtime.Environment) (Outcome, error) {
	if v, ok := env.Get(n.Name); ok {
		return normal(v), nil
	}
	if enumType, ok := ev.Enums[n.Name]; ok {
		// A bare enum type name with no member selected isn't a value;
		// surfaced only so MemberAccess can special-case it.
		return Outcome{}, ev.refErr(n, "%q is an Enum type, not a value (use %s.Member)", n.Name, fmt.Sprint(enumType.Name))
	}
	return Outcome{}, ev.refErr(n, "undefined reference '%s'", n.Name)
}
