package evaluator

import (
	"strings"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/object"
	"github.com/o2l-lang/o2l/internal/runtime"
)

func (ev *Evaluator) evalVariableDeclaration(n *ast.VariableDeclaration, env *runtime.Environment) (Outcome, error) {
	v, err := ev.evalDeclInit(n, n.DeclaredType, n.Initializer, env)
	if err != nil {
		return Outcome{}, err
	}
	if declErr := env.Declare(n.Name, v, false); declErr != nil {
		return Outcome{}, ev.evalErr(n, "%s", declErr.Error())
	}
	return normal(v), nil
}

func (ev *Evaluator) evalConstDeclaration(n *ast.ConstDeclaration, env *runtime.Environment) (Outcome, error) {
	v, err := ev.evalDeclInit(n, n.DeclaredType, n.Initializer, env)
	if err != nil {
		return Outcome{}, err
	}
	if declErr := env.Declare(n.Name, v, true); declErr != nil {
		return Outcome{}, ev.evalErr(n, "%s", declErr.Error())
	}
	return normal(v), nil
}

// evalDeclInit evaluates a declaration's initializer (or produces a
// zero value for a type-only declaration) and checks it against the
// declared type per spec §4.3.4: numeric widening is allowed, narrowing
// is not, and collection element tags must match exactly at construction.
func (ev *Evaluator) evalDeclInit(n ast.Node, declaredType string, init ast.Expression, env *runtime.Environment) (object.Value, error) {
	if init == nil {
		return zeroValueFor(declaredType), nil
	}
	out, err := ev.Eval(init, env)
	if err != nil {
		return nil, err
	}
	if isUnwind(out) {
		return nil, ev.evalErr(n, "control-flow value used where a value was expected")
	}
	if declaredType == "" {
		return out.Value, nil
	}
	widened, ok := assignTo(declaredType, out.Value)
	if !ok {
		return nil, ev.typeErr(n, "cannot assign %s to declared type %s", out.Value.Kind(), declaredType)
	}
	return widened, nil
}

func zeroValueFor(declaredType string) object.Value {
	switch declaredType {
	case "Long":
		return &object.Long{}
	case "Float":
		return &object.Float{}
	case "Double":
		return &object.Double{}
	case "Bool":
		return &object.Bool{}
	case "Char":
		return &object.Char{}
	case "Text":
		return &object.Text{}
	default:
		return &object.Int{}
	}
}

var numericRankByName = map[string]int{"Int": 0, "Long": 1, "Float": 2, "Double": 3}

// assignTo widens v to fit declaredType when declaredType names a wider
// numeric kind than v already has; returns false for any narrowing or
// kind mismatch outside the numeric lattice.
func assignTo(declaredType string, v object.Value) (object.Value, bool) {
	base := declaredType
	if i := strings.IndexByte(base, '<'); i >= 0 {
		base = base[:i]
	}
	wantRank, wantsNumeric := numericRankByName[base]
	if wantsNumeric {
		haveRank, haveNumeric := numericRankByName[string(v.Kind())]
		if !haveNumeric || haveRank > wantRank {
			return nil, false
		}
		return widenNumeric(v, base), true
	}
	switch base {
	case "Bool":
		_, ok := v.(*object.Bool)
		return v, ok
	case "Char":
		_, ok := v.(*object.Char)
		return v, ok
	case "Text":
		_, ok := v.(*object.Text)
		return v, ok
	default:
		// Object/List/Map/Set/Record/Enum/Result/Error/user type names:
		// accepted as-is; deep structural checks happen at the call site
		// that actually uses the value (member access, method dispatch).
		return v, true
	}
}

func widenNumeric(v object.Value, toBase string) object.Value {
	switch toBase {
	case "Int":
		return v
	case "Long":
		return &object.Long{V: toInt64(v)}
	case "Float":
		return &object.Float{V: toFloat32(v)}
	case "Double":
		return &object.Double{V: toFloat64(v)}
	default:
		return v
	}
}

func (ev *Evaluator) evalVariableAssignment(n *ast.VariableAssignment, env *runtime.Environment) (Outcome, error) {
	out, err := ev.Eval(n.Value, env)
	if err != nil || isUnwind(out) {
		return out, err
	}
	if assignErr := env.Assign(n.Name, out.Value); assignErr != nil {
		return Outcome{}, ev.evalErr(n, "%s", capitalizeAssignErr(assignErr.Error()))
	}
	return normal(out.Value), nil
}

// capitalizeAssignErr surfaces runtime.Environment's lowercase Go error
// text as the exact message spec §8.2 scenario 2 checks for ("Cannot
// reassign constant variable 'x'").
func capitalizeAssignErr(msg string) string {
	if len(msg) == 0 {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// evalPropertyDeclarationAsStatement runs when a PropertyDeclaration
// reaches generic statement evaluation outside an object body (the parser
// produces one when `property` starts a statement inside a block); it
// binds the name as a constant in the current scope. Object-body
// properties are evaluated by evalNew via ClassDef.Properties instead.
func (ev *Evaluator) evalPropertyDeclarationAsStatement(n *ast.PropertyDeclaration, env *runtime.Environment) (Outcome, error) {
	v, err := ev.evalDeclInit(n, n.DeclaredType, n.Initializer, env)
	if err != nil {
		return Outcome{}, err
	}
	if declErr := env.Declare(n.Name, v, true); declErr != nil {
		return Outcome{}, ev.evalErr(n, "%s", declErr.Error())
	}
	return normal(v), nil
}

func (ev *Evaluator) evalPropertyAssignment(n *ast.PropertyAssignment, env *runtime.Environment) (Outcome, error) {
	to, err := ev.Eval(n.Target, env)
	if err != nil || isUnwind(to) {
		return to, err
	}
	obj, ok := to.Value.(*object.Object)
	if !ok {
		return Outcome{}, ev.typeErr(n, "cannot set property %q on non-Object value %s", n.Name, to.Value.Kind())
	}
	vo, err := ev.Eval(n.Value, env)
	if err != nil || isUnwind(vo) {
		return vo, err
	}
	if obj.Instance.HasProperty(n.Name) {
		return Outcome{}, ev.evalErr(n, "cannot reassign property '%s': properties are set once", n.Name)
	}
	obj.Instance.SetProperty(n.Name, vo.Value)
	return normal(vo.Value), nil
}
