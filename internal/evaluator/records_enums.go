package evaluator

import (
	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/object"
	"github.com/o2l-lang/o2l/internal/runtime"
)

func (ev *Evaluator) evalRecordDeclaration(n *ast.RecordDeclaration, env *runtime.Environment) (Outcome, error) {
	fields := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		fields[i] = f.Name
	}
	ev.Records[n.Name] = &object.RecordType{Name: n.Name, Fields: fields}
	return normal(&object.Bool{V: true}), nil
}

// evalRecordInstantiation builds a Record value from `Type{field: value, ...}`,
// requiring every declared field to be supplied exactly once (spec §3.1:
// records are fixed-shape, no partial construction).
func (ev *Evaluator) evalRecordInstantiation(n *ast.RecordInstantiation, env *runtime.Environment) (Outcome, error) {
	rt, ok := ev.Records[n.Type]
	if !ok {
		return Outcome{}, ev.refErr(n, "undefined Record type '%s'", n.Type)
	}
	values := make(map[string]object.Value, len(n.Fields))
	for _, fi := range n.Fields {
		out, err := ev.Eval(fi.Value, env)
		if err != nil || isUnwind(out) {
			return out, err
		}
		values[fi.Name] = out.Value
	}
	for _, f := range rt.Fields {
		if _, ok := values[f]; !ok {
			return Outcome{}, ev.evalErr(n, "Record %s missing field '%s'", n.Type, f)
		}
	}
	return normal(&object.Record{Type: rt, Values: values}), nil
}

// evalEnumDeclaration registers an EnumType; members already carry their
// final (possibly explicit, possibly auto-incremented) values from the
// parser, so no further numbering happens here.
func (ev *Evaluator) evalEnumDeclaration(n *ast.EnumDeclaration, env *runtime.Environment) (Outcome, error) {
	members := make(map[string]int32, len(n.Members))
	order := make([]string, len(n.Members))
	for i, m := range n.Members {
		members[m.Name] = m.Value
		order[i] = m.Name
	}
	ev.Enums[n.Name] = &object.EnumType{Name: n.Name, Members: members, Order: order}
	return normal(&object.Bool{V: true}), nil
}
