package modules

import (
	"gopkg.in/yaml.v3"

	"github.com/o2l-lang/o2l/internal/object"
)

// newYAMLModule is the direct analogue of the teacher's builtins_yaml.go:
// parse(Text) -> Map, dump(Map) -> Text, built on the same yaml.v3 library.
func newYAMLModule() *object.ObjectInstance {
	inst := object.NewObjectInstance("data.yaml")
	inst.AddMethod(&object.Method{
		Name: "parse", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			if len(args) != 1 {
				return nil, errf("parse expects 1 argument, got %d", len(args))
			}
			text, ok := args[0].(*object.Text)
			if !ok {
				return nil, errf("parse expects a Text argument")
			}
			var raw interface{}
			if err := yaml.Unmarshal([]byte(text.V), &raw); err != nil {
				return nil, errf("yaml parse error: %s", err.Error())
			}
			return goToValue(raw), nil
		},
	})
	inst.AddMethod(&object.Method{
		Name: "dump", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			if len(args) != 1 {
				return nil, errf("dump expects 1 argument, got %d", len(args))
			}
			out, err := yaml.Marshal(valueToGo(args[0]))
			if err != nil {
				return nil, errf("yaml dump error: %s", err.Error())
			}
			return &object.Text{V: string(out)}, nil
		},
	})
	return inst
}

// goToValue converts a yaml.Unmarshal result tree into O2L Values: maps
// become Map(Text, Value) (yaml.v3 decodes mapping keys as strings by
// default), sequences become List, scalars become the nearest tag.
func goToValue(v interface{}) object.Value {
	switch x := v.(type) {
	case nil:
		return &object.Bool{V: false}
	case string:
		return &object.Text{V: x}
	case bool:
		return &object.Bool{V: x}
	case int:
		return &object.Int{V: int32(x)}
	case float64:
		return &object.Double{V: x}
	case []interface{}:
		items := make([]object.Value, len(x))
		for i, it := range x {
			items[i] = goToValue(it)
		}
		return &object.List{Items: items}
	case map[string]interface{}:
		m := &object.Map{KeyKind: object.KText, ValueKind: object.KObject}
		for k, val := range x {
			m.Set(&object.Text{V: k}, goToValue(val))
		}
		return m
	default:
		return &object.Text{V: ""}
	}
}

// valueToGo is goToValue's inverse, used by dump().
func valueToGo(v object.Value) interface{} {
	switch x := v.(type) {
	case *object.Text:
		return x.V
	case *object.Bool:
		return x.V
	case *object.Int:
		return x.V
	case *object.Long:
		return x.V
	case *object.Float:
		return x.V
	case *object.Double:
		return x.V
	case *object.List:
		out := make([]interface{}, len(x.Items))
		for i, it := range x.Items {
			out[i] = valueToGo(it)
		}
		return out
	case *object.Map:
		out := make(map[string]interface{}, len(x.Pairs))
		for _, p := range x.Pairs {
			if k, ok := p.Key.(*object.Text); ok {
				out[k.V] = valueToGo(p.Value)
			}
		}
		return out
	default:
		return nil
	}
}
