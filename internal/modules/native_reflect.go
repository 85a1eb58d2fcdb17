package modules

import (
	"github.com/o2l-lang/o2l/internal/object"
)

// newReflectModule exposes instanceId(Object) -> Text, a read-only handle
// to an ObjectInstance's uuid.UUID identity (spec §C: "give user code a
// stable handle without exposing pointer identity").
func newReflectModule() *object.ObjectInstance {
	inst := object.NewObjectInstance("system.reflect")
	inst.AddMethod(&object.Method{
		Name: "instanceId", Visibility: object.External,
		Fn: func(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
			if len(args) != 1 {
				return nil, errf("instanceId expects 1 argument, got %d", len(args))
			}
			obj, ok := args[0].(*object.Object)
			if !ok {
				return nil, errf("instanceId expects an Object argument, got %s", args[0].Kind())
			}
			return &object.Text{V: obj.Instance.ID().String()}, nil
		},
	})
	return inst
}
