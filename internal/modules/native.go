package modules

import (
	"fmt"

	"github.com/o2l-lang/o2l/internal/object"
)

func errf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// nativeModules maps a dotted library-import spec to a factory building a
// fresh ObjectInstance of intrinsics (spec §4.4 "Native-module
// materialization"). Grounded on the teacher's GetVirtualPackage/
// CreateVirtualModule factory-registry pattern, generalized from a
// type-system package registry to a runtime-value one since this
// evaluator has no separate static type checker.
var nativeModules = map[string]func() *object.ObjectInstance{
	"system.os":     newSystemOSModule,
	"data.yaml":     newYAMLModule,
	"testing":       newTestingModule,
	"system.reflect": newReflectModule,
	"net.grpc":      newGRPCModule,
}

// programArgs is set by interp.Interpreter.Execute (via SetProgramArgs)
// before the program's declarations run, exposed to user code via
// system.os.args (spec §4.5: "argv[0] is the source file path").
var programArgs []object.Value

func SetProgramArgs(args []string) {
	programArgs = make([]object.Value, len(args))
	for i, a := range args {
		programArgs[i] = &object.Text{V: a}
	}
}

func newSystemOSModule() *object.ObjectInstance {
	inst := object.NewObjectInstance("system.os")
	inst.SetProperty("args", &object.List{ElemKind: object.KText, Items: programArgs})
	return inst
}
