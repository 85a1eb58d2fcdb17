package modules

import (
	"context"
	"encoding/json"

	"github.com/jhump/protoreflect/dynamic"
	"github.com/jhump/protoreflect/dynamic/grpcdynamic"
	"github.com/jhump/protoreflect/grpcreflect"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	reflectpb "google.golang.org/grpc/reflection/grpc_reflection_v1alpha"

	"github.com/o2l-lang/o2l/internal/object"
)

// newGRPCModule is the analogue of the teacher's builtins_grpc.go: dial a
// server's reflection service and invoke a method by its fully-qualified
// name ("package.Service/Method") with a JSON-shaped Map argument,
// returning the response as a Map. Demonstrates the native-module
// materialization contract (§4.4) against a real transport stack.
func newGRPCModule() *object.ObjectInstance {
	inst := object.NewObjectInstance("net.grpc")
	inst.AddMethod(&object.Method{
		Name: "call", Visibility: object.External,
		Fn: grpcCall,
	})
	return inst
}

func grpcCall(receiver *object.ObjectInstance, args []object.Value) (object.Value, error) {
	if len(args) != 3 {
		return nil, errf("call expects (address Text, method Text, request Map), got %d args", len(args))
	}
	addr, ok := args[0].(*object.Text)
	if !ok {
		return nil, errf("call: address must be Text")
	}
	method, ok := args[1].(*object.Text)
	if !ok {
		return nil, errf("call: method must be Text")
	}
	reqMap, ok := args[2].(*object.Map)
	if !ok {
		return nil, errf("call: request must be Map")
	}

	conn, err := grpc.NewClient(addr.V, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, errf("grpc dial %s: %s", addr.V, err.Error())
	}
	defer conn.Close()

	ctx := context.Background()
	refClient := grpcreflect.NewClientV1Alpha(ctx, reflectpb.NewServerReflectionClient(conn))
	defer refClient.Reset()

	svcName, methName := splitMethodSpec(method.V)
	svcDesc, err := refClient.ResolveService(svcName)
	if err != nil {
		return nil, errf("resolve service %s: %s", svcName, err.Error())
	}
	methDesc := svcDesc.FindMethodByName(methName)
	if methDesc == nil {
		return nil, errf("service %s has no method %s", svcName, methName)
	}

	reqJSON, err := json.Marshal(valueToGo(reqMap))
	if err != nil {
		return nil, errf("marshal request: %s", err.Error())
	}
	reqMsg := dynamic.NewMessage(methDesc.GetInputType())
	if err := reqMsg.UnmarshalJSON(reqJSON); err != nil {
		return nil, errf("unmarshal request into %s: %s", methDesc.GetInputType().GetFullyQualifiedName(), err.Error())
	}

	stub := grpcdynamic.NewStub(conn)
	resp, err := stub.InvokeRpc(ctx, methDesc, reqMsg)
	if err != nil {
		return nil, errf("invoke %s: %s", method.V, err.Error())
	}
	respMsg, ok := resp.(*dynamic.Message)
	if !ok {
		return nil, errf("unexpected response type from %s", method.V)
	}
	respJSON, err := respMsg.MarshalJSON()
	if err != nil {
		return nil, errf("marshal response: %s", err.Error())
	}
	var raw interface{}
	if err := json.Unmarshal(respJSON, &raw); err != nil {
		return nil, errf("unmarshal response: %s", err.Error())
	}
	return goToValue(raw), nil
}

func splitMethodSpec(spec string) (service, method string) {
	for i := len(spec) - 1; i >= 0; i-- {
		if spec[i] == '/' {
			return spec[:i], spec[i+1:]
		}
	}
	return spec, ""
}
