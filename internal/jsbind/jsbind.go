// Package jsbind exposes a host session to a goja JavaScript runtime as a
// global "graph" object:
//
//	const a = graph.add("constant");
//	const b = graph.add("add");
//	graph.set(a, "value", 2);
//	graph.connect(a, 0, b, 0);
//	graph.connect(a, 0, b, 1);
//	graph.outputs(b); // [4]
//
// Failed operations throw a JS Error whose code property holds the host
// error code, e.g. "cycle_detected".
package jsbind

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dop251/goja"
	"github.com/vk/nodegrid/internal/ctxlog"
	"github.com/vk/nodegrid/internal/host"
)

// GlobalName is the name of the object Install defines.
const GlobalName = "graph"

type binding struct {
	vm      *goja.Runtime
	session *host.Session
	logger  *slog.Logger
}

// Install defines the graph object on vm. A nil logger discards all records.
func Install(vm *goja.Runtime, s *host.Session, logger *slog.Logger) error {
	if logger == nil {
		logger = ctxlog.Discard()
	}
	b := &binding{vm: vm, session: s, logger: logger}

	obj := vm.NewObject()
	methods := map[string]func(goja.FunctionCall) goja.Value{
		"add":        b.add,
		"connect":    b.connect,
		"disconnect": b.disconnect,
		"invalidate": b.invalidate,
		"outputs":    b.outputs,
		"set":        b.set,
		"nodes":      b.nodes,
		"types":      b.types,
	}
	for name, fn := range methods {
		if err := obj.Set(name, b.guard(name, fn)); err != nil {
			return fmt.Errorf("failed to bind graph.%s: %w", name, err)
		}
	}
	if err := vm.Set(GlobalName, obj); err != nil {
		return fmt.Errorf("failed to install %s object: %w", GlobalName, err)
	}
	logger.Debug("Graph bindings installed.", "methods", len(methods))
	return nil
}

func (b *binding) add(call goja.FunctionCall) goja.Value {
	name := b.stringArg(call, 0, "type")
	id, err := b.session.Add(name)
	b.check(err)
	return b.vm.ToValue(id)
}

func (b *binding) connect(call goja.FunctionCall) goja.Value {
	src := b.idArg(call, 0, "source node")
	srcIndex := b.indexArg(call, 1, "source index")
	dst := b.idArg(call, 2, "target node")
	dstIndex := b.indexArg(call, 3, "target index")
	b.check(b.session.Connect(src, srcIndex, dst, dstIndex))
	return goja.Undefined()
}

func (b *binding) disconnect(call goja.FunctionCall) goja.Value {
	id := b.idArg(call, 0, "node")
	index := b.indexArg(call, 1, "index")
	b.check(b.session.Disconnect(id, index))
	return goja.Undefined()
}

func (b *binding) invalidate(call goja.FunctionCall) goja.Value {
	b.check(b.session.Invalidate(b.idArg(call, 0, "node")))
	return goja.Undefined()
}

func (b *binding) outputs(call goja.FunctionCall) goja.Value {
	values, err := b.session.Outputs(b.idArg(call, 0, "node"))
	b.check(err)

	out := make([]any, len(values))
	for i, v := range values {
		native, err := host.ToNative(v)
		b.check(err)
		out[i] = native
	}
	return b.vm.ToValue(out)
}

func (b *binding) set(call goja.FunctionCall) goja.Value {
	id := b.idArg(call, 0, "node")
	name := b.stringArg(call, 1, "setting")
	value, err := host.FromNative(call.Argument(2).Export())
	b.check(err)
	b.check(b.session.Configure(id, name, value))
	return goja.Undefined()
}

func (b *binding) nodes(goja.FunctionCall) goja.Value {
	nodes, err := b.session.Nodes()
	b.check(err)

	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = map[string]any{"id": n.ID, "type": n.Type}
	}
	return b.vm.ToValue(out)
}

func (b *binding) types(goja.FunctionCall) goja.Value {
	types := b.session.Types()
	out := make([]any, len(types))
	for i, t := range types {
		out[i] = map[string]any{
			"name":        t.Name,
			"description": t.Description,
			"inputs":      ports(t.Inputs),
			"outputs":     ports(t.Outputs),
		}
	}
	return b.vm.ToValue(out)
}

func ports(ps []host.PortInfo) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = map[string]any{"name": p.Name, "description": p.Description, "type": p.Type}
	}
	return out
}

// guard converts a Go panic raised by fn into a thrown internal error.
// Values thrown on purpose through check pass through unchanged.
func (b *binding) guard(name string, fn func(goja.FunctionCall) goja.Value) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if thrown, ok := r.(goja.Value); ok {
				panic(thrown)
			}
			b.logger.Error("Recovered panic in graph binding.", "method", name, "panic", r)
			b.check(&host.Error{
				Code:    host.CodeInternal,
				Message: fmt.Sprintf("graph.%s: panic: %v", name, r),
			})
		}()
		return fn(call)
	}
}

// check throws err into the running script. It returns only when err is nil.
func (b *binding) check(err error) {
	if err == nil {
		return
	}
	code := host.CodeInternal
	var he *host.Error
	if errors.As(err, &he) {
		code = he.Code
	}
	b.logger.Debug("Throwing host error into script.", "code", code, "error", err)

	obj := b.vm.NewGoError(err)
	_ = obj.Set("code", string(code))
	panic(obj)
}

func (b *binding) invalidArg(name string, v goja.Value) {
	b.check(&host.Error{
		Code:    host.CodeInvalidValue,
		Message: fmt.Sprintf("%s: expected a non-negative integer, got %s", name, v),
		Err:     host.ErrInvalidValue,
	})
}

func (b *binding) idArg(call goja.FunctionCall, i int, name string) uint64 {
	v := call.Argument(i)
	n, ok := integer(v)
	if !ok || n < 0 {
		b.invalidArg(name, v)
	}
	return uint64(n)
}

func (b *binding) indexArg(call goja.FunctionCall, i int, name string) int {
	v := call.Argument(i)
	n, ok := integer(v)
	if !ok || n < 0 {
		b.invalidArg(name, v)
	}
	return int(n)
}

func (b *binding) stringArg(call goja.FunctionCall, i int, name string) string {
	v := call.Argument(i)
	s, ok := v.Export().(string)
	if !ok {
		b.check(&host.Error{
			Code:    host.CodeInvalidValue,
			Message: fmt.Sprintf("%s: expected a string, got %s", name, v),
			Err:     host.ErrInvalidValue,
		})
	}
	return s
}

// integer reports the value of v when it is an integral JS number.
func integer(v goja.Value) (int64, bool) {
	switch n := v.Export().(type) {
	case int64:
		return n, true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
