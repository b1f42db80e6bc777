package luma

import (
	"fmt"

	"github.com/lumalang/luma/internal/runtime"
)

// Host owns a runtime and marshals Go values in and out of its
// globals. It is the entry point for programs that embed Luma state
// without a language front end.
type Host struct {
	rt         *runtime.Runtime
	marshaller *Marshaller
}

func New() *Host {
	rt := runtime.New()
	return &Host{
		rt:         rt,
		marshaller: NewMarshaller(rt),
	}
}

// Runtime exposes the underlying runtime for callers that need the
// raw table API.
func (h *Host) Runtime() *runtime.Runtime {
	return h.rt
}

// Bind registers a Go value under a global name, overwriting any
// previous binding.
func (h *Host) Bind(name string, val interface{}) error {
	v, err := h.marshaller.ToValue(val)
	if err != nil {
		return fmt.Errorf("bind '%s': %w", name, err)
	}
	h.rt.DefineGlobal(name, v)
	return nil
}

// BindAll registers every entry of globals. It stops at the first
// value that does not marshal.
func (h *Host) BindAll(globals map[string]interface{}) error {
	for name, val := range globals {
		if err := h.Bind(name, val); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a global as a plain Go value.
func (h *Host) Get(name string) (interface{}, error) {
	v, ok := h.rt.LookupGlobal(name)
	if !ok {
		return nil, fmt.Errorf("variable '%s' not found", name)
	}
	return h.marshaller.FromValue(v), nil
}

// Unbind removes a global binding and reports whether it existed.
func (h *Host) Unbind(name string) bool {
	return h.rt.RemoveGlobal(name)
}

// Collect runs a full collection pass with the globals as roots: the
// intern pool is swept as a weak table first, then every object no
// global reaches is reclaimed. It returns the number of objects
// reaped.
func (h *Host) Collect() int {
	marked := make(map[runtime.Object]bool)
	h.rt.Globals().Range(func(k, v runtime.Value) bool {
		if k.IsObj() {
			marked[k.AsObj()] = true
		}
		if v.IsObj() {
			marked[v.AsObj()] = true
		}
		return true
	})
	h.rt.Strings().Sweep(func(key runtime.Value) bool {
		return marked[key.AsObj()]
	})
	return h.rt.ReapObjects(func(obj runtime.Object) bool {
		return marked[obj]
	})
}
