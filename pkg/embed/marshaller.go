package luma

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/lumalang/luma/internal/runtime"
)

// ErrUnsupported reports a Go value with no runtime representation.
var ErrUnsupported = errors.New("unsupported value")

// Marshaller converts between Go values and runtime values. It keeps
// a runtime so string conversions land in that runtime's intern pool.
type Marshaller struct {
	rt *runtime.Runtime
}

func NewMarshaller(rt *runtime.Runtime) *Marshaller {
	return &Marshaller{rt: rt}
}

// ToValue converts a Go value to a runtime value. Every numeric kind
// lands on the number tag, and strings are interned, so converting
// equal strings twice yields the identical object.
func (m *Marshaller) ToValue(val interface{}) (runtime.Value, error) {
	if val == nil {
		return runtime.NilVal(), nil
	}
	switch v := val.(type) {
	case runtime.Value:
		return v, nil
	case runtime.Object:
		return runtime.ObjVal(v), nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return runtime.BoolVal(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return runtime.NumberVal(float64(v.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return runtime.NumberVal(float64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return runtime.NumberVal(v.Float()), nil
	case reflect.String:
		return runtime.ObjVal(m.rt.Intern(v.String())), nil
	default:
		return runtime.Value{}, fmt.Errorf("%w: %T", ErrUnsupported, val)
	}
}

// FromValue converts a runtime value back to plain Go: nil, bool,
// float64, or string. Objects other than strings come back as the
// Object itself.
func (m *Marshaller) FromValue(v runtime.Value) interface{} {
	switch {
	case v.IsBool():
		return v.AsBool()
	case v.IsNumber():
		return v.AsNumber()
	case v.IsObj():
		if s, ok := v.AsObj().(*runtime.ObjString); ok {
			return s.String()
		}
		return v.AsObj()
	default:
		return nil
	}
}

// ToTable builds a fresh table from a Go map. NaN keys are refused
// because a NaN key can never be looked up again.
func (m *Marshaller) ToTable(entries map[interface{}]interface{}) (*runtime.Table, error) {
	tbl := runtime.NewTable()
	for k, val := range entries {
		key, err := m.ToValue(k)
		if err != nil {
			return nil, fmt.Errorf("key %v: %w", k, err)
		}
		if key.IsNumber() && math.IsNaN(key.AsNumber()) {
			return nil, fmt.Errorf("key %v: %w: NaN key", k, ErrUnsupported)
		}
		value, err := m.ToValue(val)
		if err != nil {
			return nil, fmt.Errorf("key %v: %w", k, err)
		}
		tbl.Set(key, value)
	}
	return tbl, nil
}

// FromTable reads every live entry back into a Go map.
func (m *Marshaller) FromTable(tbl *runtime.Table) map[interface{}]interface{} {
	out := make(map[interface{}]interface{}, tbl.Count())
	tbl.Range(func(k, v runtime.Value) bool {
		out[m.FromValue(k)] = m.FromValue(v)
		return true
	})
	return out
}
