package targets

import (
	"math"
	"testing"

	"github.com/lumalang/luma/internal/runtime"
	luma "github.com/lumalang/luma/pkg/embed"
)

// fuzzGoValue constructs a Go scalar from raw bytes for fuzzing the
// marshaller. NaN is normalized away so round trips can compare with
// plain equality.
func fuzzGoValue(data []byte) interface{} {
	if len(data) == 0 {
		return nil
	}
	kind := data[0]
	rest := data[1:]

	switch kind % 6 {
	case 0: // int
		if len(rest) == 0 {
			return 0
		}
		return int(int8(rest[0]))
	case 1: // float64
		bits := uint64(0)
		for i := 0; i < 8 && i < len(rest); i++ {
			bits |= uint64(rest[i]) << (i * 8)
		}
		f := math.Float64frombits(bits)
		if math.IsNaN(f) {
			return 0.0
		}
		return f
	case 2: // bool
		if len(rest) == 0 {
			return false
		}
		return rest[0]%2 == 1
	case 3: // string
		return string(rest)
	case 4: // uint
		if len(rest) == 0 {
			return uint16(0)
		}
		return uint16(rest[0])
	default: // nil
		return nil
	}
}

// normalizeScalar maps a Go scalar to the shape FromValue returns:
// every number widens to float64.
func normalizeScalar(val interface{}) interface{} {
	switch n := val.(type) {
	case int:
		return float64(n)
	case uint16:
		return float64(n)
	default:
		return val
	}
}

// FuzzMarshallerRoundTrip converts random Go scalars to runtime
// values and back. Primitives must survive the trip exactly.
func FuzzMarshallerRoundTrip(f *testing.F) {
	f.Add([]byte{0, 42})                      // int
	f.Add([]byte{1, 0x40, 0x49, 0x0f, 0xdb})  // float
	f.Add([]byte{2, 1})                       // bool
	f.Add([]byte{3, 'h', 'e', 'l', 'l', 'o'}) // string
	f.Add([]byte{4, 200})                     // uint
	f.Add([]byte{5})                          // nil

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) == 0 {
			return
		}
		m := luma.NewMarshaller(runtime.New())
		val := fuzzGoValue(data)

		v, err := m.ToValue(val)
		if err != nil {
			t.Fatalf("ToValue(%v) failed: %v", val, err)
		}
		got := m.FromValue(v)
		if want := normalizeScalar(val); got != want {
			t.Fatalf("round trip of %v (%T) = %v (%T), want %v", val, val, got, got, want)
		}
	})
}

// FuzzHostBindings drives the embedding facade with fuzzed names and
// values: whatever binds must read back, and a collection pass must
// never touch a bound global.
func FuzzHostBindings(f *testing.F) {
	f.Add([]byte("name"), []byte{3, 'v'})
	f.Add([]byte{0}, []byte{1, 1, 2, 3, 4, 5, 6, 7, 8})
	f.Add([]byte("x"), []byte{5})

	f.Fuzz(func(t *testing.T, nameBytes, valBytes []byte) {
		h := luma.New()
		name := string(nameBytes)
		val := fuzzGoValue(valBytes)

		if err := h.Bind(name, val); err != nil {
			t.Fatalf("Bind(%q, %v) failed: %v", name, val, err)
		}
		h.Runtime().Intern("transient")
		h.Collect()

		got, err := h.Get(name)
		if err != nil {
			t.Fatalf("Get(%q) after collect failed: %v", name, err)
		}
		if want := normalizeScalar(val); got != want {
			t.Fatalf("Get(%q) = %v, want %v", name, got, want)
		}
		if !h.Unbind(name) {
			t.Fatalf("Unbind(%q) reported false", name)
		}
		if _, err := h.Get(name); err == nil {
			t.Fatalf("Get(%q) succeeded after Unbind", name)
		}
	})
}
