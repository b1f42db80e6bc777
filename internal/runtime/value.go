package runtime

import (
	"fmt"
	"math"
)

// ValueType identifies the type of value stored in the Value struct
type ValueType uint8

const (
	// ValNil is the zero tag, so the zero Value is nil rather than
	// anything table-internal.
	ValNil ValueType = iota
	ValBool
	ValNumber
	ValObj // Heap object reference (String, ...)

	// valEmpty marks an unoccupied table slot. It is never produced by
	// the exported constructors and never escapes the table; see table.go.
	valEmpty
)

// Value is a stack-allocated tagged union.
// It avoids heap allocation for the primitives (Bool, Nil, Number).
// The fields are unexported so the only way to build one is through the
// constructors below, which cannot produce the slot sentinel.
type Value struct {
	typ  ValueType
	bits uint64 // Stores float64 bits or bool (0/1)
	obj  Object // Holds heap objects (pointers) to keep them alive
}

// Constructors

func NilVal() Value {
	return Value{typ: ValNil}
}

func BoolVal(v bool) Value {
	var bits uint64
	if v {
		bits = 1
	}
	return Value{typ: ValBool, bits: bits}
}

func NumberVal(v float64) Value {
	return Value{typ: ValNumber, bits: math.Float64bits(v)}
}

func ObjVal(o Object) Value {
	return Value{typ: ValObj, obj: o}
}

// emptyVal marks a table slot as holding no key. Table-internal.
func emptyVal() Value {
	return Value{typ: valEmpty}
}

// Accessors

func (v Value) Type() ValueType {
	return v.typ
}

func (v Value) AsBool() bool {
	return v.bits == 1
}

func (v Value) AsNumber() float64 {
	return math.Float64frombits(v.bits)
}

func (v Value) AsObj() Object {
	return v.obj
}

// Type checking helpers

func (v Value) IsNil() bool    { return v.typ == ValNil }
func (v Value) IsBool() bool   { return v.typ == ValBool }
func (v Value) IsNumber() bool { return v.typ == ValNumber }
func (v Value) IsObj() bool    { return v.typ == ValObj }

func (v Value) isEmpty() bool { return v.typ == valEmpty }

// asString unwraps an interned string key, if that is what v holds.
func (v Value) asString() (*ObjString, bool) {
	if v.typ != ValObj {
		return nil, false
	}
	s, ok := v.obj.(*ObjString)
	return s, ok
}

// Hash codes for the fixed-size tags. Any distinct non-zero trio works;
// collisions with other codes only affect bucket distribution.
const (
	hashTrue  = 3
	hashFalse = 5
	hashNil   = 7
)

// hashNumber folds a float64 into a 32-bit hash. Hashing the raw bits
// would split 0.0 from -0.0 and could split NaN payloads, both of which
// the == used by Equals collapses. Adding 1.0 before reinterpreting
// canonicalizes those cases and breaks up the clustering of small
// integers; the two word halves are then summed.
func hashNumber(n float64) uint32 {
	bits := math.Float64bits(n + 1.0)
	return uint32(bits>>32) + uint32(bits)
}

// Hash returns the hash code used to place v in a table bucket.
// Defined for every tag; Equals(a, b) implies a.Hash() == b.Hash().
func (v Value) Hash() uint32 {
	switch v.typ {
	case ValBool:
		if v.bits == 1 {
			return hashTrue
		}
		return hashFalse
	case ValNil:
		return hashNil
	case ValNumber:
		return hashNumber(v.AsNumber())
	case ValObj:
		return v.obj.Hash()
	default:
		return 0 // valEmpty
	}
}

// Equals reports whether two values are the same key. Values of
// different tags are never equal. Numbers follow IEEE rules, so
// NaN != NaN while 0.0 == -0.0. Objects compare by identity; interning
// makes that sufficient for strings.
func (v Value) Equals(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case ValNil:
		return true
	case ValBool:
		return v.bits == other.bits
	case ValNumber:
		return v.AsNumber() == other.AsNumber()
	case ValObj:
		return v.obj == other.obj
	default:
		return true // valEmpty is a singleton
	}
}

// Inspect returns string representation
func (v Value) Inspect() string {
	switch v.typ {
	case ValNil:
		return "nil"
	case ValBool:
		return fmt.Sprintf("%t", v.bits == 1)
	case ValNumber:
		return fmt.Sprintf("%g", v.AsNumber())
	case ValObj:
		if v.obj != nil {
			return v.obj.Inspect()
		}
		return "<nil obj>"
	default:
		return "<empty>"
	}
}
