package runtime

import "hash/fnv"

// ObjectType identifies the kind of a heap object
type ObjectType string

const (
	STRING_OBJ ObjectType = "STRING"
)

// Object is the interface all heap-allocated runtime objects implement.
// Objects are created through the Runtime so the registry sees every
// allocation; the tables hold non-owning references to them.
type Object interface {
	Type() ObjectType
	Inspect() string
	Hash() uint32
}

// ObjString is an interned string. Contents are fixed at construction
// and the content hash is computed once right there; every other tag
// rehashes on demand.
//
// There is exactly one live ObjString per distinct content (see
// Runtime.Intern), which is what lets Value.Equals compare strings by
// pointer.
type ObjString struct {
	str  string
	hash uint32
}

func newObjString(s string) *ObjString {
	return &ObjString{str: s, hash: hashString(s)}
}

func (s *ObjString) Type() ObjectType { return STRING_OBJ }
func (s *ObjString) Inspect() string  { return s.str }
func (s *ObjString) Hash() uint32     { return s.hash }

// String returns the string contents.
func (s *ObjString) String() string { return s.str }

// Len returns the content length in bytes.
func (s *ObjString) Len() int { return len(s.str) }

// hashString computes the 32-bit FNV-1a hash of a string's contents.
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
