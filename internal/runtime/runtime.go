// Package runtime implements the Luma value representation and the
// hash table built on it: a tagged Value union, open-addressing tables
// keyed by any Value, and the string intern pool that gives the rest of
// the system O(1) string equality.
//
// Everything here is single-threaded by contract. The interpreter and
// the collector run in the same goroutine as their tables; nothing
// locks.
package runtime

// Runtime is the explicit home of what would otherwise be process-wide
// interpreter state: the string intern pool, the global-variable table,
// and the registry of every heap object allocated through it. Callers
// create one at startup and thread it through; there are no package
// globals.
type Runtime struct {
	strings Table
	globals Table
	objects []Object
}

// New returns a fresh runtime. Both tables start with no backing array.
func New() *Runtime {
	return &Runtime{}
}

// Strings exposes the intern pool, primarily so a collector can Range
// it for marking and Sweep it for the weak-reference pass.
func (rt *Runtime) Strings() *Table {
	return &rt.strings
}

// Globals exposes the global-variable table.
func (rt *Runtime) Globals() *Table {
	return &rt.globals
}

// register records a freshly allocated object for later reclamation.
func (rt *Runtime) register(obj Object) {
	rt.objects = append(rt.objects, obj)
}

// ObjectCount returns the number of registered heap objects.
func (rt *Runtime) ObjectCount() int {
	return len(rt.objects)
}

// EachObject visits every registered object in allocation order until
// fn returns false. This is the sweep-side enumeration: the mark side
// walks the tables via Range.
func (rt *Runtime) EachObject(fn func(Object) bool) {
	for _, obj := range rt.objects {
		if !fn(obj) {
			return
		}
	}
}

// ReapObjects drops every registered object that fails the predicate
// and returns how many were dropped. Run Strings().Sweep first with the
// same notion of liveness: an interned string the pool still holds
// would otherwise come back from Intern as a reaped pointer.
func (rt *Runtime) ReapObjects(live func(Object) bool) int {
	kept := rt.objects[:0]
	for _, obj := range rt.objects {
		if live(obj) {
			kept = append(kept, obj)
		}
	}
	removed := len(rt.objects) - len(kept)
	// Clear the tail so the backing array stops pinning reaped objects.
	for i := len(kept); i < len(rt.objects); i++ {
		rt.objects[i] = nil
	}
	rt.objects = kept
	return removed
}

// DefineGlobal binds a value under name, interning the name, and
// reports whether the binding is new.
func (rt *Runtime) DefineGlobal(name string, v Value) bool {
	return rt.globals.Set(ObjVal(rt.Intern(name)), v)
}

// LookupGlobal reads a global binding. Names never seen by Intern
// cannot be bound, so a pool miss is an early not-found with no
// allocation.
func (rt *Runtime) LookupGlobal(name string) (Value, bool) {
	obj := rt.strings.FindString(name, hashString(name))
	if obj == nil {
		return Value{}, false
	}
	return rt.globals.Get(ObjVal(obj))
}

// RemoveGlobal deletes a global binding, reporting whether it existed.
func (rt *Runtime) RemoveGlobal(name string) bool {
	obj := rt.strings.FindString(name, hashString(name))
	if obj == nil {
		return false
	}
	return rt.globals.Delete(ObjVal(obj))
}

// Free releases the backing storage of both tables and the object
// registry. Object memory itself is the host collector's problem.
func (rt *Runtime) Free() {
	rt.strings.Free()
	rt.globals.Free()
	rt.objects = nil
}
