package runtime

// Intern returns the canonical string object for the given contents,
// allocating one on first sight. Construction always comes through
// here, so at most one live ObjString exists per distinct content and
// identity comparison is string equality everywhere downstream.
//
// The pool is a key-only table: interned strings are stored as keys
// with a nil value.
func (rt *Runtime) Intern(s string) *ObjString {
	hash := hashString(s)
	if obj := rt.strings.FindString(s, hash); obj != nil {
		return obj
	}

	obj := newObjString(s)
	rt.register(obj)
	rt.strings.Set(ObjVal(obj), NilVal())
	return obj
}

// Interned reports whether contents are already pooled, without
// allocating on a miss.
func (rt *Runtime) Interned(s string) (*ObjString, bool) {
	obj := rt.strings.FindString(s, hashString(s))
	return obj, obj != nil
}
