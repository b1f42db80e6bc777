package runtime

import "math"

// Maximum ratio of used slots (live entries plus tombstones) to
// capacity before a Set triggers growth. Kept below 1 so linear probing
// always terminates.
const tableMaxLoad = 0.75

// Capacity of the first allocation. Growth doubles from here, so
// capacities stay powers of two and bucket selection is a mask.
const tableMinCapacity = 8

// Entry is one table slot. The key doubles as the slot state:
//
//	key empty, value nil  -> never used since the last rebuild
//	key empty, value true -> tombstone (deleted; probes continue past)
//	anything else         -> live entry
//
// The encoding is private to this file; Range and friends only ever
// surface live entries.
type Entry struct {
	key   Value
	value Value
}

// Table is a hash map from Value to Value using open addressing with
// linear probing. The zero Table is empty and ready to use; no backing
// array exists until the first Set.
//
// A Table holds non-owning references: freeing it releases the slot
// array only, never the heap objects its keys and values point at.
// Not safe for concurrent use.
type Table struct {
	count   int // live entries + tombstones
	entries []Entry
}

// NewTable returns an empty table. Costs no allocation.
func NewTable() *Table {
	return &Table{}
}

// Count returns the number of used slots: live entries plus tombstones.
// This is the figure the load factor is computed from, not the number
// of reachable keys; see Stats for the split.
func (t *Table) Count() int {
	return t.count
}

// Cap returns the current slot-array capacity.
func (t *Table) Cap() int {
	return len(t.entries)
}

// Free releases the backing array. The table is empty and usable
// afterwards. Keys and values are not touched; the objects they
// reference belong to the runtime's registry.
func (t *Table) Free() {
	t.entries = nil
	t.count = 0
}

// findEntry locates the slot for key: either the live entry holding it,
// or the slot a Set should claim. Recycling the first tombstone seen
// keeps deletion debris from growing probe chains between rebuilds.
// The caller guarantees len(entries) > 0 and load factor < 1, so the
// scan always terminates.
func findEntry(entries []Entry, key Value) *Entry {
	mask := uint32(len(entries) - 1)
	index := key.Hash() & mask
	var tombstone *Entry
	for {
		entry := &entries[index]
		if entry.key.isEmpty() {
			if entry.value.IsNil() {
				// Truly unused: the key is absent. Hand back a
				// previously seen tombstone for reuse if there was one.
				if tombstone != nil {
					return tombstone
				}
				return entry
			}
			// Tombstone: remember the first, keep probing.
			if tombstone == nil {
				tombstone = entry
			}
		} else if entry.key.Equals(key) {
			return entry
		}
		index = (index + 1) & mask
	}
}

// Get looks up key. The second result is false when the key is absent;
// the first is then the nil value.
func (t *Table) Get(key Value) (Value, bool) {
	if t.count == 0 {
		return Value{}, false
	}
	entry := findEntry(t.entries, key)
	if entry.key.isEmpty() {
		return Value{}, false
	}
	return entry.value, true
}

// Set stores value under key and reports whether the key was absent.
// Growing invalidates any slot positions a caller may have derived
// from earlier calls. count only rises when a never-used slot is
// claimed; overwrites and tombstone reuse leave it alone.
func (t *Table) Set(key, value Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*tableMaxLoad {
		t.adjustCapacity(growCapacity(len(t.entries)))
	}

	entry := findEntry(t.entries, key)
	isNewKey := entry.key.isEmpty()
	if isNewKey && entry.value.IsNil() {
		t.count++
	}

	entry.key = key
	entry.value = value
	return isNewKey
}

// Delete removes key, reporting whether it was present. The slot
// becomes a tombstone rather than an unused slot: a later key that
// probed through here must still find its way, so the chain cannot be
// cut. Tombstones keep counting toward the load factor until a grow
// rebuilds the array.
func (t *Table) Delete(key Value) bool {
	if t.count == 0 {
		return false
	}
	entry := findEntry(t.entries, key)
	if entry.key.isEmpty() {
		return false
	}

	entry.key = emptyVal()
	entry.value = BoolVal(true)
	return true
}

// AddAll copies every live entry of src into t, overwriting on key
// collision. Tombstones are not copied.
func (t *Table) AddAll(src *Table) {
	for i := range src.entries {
		entry := &src.entries[i]
		if !entry.key.isEmpty() {
			t.Set(entry.key, entry.value)
		}
	}
}

// FindString resolves string contents to the interned object holding
// them, or nil. This is the one lookup that compares by content: the
// intern path runs it before an ObjString for the contents exists, so
// there is no Value to Get with yet. hash must be hashString(s).
func (t *Table) FindString(s string, hash uint32) *ObjString {
	if t.count == 0 {
		return nil
	}
	mask := uint32(len(t.entries) - 1)
	index := hash & mask
	for {
		entry := &t.entries[index]
		if entry.key.isEmpty() {
			// Stop on a truly unused slot, probe past tombstones.
			if entry.value.IsNil() {
				return nil
			}
		} else if obj, ok := entry.key.asString(); ok && obj.hash == hash && obj.str == s {
			return obj
		}
		index = (index + 1) & mask
	}
}

// Range calls fn for every live entry in slot order until fn returns
// false. Slot order is not a user-visible ordering; the contract exists
// so a collector can reach every key and value a table keeps alive.
// fn must not add or delete entries.
func (t *Table) Range(fn func(key, value Value) bool) {
	for i := range t.entries {
		entry := &t.entries[i]
		if entry.key.isEmpty() {
			continue
		}
		if !fn(entry.key, entry.value) {
			return
		}
	}
}

// Sweep deletes every live entry whose key fails the predicate and
// returns how many were removed. A collector runs this over the intern
// pool before reclaiming objects, so strings the pool alone still
// references do not resurrect as dangling keys.
func (t *Table) Sweep(live func(key Value) bool) int {
	removed := 0
	for i := range t.entries {
		entry := &t.entries[i]
		if entry.key.isEmpty() || live(entry.key) {
			continue
		}
		entry.key = emptyVal()
		entry.value = BoolVal(true)
		removed++
	}
	return removed
}

// growCapacity returns the next size in the growth sequence.
func growCapacity(capacity int) int {
	if capacity < tableMinCapacity {
		return tableMinCapacity
	}
	if capacity > math.MaxInt/2 {
		panic("table: capacity overflow")
	}
	return capacity * 2
}

// adjustCapacity rebuilds the slot array at the given capacity. Live
// entries rehash in their old physical order; tombstones are dropped,
// which is the only way they are ever reclaimed, and count shrinks back
// to the number of live entries.
func (t *Table) adjustCapacity(capacity int) {
	entries := make([]Entry, capacity)
	for i := range entries {
		entries[i].key = emptyVal()
	}

	count := 0
	for i := range t.entries {
		entry := &t.entries[i]
		if entry.key.isEmpty() {
			continue
		}
		dest := findEntry(entries, entry.key)
		dest.key = entry.key
		dest.value = entry.value
		count++
	}

	t.entries = entries
	t.count = count
}
