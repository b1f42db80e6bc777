package runtime

import (
	"fmt"
	"io"
)

// TableStats is a census of a table's slots. Diagnostics only; nothing
// in the runtime keys off it.
type TableStats struct {
	Capacity   int
	Live       int
	Tombstones int
	Unused     int
	MaxProbe   int     // longest distance from any live key's home slot
	MeanProbe  float64 // average distance over live keys
}

// Stats walks the slot array and reports the census. Probe distance is
// how far a key sits from the slot its hash selects, wrapping at the
// end of the array.
func (t *Table) Stats() TableStats {
	st := TableStats{Capacity: len(t.entries)}
	if len(t.entries) == 0 {
		return st
	}

	mask := uint32(len(t.entries) - 1)
	totalProbe := 0
	for i := range t.entries {
		entry := &t.entries[i]
		if entry.key.isEmpty() {
			if entry.value.IsNil() {
				st.Unused++
			} else {
				st.Tombstones++
			}
			continue
		}
		st.Live++
		home := entry.key.Hash() & mask
		dist := int((uint32(i) - home) & mask)
		totalProbe += dist
		if dist > st.MaxProbe {
			st.MaxProbe = dist
		}
	}
	if st.Live > 0 {
		st.MeanProbe = float64(totalProbe) / float64(st.Live)
	}
	return st
}

// Dump writes the census in one-figure-per-line form.
func (st TableStats) Dump(name string, w io.Writer) {
	fmt.Fprintf(w, "%s.capacity: %d\n", name, st.Capacity)
	fmt.Fprintf(w, "%s.live: %d\n", name, st.Live)
	fmt.Fprintf(w, "%s.tombstones: %d\n", name, st.Tombstones)
	fmt.Fprintf(w, "%s.unused: %d\n", name, st.Unused)
	fmt.Fprintf(w, "%s.probe.max: %d\n", name, st.MaxProbe)
	fmt.Fprintf(w, "%s.probe.mean: %.2f\n", name, st.MeanProbe)
}
