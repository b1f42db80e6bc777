package runtime

import (
	"bytes"
	"testing"
)

func TestStatsEmptyTable(t *testing.T) {
	var tbl Table
	st := tbl.Stats()
	if st != (TableStats{}) {
		t.Fatalf("zero table stats = %+v, want all zero", st)
	}
}

func TestStatsCensus(t *testing.T) {
	tbl := NewTable()
	for i := 0; i < 4; i++ {
		tbl.Set(NumberVal(float64(i)), BoolVal(true))
	}
	tbl.Delete(NumberVal(0))

	st := tbl.Stats()
	if st.Capacity != tableMinCapacity {
		t.Errorf("capacity = %d, want %d", st.Capacity, tableMinCapacity)
	}
	if st.Live != 3 || st.Tombstones != 1 {
		t.Errorf("live=%d tombstones=%d, want 3 and 1", st.Live, st.Tombstones)
	}
	if st.Live+st.Tombstones+st.Unused != st.Capacity {
		t.Errorf("census does not cover the array: %+v", st)
	}
	if st.Live+st.Tombstones != tbl.Count() {
		t.Errorf("census disagrees with count: %+v vs %d", st, tbl.Count())
	}
}

func TestStatsProbeDistance(t *testing.T) {
	keys := collidingNumbers(t, tableMinCapacity, 2)
	tbl := NewTable()
	tbl.Set(keys[0], NilVal())
	tbl.Set(keys[1], NilVal())

	st := tbl.Stats()
	if st.MaxProbe != 1 {
		t.Errorf("max probe = %d, want 1 (second key sits one past its home)", st.MaxProbe)
	}
	if st.MeanProbe != 0.5 {
		t.Errorf("mean probe = %g, want 0.5", st.MeanProbe)
	}
}

func TestStatsDump(t *testing.T) {
	keys := collidingNumbers(t, tableMinCapacity, 2)
	tbl := NewTable()
	tbl.Set(keys[0], NilVal())
	tbl.Set(keys[1], NilVal())

	var buf bytes.Buffer
	tbl.Stats().Dump("t", &buf)

	want := "t.capacity: 8\n" +
		"t.live: 2\n" +
		"t.tombstones: 0\n" +
		"t.unused: 6\n" +
		"t.probe.max: 1\n" +
		"t.probe.mean: 0.50\n"
	if got := buf.String(); got != want {
		t.Errorf("Dump mismatch:\ngot:\n%swant:\n%s", got, want)
	}
}
