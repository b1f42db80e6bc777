package targets

import (
	"fmt"
	"os"
	goruntime "runtime"
	"testing"

	"github.com/lumalang/luma/internal/runtime"
	"github.com/lumalang/luma/tests/fuzz/generators"
)

func init() {
	// Cap fuzz worker parallelism unless the caller explicitly set GOMAXPROCS.
	if _, ok := os.LookupEnv("GOMAXPROCS"); !ok {
		max := goruntime.NumCPU()
		if max > 4 {
			max = 4
		}
		if goruntime.GOMAXPROCS(0) > max {
			goruntime.GOMAXPROCS(max)
		}
	}
}

// keyUniverse builds n distinct keys covering every tag: nil, both
// bools, then alternating numbers and interned strings. Ops address
// keys by index, so the oracle can key on the index and never has to
// reproduce value hashing.
func keyUniverse(rt *runtime.Runtime, n int) []runtime.Value {
	keys := []runtime.Value{
		runtime.NilVal(),
		runtime.BoolVal(true),
		runtime.BoolVal(false),
	}
	for i := 0; len(keys) < n; i++ {
		if i%2 == 0 {
			keys = append(keys, runtime.NumberVal(float64(i)))
		} else {
			keys = append(keys, runtime.ObjVal(rt.Intern(fmt.Sprintf("k%d", i))))
		}
	}
	return keys[:n]
}

// replayOps drives a fresh table and a Go map through the same op
// sequence and fails on any disagreement, checking the structural
// invariants after every op and reconciling the survivors at the end.
func replayOps(t *testing.T, ops []generators.Op) {
	t.Helper()

	rt := runtime.New()
	tbl := runtime.NewTable()
	keys := keyUniverse(rt, 24)
	oracle := make(map[int]float64)

	for i, op := range ops {
		idx := op.Key % len(keys)
		key := keys[idx]
		switch op.Kind {
		case generators.OpSet:
			_, had := oracle[idx]
			wasNew := tbl.Set(key, runtime.NumberVal(op.Val))
			if wasNew == had {
				t.Fatalf("op %d: Set(%s) new=%t, oracle had=%t", i, key.Inspect(), wasNew, had)
			}
			oracle[idx] = op.Val
		case generators.OpGet:
			v, ok := tbl.Get(key)
			want, wantOk := oracle[idx]
			if ok != wantOk {
				t.Fatalf("op %d: Get(%s) present=%t, oracle says %t", i, key.Inspect(), ok, wantOk)
			}
			if ok && v.AsNumber() != want {
				t.Fatalf("op %d: Get(%s) = %s, oracle wants %g", i, key.Inspect(), v.Inspect(), want)
			}
		case generators.OpDelete:
			_, had := oracle[idx]
			if ok := tbl.Delete(key); ok != had {
				t.Fatalf("op %d: Delete(%s) = %t, oracle had=%t", i, key.Inspect(), ok, had)
			}
			delete(oracle, idx)
		}

		if tbl.Count() < len(oracle) {
			t.Fatalf("op %d: count %d below %d live entries", i, tbl.Count(), len(oracle))
		}
		if cap := tbl.Cap(); cap != 0 && cap&(cap-1) != 0 {
			t.Fatalf("op %d: capacity %d not a power of two", i, cap)
		}
		if limit := tbl.Cap() * 3 / 4; tbl.Count() > limit {
			t.Fatalf("op %d: count %d breaks the load bound %d (cap %d)",
				i, tbl.Count(), limit, tbl.Cap())
		}
	}

	st := tbl.Stats()
	if st.Live != len(oracle) {
		t.Fatalf("final: %d live slots, oracle has %d", st.Live, len(oracle))
	}
	for idx, want := range oracle {
		v, ok := tbl.Get(keys[idx])
		if !ok || v.AsNumber() != want {
			t.Fatalf("final: Get(%s) = (%s, %t), oracle wants %g",
				keys[idx].Inspect(), v.Inspect(), ok, want)
		}
	}
	visited := 0
	tbl.Range(func(k, v runtime.Value) bool {
		visited++
		return true
	})
	if visited != len(oracle) {
		t.Fatalf("final: Range visited %d entries, oracle has %d", visited, len(oracle))
	}
}
