package mutator

import (
	"math/rand"

	"github.com/lumalang/luma/tests/fuzz/generators"
)

// OpsMutator applies random mutations to table op sequences. Mutating
// a sequence directly keeps every other op intact, so a failure
// localizes to the touched op; byte-level mutation would instead
// re-derive everything after the changed byte.
type OpsMutator struct {
	rnd *rand.Rand
}

// NewOpsMutator creates a new OpsMutator with the given seed.
func NewOpsMutator(seed int64) *OpsMutator {
	return &OpsMutator{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// Mutate applies a random mutation and returns the result. The input
// slice is left untouched so callers can replay both versions.
func (m *OpsMutator) Mutate(ops []generators.Op) []generators.Op {
	out := make([]generators.Op, len(ops))
	copy(out, ops)
	if len(out) == 0 {
		return out
	}

	// Pick a random op to mutate
	idx := m.rnd.Intn(len(out))

	switch m.rnd.Intn(5) {
	case 0:
		// Flip the kind
		out[idx].Kind = generators.OpKind(m.rnd.Intn(generators.KindCount))
	case 1:
		// Retarget the key
		out[idx].Key = m.rnd.Intn(256)
	case 2:
		// Perturb the value
		out[idx].Val += float64(m.rnd.Intn(21) - 10) // -10 to +10
	case 3:
		// Duplicate the op right after itself
		dup := out[idx]
		out = append(out[:idx+1], append([]generators.Op{dup}, out[idx+1:]...)...)
	case 4:
		// Drop the op
		out = append(out[:idx], out[idx+1:]...)
	}

	return out
}
