package generators

// OpKind selects a table operation.
type OpKind int

const (
	OpSet OpKind = iota
	OpGet
	OpDelete
	opKinds
)

// KindCount is the number of operation kinds, for mutators that draw
// a kind at random.
const KindCount = int(opKinds)

// Op is one step of a generated workload. Key is an index into the
// target's key universe, not a value: the target and its oracle derive
// their respective keys from the same index, so bit-level key quirks
// (NaN, signed zero) cannot desynchronize them.
type Op struct {
	Kind OpKind
	Key  int
	Val  float64
}

// OpsGenerator derives table workloads from a byte stream. Sets are
// weighted double so tables actually fill up and grow.
type OpsGenerator struct {
	src *ByteSource
}

func NewOpsGenerator(data []byte) *OpsGenerator {
	return &OpsGenerator{src: &ByteSource{data: data}}
}

// Ops produces at most max operations, stopping early when the byte
// stream runs dry.
func (g *OpsGenerator) Ops(max int) []Op {
	var ops []Op
	for len(ops) < max && !g.src.Exhausted() {
		var kind OpKind
		switch g.src.Intn(int(opKinds) + 1) {
		case 0, 1:
			kind = OpSet
		case 2:
			kind = OpGet
		default:
			kind = OpDelete
		}
		ops = append(ops, Op{
			Kind: kind,
			Key:  g.src.Intn(1 << 8),
			Val:  g.src.Float64() * 1000,
		})
	}
	return ops
}
