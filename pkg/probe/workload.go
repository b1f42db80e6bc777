package probe

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lumalang/luma/internal/runtime"
)

var ErrBadWorkload = errors.New("invalid workload")

// OpMix weights the operations of a workload. Weights are relative;
// they do not need to sum to anything in particular.
type OpMix struct {
	Set    int `yaml:"set"`
	Get    int `yaml:"get"`
	Delete int `yaml:"delete"`
}

// Workload describes a randomized run against a fresh table: ops draws
// from mix over a key universe of the given size, seeded for
// reproducibility. Half the universe is number keys, half interned
// strings, so both hash paths get traffic.
type Workload struct {
	Seed int64 `yaml:"seed"`
	Ops  int   `yaml:"ops"`
	Keys int   `yaml:"keys"`
	Mix  OpMix `yaml:"mix"`
}

// LoadWorkload reads and validates a YAML workload spec.
func LoadWorkload(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("workload %s: %w", path, err)
	}
	var w Workload
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("workload %s: %w", path, err)
	}
	if err := w.validate(); err != nil {
		return nil, fmt.Errorf("workload %s: %w", path, err)
	}
	return &w, nil
}

func (w *Workload) validate() error {
	if w.Ops <= 0 {
		return fmt.Errorf("%w: ops must be positive, got %d", ErrBadWorkload, w.Ops)
	}
	if w.Keys <= 0 {
		return fmt.Errorf("%w: keys must be positive, got %d", ErrBadWorkload, w.Keys)
	}
	if w.Mix.Set < 0 || w.Mix.Get < 0 || w.Mix.Delete < 0 {
		return fmt.Errorf("%w: negative mix weight", ErrBadWorkload)
	}
	if w.Mix.Set+w.Mix.Get+w.Mix.Delete == 0 {
		return fmt.Errorf("%w: all mix weights are zero", ErrBadWorkload)
	}
	return nil
}

// Run executes the workload against a fresh runtime and table, then
// writes op counters, timing, and the final slot census to out.
func (w *Workload) Run(out io.Writer) error {
	if err := w.validate(); err != nil {
		return err
	}

	rt := runtime.New()
	tbl := runtime.NewTable()
	rng := rand.New(rand.NewSource(w.Seed))

	keys := make([]runtime.Value, w.Keys)
	for i := range keys {
		if i%2 == 0 {
			keys[i] = runtime.NumberVal(float64(i))
		} else {
			keys[i] = runtime.ObjVal(rt.Intern(fmt.Sprintf("key-%d", i)))
		}
	}

	total := w.Mix.Set + w.Mix.Get + w.Mix.Delete
	var sets, gets, hits, dels, removed int

	start := time.Now()
	for op := 0; op < w.Ops; op++ {
		key := keys[rng.Intn(len(keys))]
		switch n := rng.Intn(total); {
		case n < w.Mix.Set:
			tbl.Set(key, runtime.NumberVal(float64(op)))
			sets++
		case n < w.Mix.Set+w.Mix.Get:
			if _, ok := tbl.Get(key); ok {
				hits++
			}
			gets++
		default:
			if tbl.Delete(key) {
				removed++
			}
			dels++
		}
	}
	elapsed := time.Since(start)

	fmt.Fprintf(out, "ops: %d in %s\n", w.Ops, elapsed.Round(time.Microsecond))
	fmt.Fprintf(out, "set: %d  get: %d (hits %d)  delete: %d (removed %d)\n",
		sets, gets, hits, dels, removed)
	tbl.Stats().Dump("table", out)
	rt.Strings().Stats().Dump("strings", out)
	fmt.Fprintf(out, "objects: %d\n", rt.ObjectCount())
	return nil
}
