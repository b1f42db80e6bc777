// Package conformance runs the YAML-described semantic suite under
// testdata/ against the runtime core. Each case is a fresh runtime and
// table driven through a flat op list; key and value literals use the
// workbench syntax, so the corpus stays readable next to a probe
// session transcript.
package conformance

// Suite is one YAML file.
type Suite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

// Case is one scenario: an op sequence over one fresh table.
type Case struct {
	Name string `yaml:"name"`
	Ops  []Op   `yaml:"ops"`
}

// Op is a single step. Op selects the action; the remaining fields are
// its arguments and optional expectations. Expectations are pointers
// so "not checked" and "expect the zero value" stay distinct.
type Op struct {
	Op    string `yaml:"op"`              // set get del merge intern count cap live tombstones gc free
	Key   string `yaml:"key,omitempty"`   // literal for set/get/del; raw contents for intern
	Value string `yaml:"value,omitempty"` // literal for set
	Pairs []KV   `yaml:"pairs,omitempty"` // merge source entries

	WantNew    *bool   `yaml:"want_new,omitempty"`    // set: key was absent; intern: contents were unpooled
	WantOK     *bool   `yaml:"want_ok,omitempty"`     // del: key was present
	WantValue  *string `yaml:"want_value,omitempty"`  // get: expected literal
	WantAbsent bool    `yaml:"want_absent,omitempty"` // get: expect a miss
	Want       *int    `yaml:"want,omitempty"`        // count/cap/live/tombstones figure; gc: reaped objects
}

// KV is one merge source entry.
type KV struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

var opKinds = map[string]bool{
	"set":        true,
	"get":        true,
	"del":        true,
	"merge":      true,
	"intern":     true,
	"count":      true,
	"cap":        true,
	"live":       true,
	"tombstones": true,
	"gc":         true,
	"free":       true,
}
