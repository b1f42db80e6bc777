package probe

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lumalang/luma/internal/runtime"
)

var (
	// ErrQuit asks the caller to end the session. Not a failure.
	ErrQuit = errors.New("quit")

	ErrUnknownCommand = errors.New("unknown command")
)

const helpText = `commands:
  set K V        store V under K
  get K          look K up
  del K          delete K (leaves a tombstone)
  ls             list live entries in slot order
  merge K V ...  build a scratch table from the pairs and copy it in
  intern "s"     pool the string, reporting whether it was new
  stats          slot census of the table and the intern pool
  gc             mark from the table and globals, sweep the rest
  help           this text
  quit           leave`

// Session is one workbench conversation: a working table plus the
// runtime whose pool and registry back it. Commands come in as lines,
// results go back as strings; the REPL and the tests share this path.
type Session struct {
	rt  *runtime.Runtime
	tbl *runtime.Table
}

func NewSession(rt *runtime.Runtime) *Session {
	return &Session{rt: rt, tbl: runtime.NewTable()}
}

// Runtime returns the backing runtime.
func (s *Session) Runtime() *runtime.Runtime { return s.rt }

// Table returns the working table.
func (s *Session) Table() *runtime.Table { return s.tbl }

// Exec runs one command line and returns its printable result. ErrQuit
// signals an orderly end; every other error is a complaint about the
// line, with the session unchanged where that is possible.
func (s *Session) Exec(line string) (string, error) {
	args, err := fields(line)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return "", nil
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "set":
		return s.cmdSet(args)
	case "get":
		return s.cmdGet(args)
	case "del":
		return s.cmdDel(args)
	case "ls":
		return s.cmdLs(args)
	case "merge":
		return s.cmdMerge(args)
	case "intern":
		return s.cmdIntern(args)
	case "stats":
		return s.cmdStats(args)
	case "gc":
		return s.cmdGC(args)
	case "help":
		return helpText, nil
	case "quit":
		return "", ErrQuit
	}
	return "", fmt.Errorf("%w: %q (try help)", ErrUnknownCommand, cmd)
}

func (s *Session) cmdSet(args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("usage: set K V")
	}
	key, err := ParseValue(s.rt, args[0])
	if err != nil {
		return "", err
	}
	value, err := ParseValue(s.rt, args[1])
	if err != nil {
		return "", err
	}
	if s.tbl.Set(key, value) {
		return fmt.Sprintf("added %s = %s", Format(key), Format(value)), nil
	}
	return fmt.Sprintf("updated %s = %s", Format(key), Format(value)), nil
}

func (s *Session) cmdGet(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: get K")
	}
	key, err := ParseValue(s.rt, args[0])
	if err != nil {
		return "", err
	}
	v, ok := s.tbl.Get(key)
	if !ok {
		return fmt.Sprintf("%s is absent", Format(key)), nil
	}
	return fmt.Sprintf("%s = %s", Format(key), Format(v)), nil
}

func (s *Session) cmdDel(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: del K")
	}
	key, err := ParseValue(s.rt, args[0])
	if err != nil {
		return "", err
	}
	if s.tbl.Delete(key) {
		return fmt.Sprintf("deleted %s", Format(key)), nil
	}
	return fmt.Sprintf("%s is absent", Format(key)), nil
}

func (s *Session) cmdLs(args []string) (string, error) {
	if len(args) != 0 {
		return "", errors.New("usage: ls")
	}
	var b strings.Builder
	live := 0
	s.tbl.Range(func(k, v runtime.Value) bool {
		fmt.Fprintf(&b, "%s = %s\n", Format(k), Format(v))
		live++
		return true
	})
	fmt.Fprintf(&b, "%d live", live)
	return b.String(), nil
}

func (s *Session) cmdMerge(args []string) (string, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return "", errors.New("usage: merge K V [K V ...]")
	}
	scratch := runtime.NewTable()
	for i := 0; i < len(args); i += 2 {
		key, err := ParseValue(s.rt, args[i])
		if err != nil {
			return "", err
		}
		value, err := ParseValue(s.rt, args[i+1])
		if err != nil {
			return "", err
		}
		scratch.Set(key, value)
	}
	before := s.tbl.Stats().Live
	s.tbl.AddAll(scratch)
	after := s.tbl.Stats().Live
	return fmt.Sprintf("merged %d entries (%d new)", scratch.Stats().Live, after-before), nil
}

func (s *Session) cmdIntern(args []string) (string, error) {
	if len(args) != 1 || len(args[0]) == 0 || args[0][0] != '"' {
		return "", errors.New(`usage: intern "s"`)
	}
	contents, err := strconv.Unquote(args[0])
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrBadLiteral, args[0])
	}
	if _, had := s.rt.Interned(contents); had {
		return fmt.Sprintf("already pooled %q", contents), nil
	}
	s.rt.Intern(contents)
	return fmt.Sprintf("interned %q (objects: %d)", contents, s.rt.ObjectCount()), nil
}

func (s *Session) cmdStats(args []string) (string, error) {
	if len(args) != 0 {
		return "", errors.New("usage: stats")
	}
	var b strings.Builder
	s.tbl.Stats().Dump("table", &b)
	s.rt.Strings().Stats().Dump("strings", &b)
	fmt.Fprintf(&b, "objects: %d", s.rt.ObjectCount())
	return b.String(), nil
}

// cmdGC runs one collection cycle: mark every object reachable from
// the working table and the globals, run the weak pass over the pool,
// then reap the registry. Strings pooled but referenced nowhere else
// are the ones that die.
func (s *Session) cmdGC(args []string) (string, error) {
	if len(args) != 0 {
		return "", errors.New("usage: gc")
	}
	marked := make(map[runtime.Object]bool)
	mark := func(k, v runtime.Value) bool {
		if k.IsObj() {
			marked[k.AsObj()] = true
		}
		if v.IsObj() {
			marked[v.AsObj()] = true
		}
		return true
	}
	s.tbl.Range(mark)
	s.rt.Globals().Range(mark)

	swept := s.rt.Strings().Sweep(func(key runtime.Value) bool {
		return marked[key.AsObj()]
	})
	reaped := s.rt.ReapObjects(func(o runtime.Object) bool {
		return marked[o]
	})
	return fmt.Sprintf("gc: swept %d pool entries, reaped %d objects", swept, reaped), nil
}
