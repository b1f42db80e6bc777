// Package probe is the developer workbench for the runtime core: an
// interactive session over a live Runtime plus a YAML-described
// workload runner. It exists to poke at table behavior (tombstones,
// growth, interning) without going through a language front end.
package probe

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/lumalang/luma/internal/runtime"
)

var ErrBadLiteral = errors.New("bad literal")

// ParseValue reads one key or value literal: nil, true, false, a
// number, or a double-quoted string. Strings go through the intern
// pool, so parsing the same contents twice yields the same key.
func ParseValue(rt *runtime.Runtime, tok string) (runtime.Value, error) {
	switch tok {
	case "nil":
		return runtime.NilVal(), nil
	case "true":
		return runtime.BoolVal(true), nil
	case "false":
		return runtime.BoolVal(false), nil
	}
	if len(tok) > 0 && tok[0] == '"' {
		s, err := strconv.Unquote(tok)
		if err != nil {
			return runtime.Value{}, fmt.Errorf("%w: %s", ErrBadLiteral, tok)
		}
		return runtime.ObjVal(rt.Intern(s)), nil
	}
	if n, err := strconv.ParseFloat(tok, 64); err == nil {
		return runtime.NumberVal(n), nil
	}
	return runtime.Value{}, fmt.Errorf("%w: %q", ErrBadLiteral, tok)
}

// Format renders a value for workbench output. Unlike Inspect, strings
// come back quoted, so "3" and 3 stay distinguishable.
func Format(v runtime.Value) string {
	if v.IsObj() {
		if s, ok := v.AsObj().(*runtime.ObjString); ok {
			return strconv.Quote(s.String())
		}
	}
	return v.Inspect()
}

// fields splits a command line on spaces, keeping double-quoted
// stretches (with their quotes) as single tokens so string literals
// may contain spaces. Backslash escapes inside quotes are left for
// strconv.Unquote to interpret.
func fields(line string) ([]string, error) {
	var out []string
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= len(line) {
			break
		}
		start := i
		if line[i] == '"' {
			i++
			for i < len(line) {
				if line[i] == '\\' && i+1 < len(line) {
					i += 2
					continue
				}
				if line[i] == '"' {
					i++
					break
				}
				i++
			}
			if line[i-1] != '"' || i-start < 2 {
				return nil, fmt.Errorf("%w: unterminated string in %q", ErrBadLiteral, line)
			}
			out = append(out, line[start:i])
			continue
		}
		for i < len(line) && line[i] != ' ' && line[i] != '\t' {
			i++
		}
		out = append(out, line[start:i])
	}
	return out, nil
}
