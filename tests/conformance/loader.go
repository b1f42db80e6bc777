package conformance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrBadSuite = errors.New("invalid suite")

// LoadSuites walks dir and loads every .yaml file. The corpus is
// first-party, so a file that fails to parse or validate fails the
// load rather than being skipped.
func LoadSuites(dir string) ([]Suite, error) {
	var suites []Suite
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}
		suite, err := loadSuiteFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		suites = append(suites, *suite)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return suites, nil
}

func loadSuiteFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), ".yaml")
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Suite) validate() error {
	if len(s.Cases) == 0 {
		return fmt.Errorf("%w: no cases", ErrBadSuite)
	}
	for ci, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("%w: case %d has no name", ErrBadSuite, ci)
		}
		if len(c.Ops) == 0 {
			return fmt.Errorf("%w: case %q has no ops", ErrBadSuite, c.Name)
		}
		for oi, op := range c.Ops {
			if !opKinds[op.Op] {
				return fmt.Errorf("%w: case %q op %d: unknown op %q", ErrBadSuite, c.Name, oi, op.Op)
			}
			switch op.Op {
			case "set":
				if op.Key == "" || op.Value == "" {
					return fmt.Errorf("%w: case %q op %d: set needs key and value", ErrBadSuite, c.Name, oi)
				}
			case "get":
				if op.Key == "" {
					return fmt.Errorf("%w: case %q op %d: get needs a key", ErrBadSuite, c.Name, oi)
				}
				if op.WantAbsent && op.WantValue != nil {
					return fmt.Errorf("%w: case %q op %d: get cannot want both a value and absence", ErrBadSuite, c.Name, oi)
				}
			case "del", "intern":
				if op.Key == "" {
					return fmt.Errorf("%w: case %q op %d: %s needs a key", ErrBadSuite, c.Name, oi, op.Op)
				}
			case "merge":
				if len(op.Pairs) == 0 {
					return fmt.Errorf("%w: case %q op %d: merge needs pairs", ErrBadSuite, c.Name, oi)
				}
			}
		}
	}
	return nil
}
