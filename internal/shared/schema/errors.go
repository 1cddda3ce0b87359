package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation is matched by every ValidationError.
var ErrValidation = errors.New("schema validation failed")

// Fault describes one offending field.
type Fault struct {
	Path     string `json:"path"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

func (f Fault) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", f.Path, f.Expected, f.Actual)
}

// ValidationError lists every fault found in a payload, in document order.
type ValidationError struct {
	Model  string
	Faults []Fault
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Faults))
	for _, f := range e.Faults {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("%s: %d invalid field(s): %s", e.Model, len(e.Faults), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Has reports whether a fault was recorded for path.
func (e *ValidationError) Has(path string) bool {
	for _, f := range e.Faults {
		if f.Path == path {
			return true
		}
	}
	return false
}

// Paths returns the sorted set of faulty paths.
func (e *ValidationError) Paths() []string {
	seen := make(map[string]struct{}, len(e.Faults))
	paths := make([]string, 0, len(e.Faults))
	for _, f := range e.Faults {
		if _, ok := seen[f.Path]; ok {
			continue
		}
		seen[f.Path] = struct{}{}
		paths = append(paths, f.Path)
	}
	sort.Strings(paths)
	return paths
}

// Fields flattens the faults into a path to message map for problem responses.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Faults))
	for _, f := range e.Faults {
		msg := fmt.Sprintf("expected %s, got %s", f.Expected, f.Actual)
		if prev, ok := fields[f.Path]; ok {
			msg = prev + "; " + msg
		}
		fields[f.Path] = msg
	}
	return fields
}
