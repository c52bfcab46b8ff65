package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the reconciliation core. Read-path aggregation never
// surfaces ErrUpstreamIO to callers (it degrades and logs, see stock.go);
// write paths always surface their errors.
var (
	ErrNotFound          = errors.New("record not found")
	ErrAmbiguousIdentity = errors.New("ambiguous product reference")
	ErrUpstreamIO        = errors.New("upstream store failure")
)

// ValidationError reports missing/invalid fields on a write.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// PartialWriteError reports a multi-step write that failed after committing
// some of its steps. Step is the zero-based index of the step that failed;
// Compensated reports whether the already-committed steps were rolled back.
type PartialWriteError struct {
	Op          string
	Step        int
	Compensated bool
	Err         error
}

func (e *PartialWriteError) Error() string {
	state := "not compensated"
	if e.Compensated {
		state = "compensated"
	}
	return fmt.Sprintf("%s: step %d failed (%s): %v", e.Op, e.Step, state, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
