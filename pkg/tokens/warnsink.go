// tokforge/pkg/tokens/warnsink.go
package tokens

import (
	"fmt"
	"os"
)

// ValidationMode controls how the parser, reference resolver, and modifier
// processor react to a validation issue: raise, warn-and-continue, or skip
// the check entirely.
type ValidationMode string

const (
	ModeError ValidationMode = "error"
	ModeWarn  ValidationMode = "warn"
	ModeOff   ValidationMode = "off"
)

// Warning is a single non-fatal diagnostic surfaced under ModeWarn.
type Warning struct {
	Code    Code
	Path    string
	Message string
}

func (w Warning) String() string {
	if w.Path == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("%s: %s: %s", w.Code, w.Path, w.Message)
}

// Sink receives warnings. Components never know whether a warning ends up on
// stderr, in a collected slice, or nowhere — they only call Warn.
//
// Grounded on the teacher's fmt.Fprintf(os.Stderr, "Warning: ...") calls in
// pkg/tokens/loader.go, generalized into an injectable interface per spec
// §4.9 and the open question in §9 about a "shared warning sink abstraction".
type Sink interface {
	Warn(w Warning)
}

// StderrSink writes warnings to stderr as the teacher's loader did directly.
type StderrSink struct{}

func (StderrSink) Warn(w Warning) {
	fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
}

// CollectingSink accumulates warnings in memory; used by library callers,
// the build coordinator (so BuildResult can surface them), and tests.
type CollectingSink struct {
	Warnings []Warning
}

func NewCollectingSink() *CollectingSink {
	return &CollectingSink{}
}

func (s *CollectingSink) Warn(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// NoopSink discards every warning; used when ValidationMode is off and a
// caller doesn't want to thread a nil check through every call site.
type NoopSink struct{}

func (NoopSink) Warn(Warning) {}

// handle applies the validation mode: in ModeError it returns an error to be
// raised by the caller, in ModeWarn it reports to sink and returns nil, in
// ModeOff it does nothing.
func handle(mode ValidationMode, sink Sink, err *Error) error {
	switch mode {
	case ModeError:
		return err
	case ModeWarn:
		if sink == nil {
			sink = StderrSink{}
		}
		sink.Warn(Warning{Code: err.Code, Path: err.Path, Message: err.Message})
		return nil
	case ModeOff:
		return nil
	default:
		return err
	}
}
