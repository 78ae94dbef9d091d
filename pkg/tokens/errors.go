// tokforge/pkg/tokens/errors.go
package tokens

import (
	"errors"
	"fmt"
)

// Code identifies the structured diagnostic taxonomy from the build/lint
// pipeline. Every hard error raised by the resolver, parser, composer, or
// permutation engine carries one of these codes.
type Code string

const (
	CodeTokenReference    Code = "TOKEN_REFERENCE"
	CodeCircularReference Code = "CIRCULAR_REFERENCE"
	CodeValidation        Code = "VALIDATION"
	CodeColorParse        Code = "COLOR_PARSE"
	CodeDimensionFormat   Code = "DIMENSION_FORMAT"
	CodeFileOperation     Code = "FILE_OPERATION"
	CodeConfiguration     Code = "CONFIGURATION"
	CodeBasePermutation   Code = "BASE_PERMUTATION"
	CodeModifier          Code = "MODIFIER"
	CodeUnknown           Code = "UNKNOWN"
)

// Error is the coded diagnostic carried by every hard failure in the core
// engine. It generalizes the teacher's bespoke ValidationError into a single
// tagged type so callers can switch on Code() instead of a type assertion per
// concern.
type Error struct {
	Code        Code
	Path        string   // token path or group path, when applicable
	SourceFile  string   // originating file, when known
	Message     string
	Suggestions []string // "did you mean?" candidates, when applicable
	Wrapped     error
}

func (e *Error) Error() string {
	loc := e.Path
	if e.SourceFile != "" {
		loc = fmt.Sprintf("%s [%s]", e.Path, e.SourceFile)
	}
	msg := e.Message
	if len(e.Suggestions) > 0 {
		msg = fmt.Sprintf("%s (did you mean %q?)", msg, e.Suggestions[0])
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, loc, msg)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// NewError builds a coded error without a path.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithPath attaches a token/group path to a coded error, returning a new
// value so callers can build once and annotate at each call site.
func (e *Error) WithPath(path string) *Error {
	cp := *e
	cp.Path = path
	return &cp
}

// WithSource attaches the originating source file.
func (e *Error) WithSource(file string) *Error {
	cp := *e
	cp.SourceFile = file
	return &cp
}

// WithSuggestions attaches "did you mean?" candidates.
func (e *Error) WithSuggestions(s []string) *Error {
	cp := *e
	cp.Suggestions = s
	return &cp
}

// CodeOf extracts the Code from an error if it (or something it wraps) is a
// *Error, otherwise CodeUnknown.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeUnknown
}
