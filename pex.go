/*
Package pex is a parser combinator library with support for direct left recursion.

Consists of subpackages:
  - parser: the engine itself; parse expressions, parse context, matches, rules;
  - tree: functions to traverse, filter, and render match trees;
  - langdef: converts grammar description (written in a PEG-like language) to a set of named rules;
  - source: defines named source files used for error reporting and file loading;
  - cmd/pex: console utility checking grammar files and parsing inputs.

Typical usage is:

1. Describe a grammar, either directly with parser package constructors or
in the grammar definition language handled by the langdef subpackage.

2. Create a parse context for an input, apply the root expression or rule.

3. Walk the recorded match tree (tree subpackage) to compute whatever the
parse was for.

The engine is scannerless: it works on any element slice (runes, bytes,
tokens), compares elements through a pluggable strategy, and records matches
only where the grammar asks for them.
*/
package pex

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors = 1   // used by langdef
	ParseErrors   = 101 // used by parser
	CommandErrors = 201 // used by cmd/pex
)

// Located is a position inside a source. Engine positions (parser.Pos)
// satisfy it; errors pick their line and column up from it.
type Located interface {
	// Line returns a 1-based line number, or 0 for no position.
	Line() int
	// Col returns a 1-based column number, or 0 for no position.
	Col() int
}

// Error is the error type used by pex subpackages. It carries a numeric
// code, an optional source location, and an optional wrapped cause; the
// message is composed when Error is called, so locations can be attached
// after construction with In and At.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains the bare error message, empty for wrapping errors.
	Message string

	// Source contains the name of the source the error points into, or "".
	Source string

	// Line and Col contain the 1-based error position, or 0.
	Line, Col int

	// Err contains the wrapped cause or nil.
	Err error
}

// Errorf creates an Error with a formatted message.
func Errorf(code int, format string, params ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, params...)}
}

// Wrap creates an Error carrying a cause. The cause stays reachable
// through errors.Is and errors.As.
func Wrap(code int, err error) *Error {
	return &Error{Code: code, Err: err}
}

// In attaches a source name and returns the error.
func (e *Error) In(source string) *Error {
	e.Source = source
	return e
}

// At attaches a position and returns the error.
func (e *Error) At(pos Located) *Error {
	e.Line, e.Col = pos.Line(), pos.Col()
	return e
}

// Error composes the message with whatever location was attached.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = fmt.Sprintf("error %d", e.Code)
	}

	switch {
	case e.Source == "":
		return msg
	case e.Line == 0:
		return msg + " in " + e.Source
	default:
		return fmt.Sprintf("%s at %s:%d:%d", msg, e.Source, e.Line, e.Col)
	}
}

// Unwrap returns the wrapped cause, nil for leaf errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two pex errors by code, so errors.Is(err, Errorf(code, ""))
// style checks work across wrapping.
func (e *Error) Is(target error) bool {
	t, is := target.(*Error)
	return is && t.Code == e.Code
}

// Code returns the code carried by err or by any error it wraps, 0 when
// there is no pex error in the chain.
func Code(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
