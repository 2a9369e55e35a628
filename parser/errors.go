package parser

import (
	"github.com/pexkit/pex"
)

// Error codes used by parser:
const (
	// ParseFailedError indicates that the root expression did not match.
	ParseFailedError = pex.ParseErrors + iota

	// UnconsumedInputError indicates that parsing succeeded without
	// consuming the whole input.
	UnconsumedInputError

	// ResumedError wraps a resumable error recorded at a resume point.
	ResumedError
)

// FailureError converts a failed parse into a pex.Error located at the
// position the parse stopped at.
func FailureError(sourceName string, pos Pos) *pex.Error {
	return pex.Errorf(ParseFailedError, "parsing failed").In(sourceName).At(pos)
}

// UnconsumedError reports input left over after a successful parse.
func UnconsumedError(sourceName string, pos Pos) *pex.Error {
	return pex.Errorf(UnconsumedInputError, "unexpected input").In(sourceName).At(pos)
}

// ResumeError converts a recorded resumable error into a pex.Error.
func ResumeError(sourceName string, r ErrorRecord) *pex.Error {
	return pex.Errorf(ResumedError, "expecting %s", r.Expected).In(sourceName).At(r.Pos)
}
