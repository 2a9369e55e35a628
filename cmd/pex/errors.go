package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/pexkit/pex"
	"github.com/pexkit/pex/source"
)

// Error codes used by the utility:
const (
	FileError = pex.CommandErrors + iota
	NoSuchRuleError
	UnknownFormatError
)

func fileError(e error) *pex.Error {
	return pex.Wrap(FileError, e)
}

func noSuchRuleError(rule, path string) *pex.Error {
	return pex.Errorf(NoSuchRuleError, "no rule %q", rule).In(path)
}

func unknownFormatError(format string) *pex.Error {
	return pex.Errorf(UnknownFormatError, "unknown format %q", format)
}

// reportError prints an error in red and, when it carries a position into
// a loaded source, the offending line with a caret under the column.
func reportError(e error, s *source.Source) {
	color.Red("%s", e.Error())

	var pe *pex.Error
	if !errors.As(e, &pe) || pe.Line == 0 || pe.Col == 0 || s == nil {
		return
	}

	text := s.LineText(pe.Line)
	if text == "" {
		return
	}
	fmt.Println(text)
	fmt.Println(strings.Repeat(" ", pe.Col-1) + color.RedString("^"))
}
