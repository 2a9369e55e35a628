package langdef

import (
	"strings"

	"github.com/pexkit/pex"
	"github.com/pexkit/pex/parser"
)

// Error codes used by langdef:
const (
	SyntaxError = pex.GrammarErrors + iota
	NoRulesError
	RuleDefinedError
	UnknownRuleError
	UnusedRuleError
	UnknownDirectiveError
	DirectiveArgError
	CaptureConflictError
	BadEscapeError
	BadRangeError
)

func posError(name string, pos parser.Pos, code int, msg string, params ...any) *pex.Error {
	return pex.Errorf(code, msg, params...).In(name).At(pos)
}

func syntaxError(name string, pos parser.Pos, expected string) *pex.Error {
	if expected == "" {
		return posError(name, pos, SyntaxError, "syntax error")
	}
	return posError(name, pos, SyntaxError, "syntax error, expecting %s", expected)
}

func noRulesError(name string) *pex.Error {
	return pex.Errorf(NoRulesError, "no rules defined").In(name)
}

func ruleDefinedError(name string, pos parser.Pos, rule string) *pex.Error {
	return posError(name, pos, RuleDefinedError, "rule %q already defined", rule)
}

func unknownRuleError(name string, pos parser.Pos, rule string) *pex.Error {
	return posError(name, pos, UnknownRuleError, "undefined rule %q", rule)
}

func unusedRulesError(name string, rules []string) *pex.Error {
	return pex.Errorf(UnusedRuleError, "unused rules: %s", strings.Join(rules, ", ")).In(name)
}

func unknownDirectiveError(name string, pos parser.Pos, dir string) *pex.Error {
	return posError(name, pos, UnknownDirectiveError, "unknown directive !%s", dir)
}

func directiveArgError(name string, pos parser.Pos, dir string) *pex.Error {
	return posError(name, pos, DirectiveArgError, "wrong arguments for directive !%s", dir)
}

func captureConflictError(name, rule string) *pex.Error {
	return pex.Errorf(CaptureConflictError, "rule %q marked both !flat and !tree", rule).In(name)
}

func badEscapeError(name string, pos parser.Pos, text string) *pex.Error {
	return posError(name, pos, BadEscapeError, "bad escape sequence in %s", text)
}

func badRangeError(name string, pos parser.Pos, text string) *pex.Error {
	return posError(name, pos, BadRangeError, "empty range %s", text)
}
