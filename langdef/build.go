package langdef

import (
	"github.com/pexkit/pex"
	"github.com/pexkit/pex/parser"
)

const (
	flatDir     = "flat"
	treeDir     = "tree"
	caselessDir = "caseless"
)

type builder struct {
	srcName    string
	rules      map[string]*parser.Rule[rune]
	bodies     map[string]parser.Match[rune]
	names      []string
	flat       map[string]bool
	tree       map[string]bool
	referenced map[string]bool
	caseless   bool
}

// build turns the match forest of a grammar description into a Grammar.
func build(srcName string, ms []parser.Match[rune]) (*Grammar, error) {
	b := &builder{
		srcName:    srcName,
		rules:      make(map[string]*parser.Rule[rune]),
		bodies:     make(map[string]parser.Match[rune]),
		flat:       make(map[string]bool),
		tree:       make(map[string]bool),
		referenced: make(map[string]bool),
	}

	e := b.register(ms)
	if e == nil {
		e = b.defineBodies()
	}
	if e == nil {
		e = b.checkUnused()
	}
	if e != nil {
		return nil, e
	}

	root := b.rules[b.names[0]]
	return &Grammar{b.rules, b.names, root, b.caseless}, nil
}

// register collects rule names and directives; bodies are built afterwards
// so that any rule may reference any other.
func (b *builder) register(ms []parser.Match[rune]) error {
	dirs := make([]parser.Match[rune], 0)

	for _, m := range ms {
		switch m.Id() {
		case idRule:
			name := string(m.Children()[0].Content())
			if b.rules[name] != nil {
				return ruleDefinedError(b.srcName, m.Begin(), name)
			}
			b.rules[name] = parser.NewRule[rune](name)
			b.bodies[name] = m.Children()[1]
			b.names = append(b.names, name)
		case idDir:
			dirs = append(dirs, m)
		}
	}

	if len(b.names) == 0 {
		return noRulesError(b.srcName)
	}

	for _, m := range dirs {
		e := b.applyDirective(m)
		if e != nil {
			return e
		}
	}
	return nil
}

func (b *builder) applyDirective(m parser.Match[rune]) error {
	nameM := m.Children()[0]
	name := string(nameM.Content())
	args := m.Children()[1:]

	var marks map[string]bool
	switch name {
	case caselessDir:
		if len(args) > 0 {
			return directiveArgError(b.srcName, nameM.Begin(), name)
		}
		b.caseless = true
		return nil
	case flatDir:
		marks = b.flat
	case treeDir:
		marks = b.tree
	default:
		return unknownDirectiveError(b.srcName, nameM.Begin(), name)
	}

	if len(args) == 0 {
		return directiveArgError(b.srcName, nameM.Begin(), name)
	}
	for _, arg := range args {
		rule := string(arg.Content())
		if b.rules[rule] == nil {
			return unknownRuleError(b.srcName, arg.Begin(), rule)
		}
		marks[rule] = true
		if b.flat[rule] && b.tree[rule] {
			return captureConflictError(b.srcName, rule)
		}
	}
	return nil
}

func (b *builder) defineBodies() error {
	for _, name := range b.names {
		body, e := b.buildAlt(b.bodies[name])
		if e != nil {
			return e
		}

		switch {
		case b.flat[name]:
			body = parser.Flat(body, name)
		case b.tree[name]:
			body = parser.Tree(body, name)
		}
		b.rules[name].Define(body)
	}
	return nil
}

func (b *builder) checkUnused() error {
	unused := make([]string, 0)
	for i, name := range b.names {
		if i > 0 && !b.referenced[name] {
			unused = append(unused, name)
		}
	}
	if len(unused) > 0 {
		return unusedRulesError(b.srcName, unused)
	}
	return nil
}

func (b *builder) buildAlt(m parser.Match[rune]) (parser.Expr[rune], error) {
	return b.buildJoin(m.Children(), b.buildSeq, parser.Choice[rune])
}

func (b *builder) buildSeq(m parser.Match[rune]) (parser.Expr[rune], error) {
	return b.buildJoin(m.Children(), b.buildDiff, parser.Seq[rune])
}

func (b *builder) buildJoin(
	ms []parser.Match[rune],
	buildPart func(parser.Match[rune]) (parser.Expr[rune], error),
	join func(...parser.Expr[rune]) parser.Expr[rune],
) (parser.Expr[rune], error) {
	parts := make([]parser.Expr[rune], len(ms))
	for i, c := range ms {
		part, e := buildPart(c)
		if e != nil {
			return nil, e
		}
		parts[i] = part
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return join(parts...), nil
}

func (b *builder) buildDiff(m parser.Match[rune]) (parser.Expr[rune], error) {
	cs := m.Children()
	incl, e := b.buildItem(cs[0])
	if e != nil || len(cs) == 1 {
		return incl, e
	}

	excl, e := b.buildItem(cs[1])
	if e != nil {
		return nil, e
	}
	return parser.Diff(incl, excl), nil
}

func (b *builder) buildItem(m parser.Match[rune]) (parser.Expr[rune], error) {
	prefixes := make([]any, 0, 2)
	var res parser.Expr[rune]
	plus := false

	for _, c := range m.Children() {
		switch c.Id() {
		case idAnd, idNot, idResume:
			prefixes = append(prefixes, c.Id())
		case idPlus:
			plus = true
		default:
			expr, e := b.buildPrimary(c)
			if e != nil {
				return nil, e
			}
			res = expr
		}
	}

	if plus {
		res = parser.OneOrMore(res)
	}
	for i := len(prefixes) - 1; i >= 0; i-- {
		switch prefixes[i] {
		case idAnd:
			res = parser.And(res)
		case idNot:
			res = parser.Not(res)
		case idResume:
			res = parser.Resume(res)
		}
	}
	return res, nil
}

func (b *builder) buildPrimary(m parser.Match[rune]) (parser.Expr[rune], error) {
	switch m.Id() {
	case idChar:
		r, e := b.decodeChar(m)
		if e != nil {
			return nil, e
		}
		return parser.Term(r), nil
	case idString:
		rs, e := b.decodeText(m)
		if e != nil {
			return nil, e
		}
		return parser.Literal(rs), nil
	case idRange:
		lo, e := b.decodeChar(m.Children()[0])
		if e != nil {
			return nil, e
		}
		hi, e := b.decodeChar(m.Children()[1])
		if e != nil {
			return nil, e
		}
		if hi < lo {
			return nil, badRangeError(b.srcName, m.Begin(), string(m.Content()))
		}
		return parser.Range(lo, hi), nil
	case idAny:
		return parser.Any[rune](), nil
	case idName:
		name := string(m.Content())
		r := b.rules[name]
		if r == nil {
			return nil, unknownRuleError(b.srcName, m.Begin(), name)
		}
		b.referenced[name] = true
		return r, nil
	case idOpt:
		res, e := b.buildAlt(m.Children()[0])
		if e != nil {
			return nil, e
		}
		return parser.Opt(res), nil
	case idRep:
		res, e := b.buildAlt(m.Children()[0])
		if e != nil {
			return nil, e
		}
		return parser.ZeroOrMore(res), nil
	case idAlt:
		return b.buildAlt(m)
	}
	return nil, pex.Errorf(SyntaxError, "unexpected %v node", m.Id()).In(b.srcName)
}

// decodeChar unescapes a quoted element like 'a' or '\n'.
func (b *builder) decodeChar(m parser.Match[rune]) (rune, *pex.Error) {
	content := m.Content()
	rs, ok := unescape(content[1 : len(content)-1])
	if !ok || len(rs) != 1 {
		return 0, badEscapeError(b.srcName, m.Begin(), string(content))
	}
	return rs[0], nil
}

// decodeText unescapes a quoted element string like "abc\t".
func (b *builder) decodeText(m parser.Match[rune]) ([]rune, *pex.Error) {
	content := m.Content()
	rs, ok := unescape(content[1 : len(content)-1])
	if !ok {
		return nil, badEscapeError(b.srcName, m.Begin(), string(content))
	}
	return rs, nil
}

func unescape(s []rune) ([]rune, bool) {
	res := make([]rune, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			res = append(res, c)
			continue
		}

		i++
		if i >= len(s) {
			return nil, false
		}
		switch s[i] {
		case 'n':
			res = append(res, '\n')
		case 'r':
			res = append(res, '\r')
		case 't':
			res = append(res, '\t')
		case '\\', '\'', '"':
			res = append(res, s[i])
		case 'x':
			r, ok := hexRune(s[i+1:], 2)
			if !ok {
				return nil, false
			}
			res = append(res, r)
			i += 2
		case 'u':
			r, ok := hexRune(s[i+1:], 4)
			if !ok {
				return nil, false
			}
			res = append(res, r)
			i += 4
		default:
			return nil, false
		}
	}
	return res, true
}

func hexRune(s []rune, n int) (rune, bool) {
	if len(s) < n {
		return 0, false
	}

	res := rune(0)
	for _, c := range s[:n] {
		var d rune
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, false
		}
		res = res<<4 | d
	}
	return res, true
}
