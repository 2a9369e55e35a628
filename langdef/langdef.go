package langdef

import (
	"github.com/pexkit/pex/parser"
	"github.com/pexkit/pex/source"
)

// Grammar is a compiled grammar description: named rules sharing one
// expression graph, plus the comparison strategy the description asked for.
type Grammar struct {
	rules    map[string]*parser.Rule[rune]
	names    []string
	root     *parser.Rule[rune]
	caseless bool
}

// Root returns the root rule, the first one defined.
func (g *Grammar) Root() *parser.Rule[rune] {
	return g.root
}

// Rule returns a rule by name, nil if not defined.
func (g *Grammar) Rule(name string) *parser.Rule[rune] {
	return g.rules[name]
}

// RuleNames returns rule names in definition order.
func (g *Grammar) RuleNames() []string {
	return g.names
}

// Caseless reports whether the grammar compares elements case-insensitively.
func (g *Grammar) Caseless() bool {
	return g.caseless
}

// NewContext creates a parse context for an input using the grammar
// strategy. Apply with ctx.Parse(g.Root()).
func (g *Grammar) NewContext(input string) *parser.Context[rune] {
	st := parser.Runes()
	if g.caseless {
		st = parser.CaselessRunes()
	}
	return parser.New([]rune(input), st)
}

// ParseString parses a grammar description and returns a Grammar on success.
// Returns nil and pex.Error on error.
func ParseString(name, content string) (*Grammar, error) {
	return Parse(source.NewString(name, content))
}

// Parse parses a grammar description and returns a Grammar on success.
// Returns nil and pex.Error on error.
func Parse(s *source.Source) (*Grammar, error) {
	pc := parser.NewText(string(s.Content()))
	ok := pc.Parse(metaRoot)

	if errs := pc.Errors(); len(errs) > 0 {
		return nil, syntaxError(s.Name(), errs[0].Pos, errs[0].Expected)
	}
	if !ok || !pc.Ended() {
		return nil, syntaxError(s.Name(), pc.Furthest(), "")
	}

	return build(s.Name(), pc.Matches())
}

// match identifiers of the grammar description language itself
const (
	idRule   = "rule"
	idDir    = "dir"
	idAlt    = "alt"
	idSeq    = "seq"
	idDiff   = "diff"
	idItem   = "item"
	idAnd    = "and"
	idNot    = "not"
	idResume = "resume"
	idPlus   = "plus"
	idOpt    = "opt"
	idRep    = "rep"
	idChar   = "char"
	idRange  = "range"
	idString = "string"
	idName   = "name"
	idAny    = "any"
)

// metaRoot parses the description language with the engine itself.
var metaRoot = buildMeta()

func buildMeta() parser.Expr[rune] {
	type E = parser.Expr[rune]

	comment := parser.Seq(parser.Term('#'), parser.ZeroOrMore(parser.Diff(parser.Any[rune](), parser.Term('\n'))))
	ws := parser.ZeroOrMore(parser.Choice(parser.Set(' ', '\t', '\r', '\n'), comment))
	tok := func(x E) E { return parser.Seq(x, ws) }

	nameStart := parser.Choice(parser.Range('a', 'z'), parser.Range('A', 'Z'), parser.Term('_'))
	nameCont := parser.Choice(nameStart, parser.Range('0', '9'))
	name := parser.Flat(parser.Seq(nameStart, parser.ZeroOrMore(nameCont)), idName)

	escape := parser.Seq(parser.Term('\\'), parser.Any[rune]())
	charBody := parser.Choice(escape, parser.Diff(parser.Any[rune](), parser.Set('\'', '\n')))
	char := parser.Flat(parser.Seq(parser.Term('\''), parser.OneOrMore(charBody), parser.Term('\'')), idChar)
	strBody := parser.ZeroOrMore(parser.Choice(escape, parser.Diff(parser.Any[rune](), parser.Set('"', '\n'))))
	str := parser.Flat(parser.Seq(parser.Term('"'), strBody, parser.Term('"')), idString)
	rng := parser.Tree(parser.Seq(char, parser.Text(".."), char), idRange)
	anyElem := parser.Flat(parser.Term('.'), idAny)

	alt := parser.NewRule[rune]("alternatives")

	group := parser.Seq(tok(parser.Term('(')), alt, parser.Term(')'))
	option := parser.Tree(parser.Seq(tok(parser.Term('[')), alt, parser.Term(']')), idOpt)
	repeat := parser.Tree(parser.Seq(tok(parser.Term('{')), alt, parser.Term('}')), idRep)

	primary := parser.Choice(rng, char, str, anyElem, name, group, option, repeat)
	prefix := parser.Choice(
		parser.Flat(parser.Term('&'), idAnd),
		parser.Flat(parser.Term('!'), idNot),
		parser.Flat(parser.Term('^'), idResume),
	)
	plus := parser.Flat(parser.Term('+'), idPlus)
	item := parser.Tree(parser.Seq(parser.ZeroOrMore(tok(prefix)), tok(primary), parser.Opt(tok(plus))), idItem)

	diff := parser.Tree(parser.Seq(item, parser.Opt(parser.Seq(tok(parser.Term('-')), item))), idDiff)
	seq := parser.Tree(parser.Seq(diff, parser.ZeroOrMore(parser.Seq(tok(parser.Term(',')), diff))), idSeq)
	alt.Define(parser.Tree(parser.Seq(seq, parser.ZeroOrMore(parser.Seq(tok(parser.Term('|')), seq))), idAlt))

	ruleDef := parser.Tree(
		parser.Seq(tok(name), tok(parser.Term('=')), alt, parser.Resume(parser.Term(';')), ws),
		idRule,
	)

	// The tail lives in its own rule so that a statement not starting with
	// '!' fails fast: a resume point in the same sequence as the '!' check
	// would swallow rule definitions while scanning for the semicolon.
	dirTail := parser.NewRule[rune]("directive").Define(
		parser.Seq(tok(name), parser.ZeroOrMore(tok(name)), parser.Resume(parser.Term(';')), ws),
	)
	directive := parser.Tree(parser.Seq(parser.Term('!'), dirTail), idDir)

	return parser.Seq(ws, parser.ZeroOrMore(parser.Choice(directive, ruleDef)))
}
