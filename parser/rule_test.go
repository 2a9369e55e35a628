package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// calcRules builds the classic left-recursive calculator:
//
//	add = add '+' mul | add '-' mul | mul
//	mul = mul '*' num | mul '/' num | num
//	num = digit+ | '(' add ')'
//
// With capture enabled, num records flat matches and add/mul record trees.
func calcRules(capture bool) *Rule[rune] {
	add := NewRule[rune]("add")
	mul := NewRule[rune]("mul")
	num := NewRule[rune]("num")

	addBody := Choice(
		Seq[rune](add, Term('+'), mul),
		Seq[rune](add, Term('-'), mul),
		mul,
	)
	mulBody := Choice(
		Seq[rune](mul, Term('*'), num),
		Seq[rune](mul, Term('/'), num),
		num,
	)
	numBody := Choice(
		OneOrMore(Range('0', '9')),
		Seq[rune](Term('('), add, Term(')')),
	)

	if capture {
		add.Define(Tree(addBody, "add"))
		mul.Define(Tree(mulBody, "mul"))
		num.Define(Flat(numBody, "num"))
	} else {
		add.Define(addBody)
		mul.Define(mulBody)
		num.Define(numBody)
	}
	return add
}

func TestLeftRecursiveCalc(t *testing.T) {
	samples := []struct {
		src string
		ok  bool
		off int
	}{
		{"1+2*3", true, 5},
		{"1", true, 1},
		{"12/3-4", true, 6},
		{"2*(1+3)", true, 7},
		{"((7))", true, 5},
		{"1+", true, 1},
		{"+1", false, 0},
		{"", false, 0},
	}
	add := calcRules(false)
	for _, s := range samples {
		pc := NewText(s.src)
		assert.Equal(t, s.ok, pc.Parse(add), "src %q", s.src)
		assert.Equal(t, s.off, pc.Position().Offset(), "src %q", s.src)
	}
}

func TestLeftRecursionTreeShape(t *testing.T) {
	add := calcRules(true)
	pc := NewText("1-2+3")
	require.True(t, pc.Parse(add))
	require.True(t, pc.Ended())
	require.Len(t, pc.Matches(), 1)

	root := pc.Matches()[0]
	assert.Equal(t, "add", root.Id())
	assert.Equal(t, "1-2+3", string(root.Content()))

	// left-leaning: the root adopts the previous best as its first child
	require.Len(t, root.Children(), 2)
	left := root.Children()[0]
	assert.Equal(t, "add", left.Id())
	assert.Equal(t, "1-2", string(left.Content()))
	assert.Equal(t, "mul", root.Children()[1].Id())
	assert.Equal(t, "3", string(root.Children()[1].Content()))

	require.Len(t, left.Children(), 2)
	assert.Equal(t, "add", left.Children()[0].Id())
	assert.Equal(t, "1", string(left.Children()[0].Content()))
	assert.Equal(t, "mul", left.Children()[1].Id())
	assert.Equal(t, "2", string(left.Children()[1].Content()))
}

func TestLeftRecursionPrecedence(t *testing.T) {
	add := calcRules(true)
	pc := NewText("1+2*3")
	require.True(t, pc.Parse(add))
	root := pc.Matches()[0]

	require.Len(t, root.Children(), 2)
	assert.Equal(t, "1", string(root.Children()[0].Content()))

	prod := root.Children()[1]
	assert.Equal(t, "mul", prod.Id())
	assert.Equal(t, "2*3", string(prod.Content()))
}

func TestLeftRecursionSimple(t *testing.T) {
	// a = a 'x' | 'y'
	a := NewRule[rune]("a")
	a.Define(Choice(Seq[rune](a, Term('x')), Term('y')))

	samples := []struct {
		src string
		ok  bool
		off int
	}{
		{"y", true, 1},
		{"yx", true, 2},
		{"yxxx", true, 4},
		{"x", false, 0},
	}
	for _, s := range samples {
		pc := NewText(s.src)
		assert.Equal(t, s.ok, pc.Parse(a), "src %q", s.src)
		assert.Equal(t, s.off, pc.Position().Offset(), "src %q", s.src)
	}
}

func TestLeftRecursionZeroWidthSeed(t *testing.T) {
	// a = a 'x' | ['q']: the seed matches nothing, growing still consumes
	a := NewRule[rune]("a")
	a.Define(Choice(Seq[rune](a, Term('x')), Opt(Term('q'))))

	pc := NewText("xxx")
	require.True(t, pc.Parse(a))
	assert.Equal(t, 3, pc.Position().Offset())
}

func TestIndirectRecursionTerminates(t *testing.T) {
	// a = b; b = a | 'x': indirect recursion is unsupported but must not hang
	a := NewRule[rune]("a")
	b := NewRule[rune]("b")
	a.Define(b)
	b.Define(Choice(a, Term('x')))

	pc := NewText("xx")
	assert.True(t, pc.Parse(a))
	assert.Equal(t, 1, pc.Position().Offset())

	pc = NewText("y")
	assert.False(t, pc.Parse(a))
	assert.Equal(t, 0, pc.Position().Offset())
}

func TestRecursionLimit(t *testing.T) {
	r := NewRule[rune]("r")
	r.Define(Choice(Seq[rune](Term('('), r, Term(')')), Term('x')))

	pc := NewText("(((x)))")
	require.True(t, pc.Parse(r))

	pc = NewText("(((x)))")
	pc.SetRecursionLimit(2)
	assert.False(t, pc.Parse(r))
	assert.Equal(t, 0, pc.Position().Offset())
}

func TestUndefinedRulePanics(t *testing.T) {
	r := NewRule[rune]("empty")
	pc := NewText("x")
	assert.Panics(t, func() { pc.Parse(r) })
}

func TestRuleCaptureRollback(t *testing.T) {
	// a failing rule with captures inside must leave no matches behind
	r := NewRule[rune]("pair")
	r.Define(Seq(Flat(Term('a'), "a"), Term('b')))

	pc := NewText("ac")
	require.False(t, pc.Parse(r))
	assert.Empty(t, pc.Matches())
	assert.Equal(t, 0, pc.Position().Offset())
}
