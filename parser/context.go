// Package parser implements composable parse expressions with support for
// direct left recursion and error resynchronization.
//
// The engine is scannerless and generic over the element type: a grammar may
// run over runes, bytes, or host token values. Expressions are built once,
// are immutable, and are applied to a Context holding all mutable parse
// state. An expression either consumes input and possibly records matches,
// or fails leaving position and matches exactly as they were.
package parser

import (
	"cmp"
	"unicode"
)

// Strategy defines element comparison and line tracking for a parse.
// The zero value compares with == and tracks no line numbers.
type Strategy[E comparable] struct {
	// Equal reports whether two elements match. nil means ==.
	Equal func(a, b E) bool

	// Less orders elements for Range expressions. nil disables ranges:
	// with no order defined a Range never matches.
	Less func(a, b E) bool

	// Newline reports whether an element ends a line. When non-nil the
	// context position carries 1-based line and column numbers.
	Newline func(e E) bool
}

// Ordered returns a Strategy using the natural order of E.
func Ordered[E cmp.Ordered]() Strategy[E] {
	return Strategy[E]{
		Equal: func(a, b E) bool { return a == b },
		Less:  func(a, b E) bool { return a < b },
	}
}

// Runes returns a case-sensitive text Strategy with line tracking.
func Runes() Strategy[rune] {
	res := Ordered[rune]()
	res.Newline = func(e rune) bool { return e == '\n' }
	return res
}

// CaselessRunes returns a case-insensitive text Strategy with line tracking.
func CaselessRunes() Strategy[rune] {
	return Strategy[rune]{
		Equal:   func(a, b rune) bool { return unicode.ToLower(a) == unicode.ToLower(b) },
		Less:    func(a, b rune) bool { return unicode.ToLower(a) < unicode.ToLower(b) },
		Newline: func(e rune) bool { return e == '\n' },
	}
}

// Bytes returns a case-sensitive byte Strategy with line tracking.
func Bytes() Strategy[byte] {
	res := Ordered[byte]()
	res.Newline = func(e byte) bool { return e == '\n' }
	return res
}

// Pos is a cursor position in the input. Positions are cheap values: they
// are saved and restored on every speculative branch.
type Pos struct {
	off       int
	line, col int
}

// Offset returns the element offset from the start of the input.
func (p Pos) Offset() int {
	return p.off
}

// Line returns the 1-based line number, or 0 when the strategy tracks no lines.
func (p Pos) Line() int {
	return p.line
}

// Col returns the 1-based column number, or 0 when the strategy tracks no lines.
func (p Pos) Col() int {
	return p.col
}

// Distance returns the number of elements between two positions.
func Distance(from, to Pos) int {
	return to.off - from.off
}

// ErrorRecord is a resumable error noted while recovering to a resume point.
type ErrorRecord struct {
	// Pos is the position the failure happened at.
	Pos Pos

	// Expected describes the expression that failed there.
	Expected string
}

// State is a snapshot of context state, taken and restored in O(1).
type State struct {
	pos        Pos
	matchCount int
}

// Pos returns the position the snapshot was taken at.
func (s State) Pos() Pos {
	return s.pos
}

// Context holds all mutable state of one parse: the input cursor, recorded
// matches, active left-recursion frames, and recovered errors. A Context is
// bound to one input and is not safe for concurrent use; run concurrent
// parses with a Context each.
type Context[E comparable] struct {
	src      []E
	st       Strategy[E]
	pos      Pos
	furthest Pos
	matches  []Match[E]
	frames   map[*Rule[E]][]*lrFrame[E]
	errors   []ErrorRecord
	depth    int
	maxDepth int
}

// New creates a parse context over src. The input is borrowed, never
// copied, and must stay unchanged for the lifetime of the context and of
// any Match taken from it.
func New[E comparable](src []E, st Strategy[E]) *Context[E] {
	pc := &Context[E]{src: src, st: st}
	if st.Newline != nil {
		pc.pos.line, pc.pos.col = 1, 1
	}
	pc.furthest = pc.pos
	return pc
}

// NewText creates a rune context over a string using the Runes strategy.
func NewText(src string) *Context[rune] {
	return New([]rune(src), Runes())
}

// Parse applies the root expression to the context.
// Matches, errors, and the final position stay available afterwards.
func (pc *Context[E]) Parse(root Expr[E]) bool {
	return root.Parse(pc)
}

// Source returns the input the context was created over.
func (pc *Context[E]) Source() []E {
	return pc.src
}

// Position returns the current cursor position.
func (pc *Context[E]) Position() Pos {
	return pc.pos
}

// Ended reports whether the whole input has been consumed.
func (pc *Context[E]) Ended() bool {
	return pc.pos.off >= len(pc.src)
}

// Peek returns the element at the cursor, or false at end of input.
func (pc *Context[E]) Peek() (E, bool) {
	if pc.pos.off >= len(pc.src) {
		var zero E
		return zero, false
	}
	return pc.src[pc.pos.off], true
}

// Advance moves the cursor past one element, updating line and column
// when the strategy tracks them. Advance at end of input does nothing.
func (pc *Context[E]) Advance() {
	if pc.pos.off >= len(pc.src) {
		return
	}

	e := pc.src[pc.pos.off]
	pc.pos.off++
	if pc.st.Newline != nil {
		if pc.st.Newline(e) {
			pc.pos.line++
			pc.pos.col = 1
		} else {
			pc.pos.col++
		}
	}
	if pc.pos.off > pc.furthest.off {
		pc.furthest = pc.pos
	}
}

// Furthest returns the furthest position the cursor ever reached,
// including positions later rolled back. After a failed parse it locates
// the deepest failure; the current position is restored to the start.
func (pc *Context[E]) Furthest() Pos {
	return pc.furthest
}

// Matches returns the committed top-level matches in source order.
func (pc *Context[E]) Matches() []Match[E] {
	return pc.matches
}

// Errors returns the resumable errors recorded during the parse.
func (pc *Context[E]) Errors() []ErrorRecord {
	return pc.errors
}

// SetRecursionLimit bounds rule nesting depth. A rule entered beyond the
// limit fails. Zero (the default) means no limit.
func (pc *Context[E]) SetRecursionLimit(n int) {
	pc.maxDepth = n
}

// State captures the position and match count.
func (pc *Context[E]) State() State {
	return State{pc.pos, len(pc.matches)}
}

// SetState truncates the match list and resets the position. This is the
// only way to abandon tentative work; every compound expression uses it.
func (pc *Context[E]) SetState(s State) {
	pc.pos = s.pos
	pc.matches = pc.matches[:s.matchCount]
}

// MatchesSince returns the matches appended after the snapshot was taken.
// The slice aliases the context match list and is invalidated by SetState.
func (pc *Context[E]) MatchesSince(s State) []Match[E] {
	return pc.matches[s.matchCount:]
}

func (pc *Context[E]) equal(a, b E) bool {
	if pc.st.Equal != nil {
		return pc.st.Equal(a, b)
	}
	return a == b
}

// appendMatch records a committed match at the top level.
func (pc *Context[E]) appendMatch(m Match[E]) {
	pc.matches = append(pc.matches, m)
}

// AppendMatch records a childless match with the given id spanning from
// begin to the current position. Custom capturing expressions use it; the
// built-in captures are Flat and Tree.
func (pc *Context[E]) AppendMatch(id any, begin Pos) {
	pc.appendMatch(Match[E]{id, begin, pc.pos, pc.src, nil})
}

// resync recovers a failed sequence element: the cursor scans forward until
// the anchor of the resume point matches or the input ends. The error is
// recorded only when recovery actually commits; a failed scan restores the
// furthest-position watermark so it does not shadow the real failure.
func (pc *Context[E]) resync(r *resumeExpr[E], expected string) bool {
	at := pc.pos
	furthest := pc.furthest
	for {
		if r.anchor.Parse(pc) {
			pc.errors = append(pc.errors, ErrorRecord{at, expected})
			return true
		}
		if pc.Ended() {
			pc.furthest = furthest
			return false
		}
		pc.Advance()
	}
}
