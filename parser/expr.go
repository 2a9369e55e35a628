package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a parse expression. Parse either consumes input, possibly
// recording matches, and returns true, or returns false with the context
// position and match list exactly as they were before the call.
//
// String renders the expression for error records and diagnostics.
type Expr[E comparable] interface {
	Parse(pc *Context[E]) bool
	String() string
}

// Term creates an expression matching a single element.
func Term[E comparable](v E) Expr[E] {
	return &termExpr[E]{v}
}

// Literal creates an all-or-nothing expression matching the given elements
// in order.
func Literal[E comparable](s []E) Expr[E] {
	return &literalExpr[E]{s}
}

// Text creates an all-or-nothing expression matching a string, rune by rune.
func Text(s string) Expr[rune] {
	return Literal([]rune(s))
}

// Range creates an expression matching one element between lo and hi
// inclusive, in the order defined by the context strategy.
func Range[E comparable](lo, hi E) Expr[E] {
	return &rangeExpr[E]{lo, hi}
}

// Set creates an expression matching one element out of the given values.
func Set[E comparable](vals ...E) Expr[E] {
	return &setExpr[E]{vals}
}

// Any creates an expression matching any single element.
func Any[E comparable]() Expr[E] {
	return &anyExpr[E]{}
}

// Seq creates a sequence: every item must succeed in order. Nested
// sequences are flattened. A Resume item marks a recovery point for the
// items before it.
func Seq[E comparable](items ...Expr[E]) Expr[E] {
	flat := make([]Expr[E], 0, len(items))
	for _, it := range items {
		if s, is := it.(*seqExpr[E]); is {
			flat = append(flat, s.items...)
		} else {
			flat = append(flat, it)
		}
	}
	return &seqExpr[E]{flat}
}

// Choice creates an ordered choice: items are tried in order and the first
// success wins; later alternatives are never consulted.
func Choice[E comparable](items ...Expr[E]) Expr[E] {
	return &choiceExpr[E]{items}
}

// ZeroOrMore creates a repetition applying item until it fails. It always
// succeeds. An iteration that succeeds without advancing ends the
// repetition.
func ZeroOrMore[E comparable](item Expr[E]) Expr[E] {
	return &repExpr[E]{item, false}
}

// OneOrMore is ZeroOrMore requiring the first application to succeed.
func OneOrMore[E comparable](item Expr[E]) Expr[E] {
	return &repExpr[E]{item, true}
}

// Opt applies item and succeeds whether item does or not.
func Opt[E comparable](item Expr[E]) Expr[E] {
	return &optExpr[E]{item}
}

// And creates an and-predicate: it reports whether item would succeed,
// consuming no input and recording no matches.
func And[E comparable](item Expr[E]) Expr[E] {
	return &predExpr[E]{item, true}
}

// Not creates a not-predicate: it succeeds where item fails, consuming no
// input and recording no matches.
func Not[E comparable](item Expr[E]) Expr[E] {
	return &predExpr[E]{item, false}
}

// Diff succeeds when a succeeds and b would not, at the same position.
// It consumes whatever a consumes.
func Diff[E comparable](a, b Expr[E]) Expr[E] {
	return &diffExpr[E]{a, b}
}

// Flat applies item and, on success, records a single childless match with
// the given id spanning what item consumed. Matches item recorded
// internally are dropped from the top level.
func Flat[E comparable](item Expr[E], id any) Expr[E] {
	return &flatExpr[E]{item, id}
}

// Tree applies item and, on success, records a match with the given id
// adopting as children every match item contributed.
func Tree[E comparable](item Expr[E], id any) Expr[E] {
	return &treeExpr[E]{item, id}
}

// Resume turns anchor into a recovery point. Inside a sequence a failure
// before the resume point records an error and skips ahead to the anchor.
// Reached normally with no anchor in sight, it records an error and
// recovers at the first anchor match or at end of input.
func Resume[E comparable](anchor Expr[E]) Expr[E] {
	return &resumeExpr[E]{anchor}
}

type termExpr[E comparable] struct {
	val E
}

func (x *termExpr[E]) Parse(pc *Context[E]) bool {
	v, ok := pc.Peek()
	if !ok || !pc.equal(v, x.val) {
		return false
	}
	pc.Advance()
	return true
}

func (x *termExpr[E]) String() string {
	return quoteElem(x.val)
}

type literalExpr[E comparable] struct {
	vals []E
}

func (x *literalExpr[E]) Parse(pc *Context[E]) bool {
	state := pc.State()
	for _, val := range x.vals {
		v, ok := pc.Peek()
		if !ok || !pc.equal(v, val) {
			pc.SetState(state)
			return false
		}
		pc.Advance()
	}
	return true
}

func (x *literalExpr[E]) String() string {
	return quoteElems(x.vals)
}

type rangeExpr[E comparable] struct {
	lo, hi E
}

func (x *rangeExpr[E]) Parse(pc *Context[E]) bool {
	less := pc.st.Less
	if less == nil {
		return false
	}

	v, ok := pc.Peek()
	if !ok || less(v, x.lo) || less(x.hi, v) {
		return false
	}
	pc.Advance()
	return true
}

func (x *rangeExpr[E]) String() string {
	return quoteElem(x.lo) + ".." + quoteElem(x.hi)
}

type setExpr[E comparable] struct {
	vals []E
}

func (x *setExpr[E]) Parse(pc *Context[E]) bool {
	v, ok := pc.Peek()
	if !ok {
		return false
	}

	for _, val := range x.vals {
		if pc.equal(v, val) {
			pc.Advance()
			return true
		}
	}
	return false
}

func (x *setExpr[E]) String() string {
	parts := make([]string, len(x.vals))
	for i, v := range x.vals {
		parts[i] = quoteElem(v)
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

type anyExpr[E comparable] struct{}

func (x *anyExpr[E]) Parse(pc *Context[E]) bool {
	if pc.Ended() {
		return false
	}
	pc.Advance()
	return true
}

func (x *anyExpr[E]) String() string {
	return "."
}

type seqExpr[E comparable] struct {
	items []Expr[E]
}

func (x *seqExpr[E]) Parse(pc *Context[E]) bool {
	state := pc.State()
	for i := 0; i < len(x.items); i++ {
		if x.items[i].Parse(pc) {
			continue
		}

		r := x.resumeAfter(i)
		if r < 0 || !pc.resync(x.items[r].(*resumeExpr[E]), x.items[i].String()) {
			pc.SetState(state)
			return false
		}
		i = r
	}
	return true
}

func (x *seqExpr[E]) resumeAfter(i int) int {
	for j := i + 1; j < len(x.items); j++ {
		if _, is := x.items[j].(*resumeExpr[E]); is {
			return j
		}
	}
	return -1
}

func (x *seqExpr[E]) String() string {
	return "(" + joinExprs(x.items, ", ") + ")"
}

type choiceExpr[E comparable] struct {
	items []Expr[E]
}

func (x *choiceExpr[E]) Parse(pc *Context[E]) bool {
	for _, it := range x.items {
		if it.Parse(pc) {
			return true
		}
	}
	return false
}

func (x *choiceExpr[E]) String() string {
	return "(" + joinExprs(x.items, " | ") + ")"
}

type repExpr[E comparable] struct {
	item     Expr[E]
	required bool
}

func (x *repExpr[E]) Parse(pc *Context[E]) bool {
	if x.required && !x.item.Parse(pc) {
		return false
	}

	for {
		before := pc.pos.off
		if !x.item.Parse(pc) || pc.pos.off == before {
			return true
		}
	}
}

func (x *repExpr[E]) String() string {
	if x.required {
		return "{" + x.item.String() + "}+"
	}
	return "{" + x.item.String() + "}"
}

type optExpr[E comparable] struct {
	item Expr[E]
}

func (x *optExpr[E]) Parse(pc *Context[E]) bool {
	x.item.Parse(pc)
	return true
}

func (x *optExpr[E]) String() string {
	return "[" + x.item.String() + "]"
}

type predExpr[E comparable] struct {
	item Expr[E]
	want bool
}

func (x *predExpr[E]) Parse(pc *Context[E]) bool {
	state := pc.State()
	ok := x.item.Parse(pc)
	pc.SetState(state)
	return ok == x.want
}

func (x *predExpr[E]) String() string {
	if x.want {
		return "&" + x.item.String()
	}
	return "!" + x.item.String()
}

type diffExpr[E comparable] struct {
	incl, excl Expr[E]
}

func (x *diffExpr[E]) Parse(pc *Context[E]) bool {
	state := pc.State()
	if x.excl.Parse(pc) {
		pc.SetState(state)
		return false
	}
	return x.incl.Parse(pc)
}

func (x *diffExpr[E]) String() string {
	return "(" + x.incl.String() + " - " + x.excl.String() + ")"
}

type flatExpr[E comparable] struct {
	item Expr[E]
	id   any
}

func (x *flatExpr[E]) Parse(pc *Context[E]) bool {
	state := pc.State()
	if !x.item.Parse(pc) {
		return false
	}

	end := pc.pos
	pc.matches = pc.matches[:state.matchCount]
	pc.appendMatch(Match[E]{x.id, state.pos, end, pc.src, nil})
	return true
}

func (x *flatExpr[E]) String() string {
	return x.item.String()
}

type treeExpr[E comparable] struct {
	item Expr[E]
	id   any
}

func (x *treeExpr[E]) Parse(pc *Context[E]) bool {
	state := pc.State()
	if !x.item.Parse(pc) {
		return false
	}

	var children []Match[E]
	if produced := pc.MatchesSince(state); len(produced) > 0 {
		children = make([]Match[E], len(produced))
		copy(children, produced)
	}
	pc.matches = pc.matches[:state.matchCount]
	pc.appendMatch(Match[E]{x.id, state.pos, pc.pos, pc.src, children})
	return true
}

func (x *treeExpr[E]) String() string {
	return x.item.String()
}

type resumeExpr[E comparable] struct {
	anchor Expr[E]
}

func (x *resumeExpr[E]) Parse(pc *Context[E]) bool {
	if x.anchor.Parse(pc) {
		return true
	}

	at := pc.pos
	for {
		if pc.Ended() {
			pc.errors = append(pc.errors, ErrorRecord{at, x.anchor.String()})
			return true
		}
		pc.Advance()
		if x.anchor.Parse(pc) {
			pc.errors = append(pc.errors, ErrorRecord{at, x.anchor.String()})
			return true
		}
	}
}

func (x *resumeExpr[E]) String() string {
	return "^" + x.anchor.String()
}

func joinExprs[E comparable](items []Expr[E], sep string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, sep)
}

func quoteElem[E comparable](v E) string {
	switch x := any(v).(type) {
	case rune:
		return strconv.QuoteRune(x)
	case byte:
		return strconv.QuoteRune(rune(x))
	case string:
		return strconv.Quote(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func quoteElems[E comparable](s []E) string {
	switch x := any(s).(type) {
	case []rune:
		return strconv.Quote(string(x))
	case []byte:
		return strconv.Quote(string(x))
	}

	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = quoteElem(v)
	}
	return "(" + strings.Join(parts, " ") + ")"
}
