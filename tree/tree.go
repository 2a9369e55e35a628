// Package tree provides traversal, selection, and rendering helpers for
// match trees produced by the parser package.
package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/pexkit/pex/parser"
)

// Visitor is called for every visited match with its nesting depth.
// Returning walkChildren false skips the children of the current match;
// returning walkSiblings false stops the walk.
type Visitor[E comparable] func(m parser.Match[E], depth int) (walkChildren, walkSiblings bool)

// Walk visits matches depth first, parents before children, siblings in
// source order.
func Walk[E comparable](ms []parser.Match[E], v Visitor[E]) {
	walk(ms, 0, v)
}

func walk[E comparable](ms []parser.Match[E], depth int, v Visitor[E]) bool {
	for _, m := range ms {
		wc, ws := v(m, depth)
		if wc && !walk(m.Children(), depth+1, v) {
			return false
		}
		if !ws {
			return false
		}
	}
	return true
}

// Filter decides whether a match is selected.
type Filter[E comparable] func(m parser.Match[E]) bool

// IsId selects matches carrying one of the given identifiers.
func IsId[E comparable](ids ...any) Filter[E] {
	return func(m parser.Match[E]) bool {
		for _, id := range ids {
			if m.Id() == id {
				return true
			}
		}
		return false
	}
}

// IsLeaf selects matches with no children.
func IsLeaf[E comparable]() Filter[E] {
	return func(m parser.Match[E]) bool {
		return len(m.Children()) == 0
	}
}

// IsNot inverts a filter.
func IsNot[E comparable](f Filter[E]) Filter[E] {
	return func(m parser.Match[E]) bool {
		return !f(m)
	}
}

// IsAny combines filters with or.
func IsAny[E comparable](fs ...Filter[E]) Filter[E] {
	return func(m parser.Match[E]) bool {
		for _, f := range fs {
			if f(m) {
				return true
			}
		}
		return false
	}
}

// IsAll combines filters with and.
func IsAll[E comparable](fs ...Filter[E]) Filter[E] {
	return func(m parser.Match[E]) bool {
		for _, f := range fs {
			if !f(m) {
				return false
			}
		}
		return true
	}
}

// Collect returns every match selected by the filter. With deep set the
// children of selected matches are searched too, otherwise the search
// does not descend past a selected match.
func Collect[E comparable](ms []parser.Match[E], f Filter[E], deep bool) []parser.Match[E] {
	res := make([]parser.Match[E], 0)
	Walk(ms, func(m parser.Match[E], depth int) (bool, bool) {
		if !f(m) {
			return true, true
		}
		res = append(res, m)
		return deep, true
	})
	return res
}

// First returns the first match selected by the filter, in walk order.
func First[E comparable](ms []parser.Match[E], f Filter[E]) (parser.Match[E], bool) {
	var res parser.Match[E]
	found := false
	Walk(ms, func(m parser.Match[E], depth int) (bool, bool) {
		if f(m) {
			res = m
			found = true
			return false, false
		}
		return true, true
	})
	return res, found
}

// Leaves returns all childless matches in source order.
func Leaves[E comparable](ms []parser.Match[E]) []parser.Match[E] {
	return Collect(ms, IsLeaf[E](), false)
}

// Count returns the total number of matches in the forest.
func Count[E comparable](ms []parser.Match[E]) int {
	res := 0
	Walk(ms, func(m parser.Match[E], depth int) (bool, bool) {
		res++
		return true, true
	})
	return res
}

// Depth returns the deepest nesting level of the forest, 0 for an empty one.
func Depth[E comparable](ms []parser.Match[E]) int {
	res := 0
	Walk(ms, func(m parser.Match[E], depth int) (bool, bool) {
		if depth+1 > res {
			res = depth + 1
		}
		return true, true
	})
	return res
}

// Renderer produces a one-line label for a match.
type Renderer[E comparable] func(m parser.Match[E]) string

// Label renders a match as "id: content", the default CLI shape.
func Label[E comparable](m parser.Match[E]) string {
	return fmt.Sprintf("%v: %q", m.Id(), fmt.Sprintf("%v", m.Content()))
}

// TextLabel renders a rune match as "id: content".
func TextLabel(m parser.Match[rune]) string {
	return fmt.Sprintf("%v: %q", m.Id(), string(m.Content()))
}

// Dump writes an indented rendering of the forest, two spaces per level.
func Dump[E comparable](w io.Writer, ms []parser.Match[E], r Renderer[E]) error {
	var e error
	Walk(ms, func(m parser.Match[E], depth int) (bool, bool) {
		if e != nil {
			return false, false
		}
		_, e = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), r(m))
		return true, true
	})
	return e
}
