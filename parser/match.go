package parser

// Match is a recorded production: an identifier chosen by the grammar, the
// source span it covers, and the matches recorded inside that span. Children
// are ordered by position, fully contained in the parent span, and siblings
// never overlap.
type Match[E comparable] struct {
	id         any
	begin, end Pos
	src        []E
	children   []Match[E]
}

// Id returns the identifier given to the capturing expression.
// Identifiers are opaque to the engine; hosts use strings, ints, or enums.
func (m Match[E]) Id() any {
	return m.id
}

// Begin returns the position of the first element of the span.
func (m Match[E]) Begin() Pos {
	return m.begin
}

// End returns the position one past the last element of the span.
func (m Match[E]) End() Pos {
	return m.end
}

// Len returns the number of elements the match covers.
func (m Match[E]) Len() int {
	return m.end.off - m.begin.off
}

// Content returns the matched span of the input. The slice aliases the
// input the context was created over.
func (m Match[E]) Content() []E {
	return m.src[m.begin.off:m.end.off]
}

// Children returns the matches recorded inside this one, in source order.
func (m Match[E]) Children() []Match[E] {
	return m.children
}
