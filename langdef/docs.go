/*
Package langdef converts a grammar description written in a small PEG-like
language into a set of named parser rules.

A grammar description is a sequence of statements, each terminated by a
semicolon. The first defined rule is the root. Comments start with # and
run to the end of the line.

Rule definitions:

	name = expression;

Directives:

	!flat name ...;     rules recording a single childless match
	!tree name ...;     rules recording a match adopting inner matches
	!caseless;          compare input elements case-insensitively

Expressions are composed of:

	'c'        single element, escapes: \n \r \t \\ \' \" \xHH \uHHHH
	"text"     element string, all or nothing
	'a'..'z'   element range, inclusive
	.          any element
	name       rule reference, direct left recursion allowed
	x, y       sequence
	x | y      ordered choice
	x - y      difference: x except where y matches
	(x)        grouping
	[x]        optional
	{x}        zero or more
	x+         one or more
	&x         and-predicate: test without consuming
	!x         not-predicate
	^x         resume point: on failure before it, recover at x

Example:

	!tree add mul;
	!flat num;

	add = add, '+', mul | add, '-', mul | mul;
	mul = mul, '*', num | mul, '/', num | num;
	num = ('0'..'9')+ | '(', add, ^')';
*/
package langdef
