/*
Package mustache implements a small, logic-light template engine in the
Mustache style: variables with HTML escaping, dotted lookup paths, sections
and inverted sections, and comments.

The engine is split into two pure steps. Parse turns template text into an
immutable node tree, failing fast on malformed or unbalanced tags. Render
walks that tree against a context value, resolving paths through a stack of
nested scopes. Missing or mistyped data never fails a render; it produces
empty output for that slot, so a partially filled document yields blank
fields instead of an error.

Parsed trees and context values are never mutated, so concurrent renders
need no coordination. Cache offers an optional memoization layer keyed by
exact template text.
*/
package mustache
