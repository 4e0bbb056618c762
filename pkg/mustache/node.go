package mustache

// Node is a single element of a parsed template tree. The implementations
// are *TextNode, *VariableNode and *SectionNode; comment tags are consumed
// at parse time and never appear in a tree. Trees are immutable once Parse
// returns them.
type Node interface {
	node()
}

// TextNode is a literal run of template text, copied to the output verbatim.
type TextNode struct {
	Text string
}

// VariableNode is a substitution tag. Path is the dotted lookup path exactly
// as written in the tag; resolution owns the split. Escape reports whether
// the resolved value is HTML-escaped on output: true for the standard
// {{name}} form, false for {{{name}}} and {{&name}}.
type VariableNode struct {
	Path   string
	Escape bool
}

// SectionNode is a block opened by {{#path}} or {{^path}} and closed by a
// matching {{/path}}. A regular section renders its children once per truthy
// iteration value; an inverted section renders them exactly once when the
// path resolves to a falsy, absent or empty value.
type SectionNode struct {
	Path     string
	Inverted bool
	Children []Node
}

func (*TextNode) node()     {}
func (*VariableNode) node() {}
func (*SectionNode) node()  {}
