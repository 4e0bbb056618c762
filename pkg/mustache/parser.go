package mustache

import (
	"fmt"
	"strings"
)

const (
	openDelim   = "{{"
	closeDelim  = "}}"
	openTriple  = "{{{"
	closeTriple = "}}}"
)

// SyntaxError describes a malformed template: an unbalanced section, an
// empty tag, or a tag that never closes. Offset is the byte position of the
// offending tag's open delimiter (or the template length for sections left
// open at end of input).
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error at offset %d: %s", e.Offset, e.Msg)
}

func syntaxErrorf(offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// parser holds the state of a single Parse call: the input, the scan
// position, the accumulated top-level nodes and the stack of open section
// frames (innermost last).
type parser struct {
	input string
	pos   int
	root  []Node
	open  []*SectionNode
}

// Parse converts template text into a node tree. Text between tags is kept
// verbatim; no whitespace trimming or standalone-line handling is applied.
// It returns a *SyntaxError when a tag is empty or never closed, when a
// close tag does not match the innermost open section, or when a section is
// still open at end of input.
func Parse(template string) ([]Node, error) {
	p := &parser{input: template}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.root, nil
}

func (p *parser) run() error {
	for p.pos < len(p.input) {
		next := strings.Index(p.input[p.pos:], openDelim)
		if next < 0 {
			p.add(&TextNode{Text: p.input[p.pos:]})
			p.pos = len(p.input)
			break
		}
		if next > 0 {
			p.add(&TextNode{Text: p.input[p.pos : p.pos+next]})
			p.pos += next
		}
		if err := p.scanTag(); err != nil {
			return err
		}
	}
	if len(p.open) > 0 {
		frame := p.open[len(p.open)-1]
		return syntaxErrorf(len(p.input), "unterminated section %q", frame.Path)
	}
	return nil
}

// add appends a node to the innermost open section, or to the top level when
// no section is open.
func (p *parser) add(n Node) {
	if len(p.open) > 0 {
		frame := p.open[len(p.open)-1]
		frame.Children = append(frame.Children, n)
		return
	}
	p.root = append(p.root, n)
}

// scanTag consumes one tag; p.pos is known to point at an open delimiter.
func (p *parser) scanTag() error {
	start := p.pos

	// The triple-brace unescaped form has its own close delimiter and no
	// sigil handling.
	if strings.HasPrefix(p.input[p.pos:], openTriple) {
		end := strings.Index(p.input[p.pos+len(openTriple):], closeTriple)
		if end < 0 {
			return syntaxErrorf(start, "unclosed tag")
		}
		path := strings.TrimSpace(p.input[p.pos+len(openTriple) : p.pos+len(openTriple)+end])
		p.pos += len(openTriple) + end + len(closeTriple)
		if path == "" {
			return syntaxErrorf(start, "empty tag")
		}
		p.add(&VariableNode{Path: path, Escape: false})
		return nil
	}

	end := strings.Index(p.input[p.pos+len(openDelim):], closeDelim)
	if end < 0 {
		return syntaxErrorf(start, "unclosed tag")
	}
	raw := strings.TrimSpace(p.input[p.pos+len(openDelim) : p.pos+len(openDelim)+end])
	p.pos += len(openDelim) + end + len(closeDelim)

	if raw == "" {
		return syntaxErrorf(start, "empty tag")
	}

	sigil := raw[0]
	path := strings.TrimSpace(raw[1:])

	switch sigil {
	case '!':
		// Comments are discarded and produce no node.
		return nil
	case '&':
		if path == "" {
			return syntaxErrorf(start, "empty tag")
		}
		p.add(&VariableNode{Path: path, Escape: false})
	case '#', '^':
		if path == "" {
			return syntaxErrorf(start, "empty tag")
		}
		frame := &SectionNode{Path: path, Inverted: sigil == '^'}
		p.add(frame)
		p.open = append(p.open, frame)
	case '/':
		if path == "" {
			return syntaxErrorf(start, "empty tag")
		}
		if len(p.open) == 0 {
			return syntaxErrorf(start, "close tag %q with no open section", path)
		}
		// A close tag always targets the innermost open frame; the name is
		// checked against that frame, which permits nesting identical names
		// at different depths.
		frame := p.open[len(p.open)-1]
		if frame.Path != path {
			return syntaxErrorf(start, "close tag %q does not match open section %q", path, frame.Path)
		}
		p.open = p.open[:len(p.open)-1]
	default:
		p.add(&VariableNode{Path: raw, Escape: true})
	}
	return nil
}
