package mustache

import "strings"

// htmlEscaper rewrites the characters with special meaning in HTML. The
// replacement happens in a single pass, so ampersands produced by the
// escaping itself are never escaped again.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Render walks a node tree against a root context value and returns the
// produced text. It never fails for a tree returned by Parse: paths that do
// not resolve render as empty output for variables and test falsy for
// sections. Neither the tree nor the context is mutated, so the same tree
// may be rendered concurrently.
func Render(tree []Node, root Value) string {
	var sb strings.Builder
	renderNodes(&sb, tree, []Value{root})
	return sb.String()
}

// RenderString parses template and renders it against root in one step.
func RenderString(template string, root Value) (string, error) {
	tree, err := Parse(template)
	if err != nil {
		return "", err
	}
	return Render(tree, root), nil
}

func renderNodes(sb *strings.Builder, nodes []Node, stack []Value) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *TextNode:
			sb.WriteString(n.Text)
		case *VariableNode:
			v, ok := resolve(n.Path, stack)
			if !ok {
				continue
			}
			s := v.stringify()
			if n.Escape {
				s = htmlEscaper.Replace(s)
			}
			sb.WriteString(s)
		case *SectionNode:
			renderSection(sb, n, stack)
		}
	}
}

func renderSection(sb *strings.Builder, sec *SectionNode, stack []Value) {
	v, ok := resolve(sec.Path, stack)
	truthy := ok && v.Truthy()

	if sec.Inverted {
		if !truthy {
			renderNodes(sb, sec.Children, stack)
		}
		return
	}
	if !truthy {
		return
	}

	switch v.Kind() {
	case KindList:
		// Each element becomes the innermost scope for one iteration; the
		// frame is dropped when the recursive call returns.
		for _, item := range v.Items() {
			renderNodes(sb, sec.Children, append(stack, item))
		}
	case KindMap:
		renderNodes(sb, sec.Children, append(stack, v))
	default:
		// Truthy booleans and scalars guard the body without changing the
		// enclosing scope.
		renderNodes(sb, sec.Children, stack)
	}
}

// resolve looks a dotted path up against the context stack. The first
// segment is searched from the innermost frame outward; the first map frame
// containing the key supplies the starting value. Remaining segments descend
// into maps only. A lone "." yields the innermost frame itself. The second
// result reports whether resolution succeeded.
func resolve(path string, stack []Value) (Value, bool) {
	if path == "." {
		return stack[len(stack)-1], true
	}

	segments := strings.Split(path, ".")
	current := Value{}
	found := false
	for i := len(stack) - 1; i >= 0; i-- {
		if v, ok := stack[i].Key(segments[0]); ok {
			current = v
			found = true
			break
		}
	}
	if !found {
		return Value{}, false
	}

	for _, segment := range segments[1:] {
		v, ok := current.Key(segment)
		if !ok {
			return Value{}, false
		}
		current = v
	}
	return current, true
}
