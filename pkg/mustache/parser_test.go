package mustache

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseTextOnly(t *testing.T) {
	tree, err := Parse("plain text, no tags")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []Node{&TextNode{Text: "plain text, no tags"}}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("expected %+v, got %+v", want, tree)
	}
}

func TestParseEmptyTemplate(t *testing.T) {
	tree, err := Parse("")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(tree) != 0 {
		t.Errorf("expected empty tree, got %+v", tree)
	}
}

func TestParseVariables(t *testing.T) {
	tree, err := Parse("Hello {{ name }}! Raw: {{{ html }}} and {{& more }}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []Node{
		&TextNode{Text: "Hello "},
		&VariableNode{Path: "name", Escape: true},
		&TextNode{Text: "! Raw: "},
		&VariableNode{Path: "html", Escape: false},
		&TextNode{Text: " and "},
		&VariableNode{Path: "more", Escape: false},
	}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("expected %+v, got %+v", want, tree)
	}
}

func TestParseDottedPathKeptWhole(t *testing.T) {
	tree, err := Parse("{{person.full_name}}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	v, ok := tree[0].(*VariableNode)
	if !ok {
		t.Fatalf("expected a variable node, got %T", tree[0])
	}
	// The path is not pre-split; resolution owns the split.
	if v.Path != "person.full_name" {
		t.Errorf("expected path 'person.full_name', got %q", v.Path)
	}
}

func TestParseCommentsDiscarded(t *testing.T) {
	tree, err := Parse("a{{! this never shows }}b")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []Node{&TextNode{Text: "a"}, &TextNode{Text: "b"}}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("expected %+v, got %+v", want, tree)
	}
}

func TestParseSections(t *testing.T) {
	tree, err := Parse("{{#items}}{{name}}{{/items}}{{^items}}none{{/items}}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(tree))
	}

	sec, ok := tree[0].(*SectionNode)
	if !ok {
		t.Fatalf("expected a section node, got %T", tree[0])
	}
	if sec.Path != "items" || sec.Inverted {
		t.Errorf("unexpected section: %+v", sec)
	}
	if len(sec.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(sec.Children))
	}

	inv, ok := tree[1].(*SectionNode)
	if !ok {
		t.Fatalf("expected a section node, got %T", tree[1])
	}
	if inv.Path != "items" || !inv.Inverted {
		t.Errorf("unexpected inverted section: %+v", inv)
	}
}

func TestParseNestedSections(t *testing.T) {
	tree, err := Parse("{{#a}}{{#b}}x{{/b}}{{/a}}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	outer := tree[0].(*SectionNode)
	inner, ok := outer.Children[0].(*SectionNode)
	if !ok {
		t.Fatalf("expected nested section, got %T", outer.Children[0])
	}
	if inner.Path != "b" {
		t.Errorf("expected inner path 'b', got %q", inner.Path)
	}
}

func TestParseSameNameNesting(t *testing.T) {
	// Innermost close always targets the most recently opened frame, so
	// identical names at different depths are legal.
	tree, err := Parse("{{#a}}{{#a}}x{{/a}}{{/a}}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	outer := tree[0].(*SectionNode)
	if _, ok := outer.Children[0].(*SectionNode); !ok {
		t.Errorf("expected nested section of the same name, got %T", outer.Children[0])
	}
}

func TestParseAdjacentTags(t *testing.T) {
	tree, err := Parse("{{a}}{{b}}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []Node{
		&VariableNode{Path: "a", Escape: true},
		&VariableNode{Path: "b", Escape: true},
	}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("expected %+v, got %+v", want, tree)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name     string
		template string
	}{
		{"empty tag", "{{}}"},
		{"whitespace tag", "{{   }}"},
		{"empty triple tag", "{{{}}}"},
		{"empty section path", "{{#}}x{{/}}"},
		{"unclosed tag", "{{name"},
		{"unclosed triple tag", "{{{name}}"},
		{"mismatched close", "{{#a}}body{{/b}}"},
		{"unterminated section", "{{#a}}body"},
		{"close without open", "body{{/a}}"},
		{"crossed nesting", "{{#a}}{{#b}}{{/a}}{{/b}}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.template)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want syntax error", tc.template)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Errorf("expected *SyntaxError, got %T (%v)", err, err)
			}
		})
	}
}

func TestParseSigilWhitespace(t *testing.T) {
	tree, err := Parse("{{ # items }}x{{ / items }}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sec, ok := tree[0].(*SectionNode)
	if !ok {
		t.Fatalf("expected a section node, got %T", tree[0])
	}
	if sec.Path != "items" {
		t.Errorf("expected path 'items', got %q", sec.Path)
	}
}
