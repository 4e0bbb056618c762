package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stevenAthompson/resume/pkg/mustache"
)

// writeContext is a test helper that writes a context document to a temp
// file and returns its path.
func writeContext(tb testing.TB, name, body string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		tb.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadContextJSON(t *testing.T) {
	path := writeContext(t, "ctx.json", `{"person":{"full_name":"Jane Doe"},"skills":[{"name":"Go","percent":90}]}`)

	ctx, err := LoadContext(path)
	if err != nil {
		t.Fatalf("LoadContext() error = %v", err)
	}

	out, err := mustache.RenderString("{{person.full_name}} {{#skills}}{{name}}{{/skills}}", ctx)
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if out != "Jane Doe Go" {
		t.Errorf("rendered %q", out)
	}
}

func TestLoadContextYAML(t *testing.T) {
	path := writeContext(t, "ctx.yaml", "person:\n  full_name: Jane Doe\nskills:\n  - name: Go\n    percent: 90\n")

	ctx, err := LoadContext(path)
	if err != nil {
		t.Fatalf("LoadContext() error = %v", err)
	}

	skills := key(t, ctx, "skills")
	if skills.Kind() != mustache.KindList || skills.Len() != 1 {
		t.Fatalf("expected one skill, got %+v", skills)
	}
	if got := key(t, skills.Items()[0], "percent").Num(); got != 90 {
		t.Errorf("percent = %v", got)
	}
}

func TestLoadContextErrors(t *testing.T) {
	if _, err := LoadContext(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}

	badPath := writeContext(t, "ctx.json", "{not json")
	if _, err := LoadContext(badPath); err == nil {
		t.Error("expected error for malformed json")
	}

	txtPath := writeContext(t, "ctx.txt", "whatever")
	if _, err := LoadContext(txtPath); err == nil {
		t.Error("expected error for an unsupported extension")
	}
}
