package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stevenAthompson/resume/pkg/mustache"
)

// LoadContext reads a pre-extracted context document from disk. The format
// is chosen by extension: .json, or .yaml/.yml. The decoded document is
// converted into a context value for rendering.
func LoadContext(path string) (mustache.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return mustache.Value{}, fmt.Errorf("read context file: %w", err)
	}

	var decoded any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &decoded); err != nil {
			return mustache.Value{}, fmt.Errorf("parse json context: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			return mustache.Value{}, fmt.Errorf("parse yaml context: %w", err)
		}
	default:
		return mustache.Value{}, fmt.Errorf("unsupported context format %q", ext)
	}

	ctx, err := mustache.FromAny(decoded)
	if err != nil {
		return mustache.Value{}, fmt.Errorf("convert context: %w", err)
	}
	return ctx, nil
}
