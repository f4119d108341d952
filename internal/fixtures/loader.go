package fixtures

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader reads a fixtures file from disk.
type Loader struct {
	filePath string
}

func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads, parses and checks the fixtures file.
func (l *Loader) Load() ([]Case, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file: %w", err)
	}
	return Parse(data)
}

// Parse decodes fixtures YAML. Every case needs a unique name and one of
// markup or text.
func Parse(data []byte) ([]Case, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures yaml: %w", err)
	}

	seen := make(map[string]bool, len(f.Cases))
	for i, c := range f.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("fixture #%d: name is required", i+1)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("fixture %q: duplicate name", c.Name)
		}
		seen[c.Name] = true
		if (c.Markup == "") == (c.Text == "") {
			return nil, fmt.Errorf("fixture %q: exactly one of markup or text is required", c.Name)
		}
	}
	return f.Cases, nil
}
