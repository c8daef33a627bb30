package grid

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLMap is the YAML structure for a map file. Rows use the same cell
// characters as the text format.
type YAMLMap struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// ParseYAML parses a YAML map document.
func ParseYAML(data []byte) (*Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, formatError(fmt.Sprintf("yaml: %v", err))
	}

	name := strings.TrimSpace(ym.Name)
	if name == "" {
		return nil, formatError("empty name")
	}
	if len(ym.Rows) > Height {
		ym.Rows = ym.Rows[:Height]
	}
	return fromRows(name, ym.Rows)
}

// MarshalYAML encodes the map in the YAML map format.
func (m *Map) MarshalYAML() (any, error) {
	lines := strings.Split(strings.TrimSuffix(m.Text(), "\n"), "\n")
	return YAMLMap{Name: m.Name, Rows: lines[1:]}, nil
}
