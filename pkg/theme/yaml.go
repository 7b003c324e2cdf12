package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// definition is the on-disk theme format.
type definition struct {
	Name     string    `yaml:"name"`
	Settings []Setting `yaml:"settings"`
}

// FromYAML parses and compiles a theme from YAML bytes.
func FromYAML(data []byte) (*Theme, error) {
	var def definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("theme has no name")
	}
	return New(def.Name, def.Settings), nil
}

// LoadFile reads and compiles a theme definition file.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}

	t, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
