package grammar

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a grammar definition from YAML bytes. The result is not
// yet validated; call Compile to resolve references and patterns.
func FromYAML(data []byte) (*Grammar, error) {
	g := &Grammar{}
	if err := yaml.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if g.Contexts == nil {
		g.Contexts = make(map[string]*Context)
	}

	return g, nil
}

// ToYAML serializes a grammar definition to YAML.
func (g *Grammar) ToYAML() ([]byte, error) {
	if g == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(g); err != nil {
		return nil, fmt.Errorf("encode grammar: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// LoadFile reads, parses, and compiles a grammar definition file.
func LoadFile(path string) (*Compiled, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar file: %w", err)
	}

	g, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	compiled, err := Compile(g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return compiled, nil
}
