package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLProvider implements Provider by reading (and optionally writing) a
// YAML file on disk.
type YAMLProvider struct {
	path     string
	readOnly bool
}

// NewYAMLProvider creates a provider backed by the YAML file at path.
// When readOnly is true, Save always fails, matching a config file
// mounted read-only into a container.
func NewYAMLProvider(path string, readOnly bool) *YAMLProvider {
	return &YAMLProvider{path: path, readOnly: readOnly}
}

// Load reads and parses the YAML file.
func (p *YAMLProvider) Load() (*Data, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", p.path, err)
	}
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", p.path, err)
	}
	return &data, nil
}

// Save serializes data as YAML and writes it to the configured path.
func (p *YAMLProvider) Save(data *Data) error {
	if p.readOnly {
		return fmt.Errorf("config: %s is read-only", p.path)
	}
	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("config: marshaling config: %w", err)
	}
	if err := os.WriteFile(p.path, raw, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", p.path, err)
	}
	return nil
}

// IsReadOnly reports whether Save is disabled for this provider.
func (p *YAMLProvider) IsReadOnly() bool {
	return p.readOnly
}

// Close is a no-op for a file-backed provider.
func (p *YAMLProvider) Close() error {
	return nil
}
