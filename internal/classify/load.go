package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileTable is the on-disk YAML shape for a classification table override.
type fileTable struct {
	Source  []string `yaml:"source"`
	Binary  []string `yaml:"binary"`
	Archive []string `yaml:"archive"`
}

// LoadFile reads a classification table from a YAML file. The file lists
// extensions per category; listed categories replace the built-in set for
// that category, omitted ones keep the defaults.
func LoadFile(path string) (Table, error) {
	t := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read classification table: %w", err)
	}
	var ft fileTable
	if err := yaml.Unmarshal(b, &ft); err != nil {
		return t, fmt.Errorf("parse classification table %s: %w", path, err)
	}
	if len(ft.Source) > 0 {
		t.Source = toSet(ft.Source)
	}
	if len(ft.Binary) > 0 {
		t.Binary = toSet(ft.Binary)
	}
	if len(ft.Archive) > 0 {
		t.Archive = toSet(ft.Archive)
	}
	return t, nil
}
