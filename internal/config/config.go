package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Metadata mirrors the default attribution record in the config file.
type Metadata struct {
	License          *string  `yaml:"license"`
	ConcludedLicense *string  `yaml:"concluded_license"`
	LicenseComment   *string  `yaml:"license_comment"`
	Copyright        *string  `yaml:"copyright"`
	Notice           *string  `yaml:"notice"`
	Comment          *string  `yaml:"comment"`
	Contributors     []string `yaml:"contributors"`
	Projects         []struct {
		Name     string `yaml:"name"`
		Homepage string `yaml:"homepage"`
		URI      string `yaml:"uri"`
	} `yaml:"projects"`
}

// FileConfig is the on-disk YAML configuration shape for attesta.
type FileConfig struct {
	Exclude         *string   `yaml:"exclude"`
	Algorithm       *string   `yaml:"algorithm"`
	Classification  *string   `yaml:"classification"` // path to a table override file
	KeepGoing       *bool     `yaml:"keep_going"`
	NoColor         *bool     `yaml:"no_color"`
	ExcludeFromCode []string  `yaml:"exclude_from_code"`
	Metadata        *Metadata `yaml:"metadata"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .attesta.yml/.yaml and attesta.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".attesta.yml", ".attesta.yaml", "attesta.yml", "attesta.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "attesta", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
