// Package config handles configuration loading and input path resolution.
package config

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the repository root.
const FileName = "kml2geojson.yaml"

// ErrInputNotFound is returned when no input was given and no default candidate exists.
var ErrInputNotFound = eris.New("input KML not found")

// Config represents the configuration file structure.
// Relative paths are resolved against Root.
type Config struct {
	Root    string   `yaml:"root,omitempty"`
	Output  string   `yaml:"output,omitempty"`
	Unnamed string   `yaml:"unnamed,omitempty"`
	Inputs  []string `yaml:"inputs,omitempty"`
}

// Default returns the built-in configuration for a repository root and user home.
func Default(root, home string) *Config {
	inputs := []string{filepath.Join(root, "MUZU.kml")}
	if home != "" {
		inputs = append(inputs, filepath.Join(home, "Desktop", "MUZU.kml"))
	}

	return &Config{
		Root:   root,
		Output: filepath.Join(root, "geojson", "MUZU", "muzu.geojson"),
		Inputs: inputs,
	}
}

// Load builds the configuration for root, overlaying the YAML file at path.
// An empty path means FileName inside root, which is optional; an explicit
// path must exist.
func Load(path, root string) (*Config, error) {
	home, _ := os.UserHomeDir()
	cfg := Default(root, home)

	optional := path == ""
	if optional {
		path = filepath.Join(root, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, eris.Wrapf(err, "read config %s", path)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrapf(err, "parse config %s", path)
	}

	if file.Root != "" {
		cfg = Default(absFrom(filepath.Dir(path), file.Root), home)
	}
	if file.Output != "" {
		cfg.Output = absFrom(cfg.Root, file.Output)
	}
	if len(file.Inputs) > 0 {
		cfg.Inputs = make([]string, 0, len(file.Inputs))
		for _, in := range file.Inputs {
			cfg.Inputs = append(cfg.Inputs, absFrom(cfg.Root, in))
		}
	}
	cfg.Unnamed = file.Unnamed

	return cfg, nil
}

// RepoRoot returns the parent of the directory holding the running executable.
func RepoRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", eris.Wrap(err, "locate executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(filepath.Dir(exe)), nil
}

// ResolveInput returns the KML path to read. An explicit arg is used as is,
// made absolute but not checked for existence. Otherwise the first candidate
// that is a regular file wins.
func (c *Config) ResolveInput(arg string) (string, error) {
	if arg != "" {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return "", eris.Wrapf(err, "resolve %s", arg)
		}
		return abs, nil
	}

	for _, candidate := range c.Inputs {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}

	return "", eris.Wrapf(ErrInputNotFound, "checked %d default locations", len(c.Inputs))
}

func absFrom(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}

	return filepath.Join(base, p)
}
