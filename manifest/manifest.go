// Package manifest handles bfx.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a bfx.toml project configuration.
type Manifest struct {
	Project Project `toml:"project"`
	Source  Source  `toml:"source"`
	Build   Build   `toml:"build"`

	// Dir is the directory containing the bfx.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Source configures where the program source lives.
type Source struct {
	Entry string `toml:"entry"`
}

// Build configures compiled output.
type Build struct {
	Output string `toml:"output"`
	Cache  bool   `toml:"cache"`
}

// Load parses a bfx.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "bfx.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Source.Entry == "" {
		m.Source.Entry = "main.bf"
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a bfx.toml file, then loads
// and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "bfx.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// EntryPath returns the absolute path of the entry source file.
func (m *Manifest) EntryPath() string {
	return filepath.Join(m.Dir, m.Source.Entry)
}

// OutputPath returns the absolute path of the compiled output, deriving
// it from the entry file when [build] output is unset.
func (m *Manifest) OutputPath() string {
	if m.Build.Output != "" {
		return filepath.Join(m.Dir, m.Build.Output)
	}
	base := m.Source.Entry
	ext := filepath.Ext(base)
	if ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return filepath.Join(m.Dir, base+".bfc")
}

// CachePath returns the path of the compile cache database.
func (m *Manifest) CachePath() string {
	return filepath.Join(m.Dir, ".bfx", "cache.db")
}
