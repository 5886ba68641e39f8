// Package config loads a project's schemac.toml: its source roots,
// import search paths, and numbering overrides (SPEC_FULL.md S4.11).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Project is the decoded shape of a schemac.toml file.
type Project struct {
	Path string // absolute path to the schemac.toml this was loaded from
	Root string // Path's containing directory

	Schema SchemaConfig `toml:"schema"`
}

// SchemaConfig holds the [schema] table.
type SchemaConfig struct {
	// Sources lists the source roots to search for .schema files,
	// relative to Root.
	Sources []string `toml:"sources"`

	// ImportPaths lists additional roots searched when resolving an
	// import name, relative to Root.
	ImportPaths []string `toml:"import_paths"`

	// MaxOrdinal overrides compiler.MaxFieldOrdinal when nonzero.
	MaxOrdinal uint32 `toml:"max_ordinal"`
}

// Load reads and decodes the schemac.toml at path.
func Load(path string) (*Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	var doc struct {
		Schema SchemaConfig `toml:"schema"`
	}
	if _, err := toml.DecodeFile(absPath, &doc); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", absPath, err)
	}

	return &Project{
		Path:   absPath,
		Root:   filepath.Dir(absPath),
		Schema: doc.Schema,
	}, nil
}

// Find walks upward from startDir looking for a schemac.toml, the way
// a version control root is discovered, and loads it if found.
func Find(startDir string) (*Project, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, false, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "schemac.toml")
		if _, err := os.Stat(candidate); err == nil {
			project, err := Load(candidate)
			return project, err == nil, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, false, nil
		}
		dir = parent
	}
}
