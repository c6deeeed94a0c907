package catalog

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/nounsos/desktop/backend/internal/shared/types"
)

// appFile is the on-disk shape of an override file
type appFile struct {
	Apps []types.AppConfig `yaml:"apps" toml:"apps"`
}

// LoadResult summarizes an override load
type LoadResult struct {
	Files  []string         // Files that loaded cleanly
	Apps   int              // Entries registered
	Failed map[string]error // File -> reason
}

// Load registers app entries from every file in fsys matching pattern.
// YAML (.yaml, .yml) and TOML (.toml) are supported. A bad file is recorded
// in the result and skipped; entries replace built-ins with the same id.
func (c *Catalog) Load(fsys fs.FS, pattern string) (LoadResult, error) {
	result := LoadResult{Failed: make(map[string]error)}

	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return result, fmt.Errorf("failed to glob catalog files %q: %w", pattern, err)
	}

	for _, name := range matches {
		apps, err := readFile(fsys, name)
		if err != nil {
			result.Failed[name] = err
			continue
		}

		registered := 0
		for _, app := range apps {
			if err := c.Register(app); err != nil {
				result.Failed[name] = err
				continue
			}
			registered++
		}
		if registered > 0 {
			result.Files = append(result.Files, name)
			result.Apps += registered
		}
	}

	return result, nil
}

func readFile(fsys fs.FS, name string) ([]types.AppConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var parsed appFile
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse YAML %s: %w", name, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse TOML %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog file %s", name)
	}
	return parsed.Apps, nil
}
