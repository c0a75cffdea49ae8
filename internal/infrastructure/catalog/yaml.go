package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"role-match/internal/domain"
	"role-match/internal/domain/learningpath"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Default returns the embedded catalog.
func Default() (learningpath.Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a YAML catalog from path, or the embedded one when path is empty.
func Load(path string) (learningpath.Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: catalog %s", domain.ErrMissingInput, path)
		}
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

func Parse(b []byte) (learningpath.Catalog, error) {
	raw := map[string][]string{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSchema, err)
	}

	out := make(learningpath.Catalog, len(raw))
	for name, urls := range raw {
		key := strings.TrimSpace(name)
		if key == "" {
			return nil, fmt.Errorf("%w: empty skill name", domain.ErrSchema)
		}
		if _, ok := out[key]; ok {
			return nil, fmt.Errorf("%w: duplicate skill %q", domain.ErrSchema, key)
		}
		list := make([]string, 0, len(urls))
		for _, u := range urls {
			u = strings.TrimSpace(u)
			if u == "" {
				return nil, fmt.Errorf("%w: empty resource for %q", domain.ErrSchema, key)
			}
			list = append(list, u)
		}
		out[key] = list
	}
	return out, nil
}
