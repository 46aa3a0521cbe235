package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// Load loads the content catalog.
// Search order: customPath -> ~/.overtime/configs/catalog.yaml ->
// ./configs/catalog.yaml -> embedded default
func Load(customPath string) (Catalog, error) {
	var c Catalog

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return c, fmt.Errorf("failed to read catalog %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("failed to parse catalog %s: %w", customPath, err)
		}
		return c, nil
	}

	// Try user config directory
	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".overtime", "configs", "catalog.yaml")
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, &c); err == nil {
				return c, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/catalog.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &c); err == nil {
			return c, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultCatalogYAML, &c); err != nil {
		return c, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	return c, nil
}

// MustDefault returns the embedded default catalog and panics on a parse
// failure, which can only happen if the embedded file is broken at build
// time.
func MustDefault() Catalog {
	var c Catalog
	if err := yaml.Unmarshal(defaultCatalogYAML, &c); err != nil {
		panic(fmt.Sprintf("catalog: embedded default invalid: %v", err))
	}
	return c
}
