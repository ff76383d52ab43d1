package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ubermelon/shop/internal/domain"
)

type catalogFile struct {
	Melons []domain.Item `yaml:"melons"`
}

// LoadFile reads the catalog seed file and builds a Store from it.
func LoadFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	if len(file.Melons) == 0 {
		return nil, fmt.Errorf("catalog: %s contains no melons", path)
	}

	for i, item := range file.Melons {
		if item.ID <= 0 {
			return nil, fmt.Errorf("catalog: %s: melon %d: id must be positive", path, i+1)
		}
		if item.CommonName == "" {
			return nil, fmt.Errorf("catalog: %s: melon id %d: common_name is required", path, item.ID)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("catalog: %s: melon id %d: price must not be negative", path, item.ID)
		}
	}

	store, err := NewStore(file.Melons)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return store, nil
}
