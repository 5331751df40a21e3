// Package catalog supplies the initial item configuration of a machine.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"vending-sim/internal/domain"
)

// ErrEmptyCatalog is returned for a document with no items.
var ErrEmptyCatalog = errors.New("catalog has no items")

// File is the on-disk catalog document:
//
//	items:
//	  - id: 1
//	    name: Tea
//	    price: 3000
//	    stock: 2
type File struct {
	Items []domain.Item `yaml:"items"`
}

// Default returns the built-in catalog used when no file is configured.
func Default() []domain.Item {
	return []domain.Item{
		{ID: 1, Name: "Tea", Price: 3000, Stock: 2},
		{ID: 2, Name: "Coffee", Price: 4000, Stock: 1},
		{ID: 3, Name: "Water", Price: 2000, Stock: 0},
	}
}

// Parse decodes and validates a YAML catalog. Unknown fields are rejected.
func Parse(r io.Reader) ([]domain.Item, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, ErrEmptyCatalog
	}
	if err := domain.ValidateItems(f.Items); err != nil {
		return nil, err
	}
	return f.Items, nil
}

// LoadFile reads a catalog from path. An empty path yields Default.
func LoadFile(path string) ([]domain.Item, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	items, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Marshal encodes items as a catalog document.
func Marshal(items []domain.Item) ([]byte, error) {
	return yaml.Marshal(File{Items: items})
}
