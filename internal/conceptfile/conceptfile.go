// Package conceptfile reads concept fixtures from YAML or JSON files shaped
// as a top-level "concepts" list.
package conceptfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agenthands/knetlabel/internal/core/model"
)

var ErrNoConcepts = errors.New("no concepts in file")

type File struct {
	Concepts []model.Concept `yaml:"concepts" json:"concepts"`
}

func Load(path string) ([]model.Concept, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read concept file '%s': %w", path, err)
	}
	concepts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return concepts, nil
}

// Parse decodes a concept document. JSON is accepted as a subset of YAML.
func Parse(data []byte) ([]model.Concept, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse concepts: %w", err)
	}
	if len(f.Concepts) == 0 {
		return nil, ErrNoConcepts
	}
	for i, c := range f.Concepts {
		if c.ID == "" {
			return nil, fmt.Errorf("concept %d: missing id", i)
		}
	}
	return f.Concepts, nil
}
