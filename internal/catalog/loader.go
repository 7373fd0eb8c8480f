package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jwalitptl/care-api/internal/model"
)

// document is the on-disk catalog layout.
type document struct {
	Doctors []model.Doctor `yaml:"doctors"`
}

// LoadFile reads a YAML catalog. Only an empty path falls back to the sample
// doctors; a configured file must exist.
func LoadFile(path string) (*Store, error) {
	if path == "" {
		return NewStore(SampleDoctors())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Store, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for i, d := range doc.Doctors {
		if d.ID == 0 {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if d.Rating < 0 || d.Rating > 5 {
			return nil, fmt.Errorf("catalog entry %d: rating %.1f out of range", i, d.Rating)
		}
	}
	return NewStore(doc.Doctors)
}
