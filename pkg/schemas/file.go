package schemas

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/NSC-Rick/stjregistry/pkg/types"
)

// schemaFile is the on-disk shape of a schema file.
type schemaFile struct {
	Entities []types.Schema `yaml:"entities"`
}

// LoadFile reads entity schemas from a YAML file and validates each
// one. The result is keyed by entity name, suitable as the extras
// argument of Lookup.
func LoadFile(path string) (map[string]types.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}

	var f schemaFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshalling schema file: %w", err)
	}

	out := make(map[string]types.Schema, len(f.Entities))
	for _, s := range f.Entities {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.Entity, err)
		}
		out[s.Entity] = s
	}
	return out, nil
}
