package section

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/whatsnew/internal/model"
)

// Registry is the fixed, ordered list of output sections. The assembler
// cannot bucket anything without one, so an empty registry is a fatal
// configuration error surfaced at construction time.
type Registry struct {
	sections []model.Section
	byKey    map[string]model.Section
}

// New builds a Registry from an ordered section list.
func New(sections []model.Section) (*Registry, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("section registry: empty")
	}
	byKey := make(map[string]model.Section, len(sections))
	for _, s := range sections {
		if s.Key == "" {
			return nil, fmt.Errorf("section registry: section %q has empty key", s.DisplayName)
		}
		if _, dup := byKey[s.Key]; dup {
			return nil, fmt.Errorf("section registry: duplicate key %q", s.Key)
		}
		byKey[s.Key] = s
	}
	return &Registry{sections: sections, byKey: byKey}, nil
}

// LoadFile reads a YAML section list and builds a Registry from it.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("section registry: read %s: %w", path, err)
	}
	var sections []model.Section
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("section registry: parse %s: %w", path, err)
	}
	return New(sections)
}

// Sections returns the registry entries in declared order.
func (r *Registry) Sections() []model.Section {
	return r.sections
}

// Lookup returns the section for the given key.
func (r *Registry) Lookup(key string) (model.Section, bool) {
	s, ok := r.byKey[key]
	return s, ok
}

// Len reports the number of registered sections.
func (r *Registry) Len() int {
	return len(r.sections)
}
