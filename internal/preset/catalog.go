package preset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// ErrUnknownPreset is returned by Lookup for keys not in the catalog.
var ErrUnknownPreset = errors.New("unknown preset")

// Generator names.
const (
	GenRandom      = "random"
	GenSingle      = "single"
	GenAlternating = "alternating"
	GenDense       = "dense"
)

// Preset is one catalog entry.
type Preset struct {
	Key         string `yaml:"key" json:"key"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Generator   string `yaml:"generator,omitempty" json:"generator,omitempty"`
	Data        []int  `yaml:"data,omitempty" json:"data,omitempty"`
}

// Catalog holds presets in declaration order.
type Catalog struct {
	presets []Preset
	byKey   map[string]int
}

type catalogFile struct {
	Presets []Preset `yaml:"presets"`
}

var defaultCatalog = MustParse(presetsYAML)

// Default returns the embedded catalog.
func Default() *Catalog {
	return defaultCatalog
}

// List returns the embedded presets in catalog order.
func List() []Preset {
	return defaultCatalog.List()
}

// Lookup finds a preset in the embedded catalog.
func Lookup(key string) (Preset, error) {
	return defaultCatalog.Lookup(key)
}

// Parse decodes and validates a catalog. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse preset catalog: %w", err)
	}

	c := &Catalog{byKey: make(map[string]int, len(file.Presets))}
	for i, p := range file.Presets {
		if err := validatePreset(p); err != nil {
			return nil, fmt.Errorf("presets[%d]: %w", i, err)
		}
		if _, dup := c.byKey[p.Key]; dup {
			return nil, fmt.Errorf("presets[%d]: duplicate key %q", i, p.Key)
		}
		c.byKey[p.Key] = len(c.presets)
		c.presets = append(c.presets, p)
	}
	return c, nil
}

// MustParse is like Parse but panics on error.
func MustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns a copy of the presets in declaration order.
func (c *Catalog) List() []Preset {
	out := make([]Preset, len(c.presets))
	copy(out, c.presets)
	return out
}

// Lookup returns the preset with the given key.
func (c *Catalog) Lookup(key string) (Preset, error) {
	i, ok := c.byKey[key]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, key)
	}
	return c.presets[i], nil
}

// Keys returns every preset key in declaration order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.presets))
	for i, p := range c.presets {
		keys[i] = p.Key
	}
	return keys
}

func validatePreset(p Preset) error {
	if p.Key == "" {
		return errors.New("key is required")
	}
	if p.Name == "" {
		return fmt.Errorf("%s: name is required", p.Key)
	}

	hasGen, hasData := p.Generator != "", len(p.Data) > 0
	switch {
	case hasGen && hasData:
		return fmt.Errorf("%s: generator and data are mutually exclusive", p.Key)
	case !hasGen && !hasData:
		return fmt.Errorf("%s: one of generator or data is required", p.Key)
	}

	if hasGen {
		switch p.Generator {
		case GenRandom, GenSingle, GenAlternating, GenDense:
		default:
			return fmt.Errorf("%s: unknown generator %q", p.Key, p.Generator)
		}
	}

	for i, v := range p.Data {
		if v != 0 && v != 1 {
			return fmt.Errorf("%s: data[%d] = %d, want 0 or 1", p.Key, i, v)
		}
	}
	return nil
}
