package sizing

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the static, ordered set of size options. Exactly one option is
// the default selection.
type Catalog struct {
	options   []SizeOption
	defaultID string
}

// DefaultCatalog returns the built-in three-size catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		options: []SizeOption{
			{ID: "16x20", WidthInches: 16, HeightInches: 20, Label: `16" × 20"`, Orientation: Portrait},
			{ID: "19.5x27.5", WidthInches: 19.5, HeightInches: 27.5, Label: `19.5" × 27.5"`, Orientation: Portrait},
			{ID: "24x36", WidthInches: 24, HeightInches: 36, Label: `24" × 36"`, Orientation: Landscape},
		},
		defaultID: "16x20",
	}
}

// NewCatalog validates options and returns a catalog. An empty defaultID
// selects the first option.
func NewCatalog(options []SizeOption, defaultID string) (*Catalog, error) {
	if len(options) == 0 {
		return nil, errors.New("sizing: catalog has no sizes")
	}
	seen := make(map[string]bool, len(options))
	for i, o := range options {
		if strings.TrimSpace(o.ID) == "" {
			return nil, fmt.Errorf("sizing: size %d has no id", i)
		}
		if seen[o.ID] {
			return nil, fmt.Errorf("sizing: duplicate size id %q", o.ID)
		}
		seen[o.ID] = true
		if !validInches(o.WidthInches) || !validInches(o.HeightInches) {
			return nil, fmt.Errorf("sizing: size %q has invalid dimensions %vx%v", o.ID, o.WidthInches, o.HeightInches)
		}
	}
	if defaultID == "" {
		defaultID = options[0].ID
	}
	if !seen[defaultID] {
		return nil, fmt.Errorf("sizing: default size %q not in catalog", defaultID)
	}
	cp := make([]SizeOption, len(options))
	copy(cp, options)
	return &Catalog{options: cp, defaultID: defaultID}, nil
}

// Options returns a copy of the catalog entries in display order.
func (c *Catalog) Options() []SizeOption {
	if c == nil {
		return nil
	}
	out := make([]SizeOption, len(c.options))
	copy(out, c.options)
	return out
}

// Find returns the option with id.
func (c *Catalog) Find(id string) (SizeOption, bool) {
	if c == nil {
		return SizeOption{}, false
	}
	for _, o := range c.options {
		if o.ID == id {
			return o, true
		}
	}
	return SizeOption{}, false
}

// Default returns the initially selected option.
func (c *Catalog) Default() SizeOption {
	if c == nil {
		return SizeOption{}
	}
	o, _ := c.Find(c.defaultID)
	return o
}

// WithDefault returns a copy of the catalog selecting id by default. Unknown ids
// leave the default unchanged.
func (c *Catalog) WithDefault(id string) *Catalog {
	if _, ok := c.Find(id); !ok {
		return c
	}
	return &Catalog{options: c.options, defaultID: id}
}

type catalogFile struct {
	Default string `yaml:"default"`
	Sizes   []struct {
		ID          string  `yaml:"id"`
		Width       float64 `yaml:"width"`
		Height      float64 `yaml:"height"`
		Label       string  `yaml:"label"`
		Orientation string  `yaml:"orientation"`
	} `yaml:"sizes"`
}

// LoadCatalog parses a YAML catalog:
//
//	default: 16x20
//	sizes:
//	  - {id: 16x20, width: 16, height: 20, label: '16" × 20"', orientation: portrait}
func LoadCatalog(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sizing: read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog is LoadCatalog over an in-memory document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("sizing: parse catalog: %w", err)
	}
	options := make([]SizeOption, 0, len(f.Sizes))
	for _, s := range f.Sizes {
		o, err := ParseOrientation(s.Orientation)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", s.ID, err)
		}
		label := s.Label
		if label == "" {
			label = fmt.Sprintf(`%g" × %g"`, s.Width, s.Height)
		}
		options = append(options, SizeOption{ID: s.ID, WidthInches: s.Width, HeightInches: s.Height, Label: label, Orientation: o})
	}
	return NewCatalog(options, f.Default)
}
