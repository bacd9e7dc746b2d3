// Package catalog models product definitions as delivered by the catalog/CMS
// boundary and collapses their legacy variants into one canonical shape, so
// the configurator core only ever sees a single representation.
package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Selection keys for the built-in variation groups. Feature groups use their
// own catalog-declared keys.
const (
	SelectionStyle    = "style"
	SelectionMaterial = "material"
	SelectionColor    = "color"
)

// Measurement roles recognized by the area calculator.
const (
	RoleWidth    = "width"
	RoleHeight   = "height"
	RoleDiameter = "diameter"
	RoleRadius   = "radius"
	RoleSide     = "side"
	RoleAngle    = "angle"
	RoleCurve    = "curve"
	RoleOffset   = "offset"
	RoleOther    = "other"
)

const defaultTaxRate = 0.10

// VariationOption is a single selectable option within a group. Measurements
// are only populated on style options.
type VariationOption struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Price               float64          `json:"price"`
	Description         string           `json:"description,omitempty"`
	Measurements        []MeasurementDef `json:"measurements,omitempty"`
	CompatibleMaterials []string         `json:"compatibleMaterials,omitempty"`
}

// VariationGroup is a named set of mutually exclusive options.
type VariationGroup struct {
	Required bool              `json:"required"`
	Options  []VariationOption `json:"options"`
}

// Option returns the option with the given id, or nil.
func (g *VariationGroup) Option(id string) *VariationOption {
	if g == nil || id == "" {
		return nil
	}
	for i := range g.Options {
		if g.Options[i].ID == id {
			return &g.Options[i]
		}
	}
	return nil
}

// MeasurementDef describes one measurement input declared by a style.
type MeasurementDef struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Required     bool     `json:"required"`
	Unit         string   `json:"unit"`
	Type         string   `json:"type"`
	Role         string   `json:"role,omitempty"`
	Group        string   `json:"group,omitempty"`
	MinValue     *float64 `json:"minValue,omitempty"`
	MaxValue     *float64 `json:"maxValue,omitempty"`
	DefaultValue any      `json:"defaultValue,omitempty"`
	DependsOn    string   `json:"dependsOn,omitempty"`
}

// UploadRequirement describes a file the buyer must attach when the
// requirement is active.
type UploadRequirement struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Required      bool     `json:"required"`
	AcceptedTypes []string `json:"acceptedTypes,omitempty"`
	MaxSize       int64    `json:"maxSize,omitempty"`
}

// Variations groups the selectable dimensions of a product.
type Variations struct {
	Styles    *VariationGroup            `json:"styles,omitempty"`
	Materials *VariationGroup            `json:"materials,omitempty"`
	Colors    *VariationGroup            `json:"colors,omitempty"`
	Features  map[string]*VariationGroup `json:"features,omitempty"`
}

// FeatureGroup pairs a feature selection key with its group. The canonical
// product carries features as an ordered slice because a JSON object does not
// preserve declaration order; sorting by key keeps the whole pipeline
// deterministic.
type FeatureGroup struct {
	Key   string
	Group *VariationGroup
}

// DefaultConfiguration declares the optional seed values for a new
// configuration session.
type DefaultConfiguration struct {
	ShowDefaultPrice bool    `json:"showDefaultPrice"`
	Style            string  `json:"style,omitempty"`
	Material         string  `json:"material,omitempty"`
	Color            string  `json:"color,omitempty"`
	Width            float64 `json:"width,omitempty"`
	Height           float64 `json:"height,omitempty"`
}

// Product is an immutable catalog product definition. The engine never
// mutates or refetches it; a configuration session holds exactly one.
type Product struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	BasePrice   float64               `json:"basePrice"`
	Currency    string                `json:"currency"`
	TaxRate     float64               `json:"taxRate,omitempty"`
	Variations  Variations            `json:"variations"`
	FileUploads []UploadRequirement   `json:"fileUploads,omitempty"`
	Defaults    *DefaultConfiguration `json:"defaultConfiguration,omitempty"`

	// Legacy catalog documents ship flat option lists instead of variation
	// groups. They are collapsed into canonical groups by Normalize.
	LegacyMaterials []VariationOption `json:"materials,omitempty"`
	LegacyColors    []VariationOption `json:"colors,omitempty"`

	features []FeatureGroup
}

// Decode parses a catalog JSON document into its canonical form. Malformed
// optional sections degrade to "no options"; only a document that is not
// valid JSON at all is rejected.
func Decode(data []byte) (*Product, error) {
	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode product definition: %w", err)
	}
	p.Normalize()
	return &p, nil
}

// Normalize collapses the dual/legacy schema into one canonical shape:
// flat legacy materials/colors become implicit required groups when no
// explicit group exists, features become an ordered slice, and the tax rate
// falls back to the engine default when the document omits it.
func (p *Product) Normalize() {
	if p.Variations.Materials == nil && len(p.LegacyMaterials) > 0 {
		p.Variations.Materials = &VariationGroup{Required: true, Options: p.LegacyMaterials}
	}
	if p.Variations.Colors == nil && len(p.LegacyColors) > 0 {
		p.Variations.Colors = &VariationGroup{Required: true, Options: p.LegacyColors}
	}
	if p.TaxRate <= 0 {
		p.TaxRate = defaultTaxRate
	}

	p.features = p.features[:0]
	keys := make([]string, 0, len(p.Variations.Features))
	for key, group := range p.Variations.Features {
		if group == nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		p.features = append(p.features, FeatureGroup{Key: key, Group: p.Variations.Features[key]})
	}
}

// Features returns the feature groups in canonical (sorted-key) order.
func (p *Product) Features() []FeatureGroup {
	return p.features
}

// Style returns the style option selected by id, or nil.
func (p *Product) Style(id string) *VariationOption {
	return p.Variations.Styles.Option(id)
}

// Material looks up a material by id, checking the canonical group first and
// the legacy flat list second.
func (p *Product) Material(id string) *VariationOption {
	if opt := p.Variations.Materials.Option(id); opt != nil {
		return opt
	}
	for i := range p.LegacyMaterials {
		if p.LegacyMaterials[i].ID == id {
			return &p.LegacyMaterials[i]
		}
	}
	return nil
}

// Color looks up a color by id, checking the canonical group first and the
// legacy flat list second.
func (p *Product) Color(id string) *VariationOption {
	if opt := p.Variations.Colors.Option(id); opt != nil {
		return opt
	}
	for i := range p.LegacyColors {
		if p.LegacyColors[i].ID == id {
			return &p.LegacyColors[i]
		}
	}
	return nil
}
