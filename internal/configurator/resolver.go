package configurator

import (
	"strings"

	"github.com/Simplici0/configurador/internal/catalog"
)

// noBrandingValue is the selection value that explicitly opts out of a
// branding-like feature and therefore deactivates its upload requirements.
const noBrandingValue = "none"

// Resolution is the derived view of which requirement groups are currently
// active for a given state. It is recomputed on every read; nothing here is
// ever stored back into the state.
type Resolution struct {
	// ActiveMeasurements are the measurement definitions of the selected
	// style. Empty when no style is selected.
	ActiveMeasurements []catalog.MeasurementDef

	// StyleBlocked is set when the product declares styles but none is
	// selected yet: the measurements section is blocked, not invalid.
	StyleBlocked bool

	// UploadsActive is set when a branding-like feature selection is present
	// and neither empty nor "none". Only then are upload requirements
	// validated, and only then may attached files survive.
	UploadsActive bool

	// BrandingKey is the feature key whose selection activated uploads.
	BrandingKey string

	StyleRequired    bool
	MaterialRequired bool
	ColorRequired    bool
}

// Resolve computes the active requirement set for the state. Pure function
// of (product, state); see the package comment for the recomputation rule.
func Resolve(p *catalog.Product, s State) Resolution {
	res := Resolution{
		StyleRequired:    p.Variations.Styles != nil && p.Variations.Styles.Required,
		MaterialRequired: p.Variations.Materials != nil && p.Variations.Materials.Required,
		ColorRequired:    p.Variations.Colors != nil && p.Variations.Colors.Required,
	}

	if p.Variations.Styles != nil && len(p.Variations.Styles.Options) > 0 {
		styleID := s.Selection(catalog.SelectionStyle)
		if style := p.Style(styleID); style != nil {
			res.ActiveMeasurements = style.Measurements
		} else {
			res.StyleBlocked = true
		}
	}

	for _, feature := range p.Features() {
		if !isBrandingKey(feature.Key) {
			continue
		}
		value := s.Selection(feature.Key)
		if value != "" && value != noBrandingValue {
			res.UploadsActive = true
			res.BrandingKey = feature.Key
			break
		}
	}

	return res
}

// isBrandingKey reports whether a feature key gates file uploads. The
// original catalog used a single "branding" feature; matching on the key
// name keeps catalogs free to call it logoPrint and the like.
func isBrandingKey(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "branding") || strings.Contains(lower, "logo")
}
