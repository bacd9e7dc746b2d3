package configurator

import (
	"fmt"

	"github.com/Simplici0/configurador/internal/catalog"
)

// Validate walks the active requirement set and returns the error messages
// in stable order: style → material → color → features → measurements →
// uploads. An empty slice means the configuration is complete.
//
// Out-of-range measurement values are not flagged here: min/max bounds are
// advisory in the presentation layer, never hard validation errors.
func Validate(p *catalog.Product, s State, res Resolution) []string {
	errs := []string{}

	if res.StyleRequired && s.Selection(catalog.SelectionStyle) == "" {
		errs = append(errs, "Selecciona un estilo")
	}
	if res.MaterialRequired && s.Selection(catalog.SelectionMaterial) == "" {
		errs = append(errs, "Selecciona un material")
	}
	if res.ColorRequired && s.Selection(catalog.SelectionColor) == "" {
		errs = append(errs, "Selecciona un color")
	}

	for _, feature := range p.Features() {
		if feature.Group.Required && s.Selection(feature.Key) == "" {
			errs = append(errs, fmt.Sprintf("Selecciona una opción de %s", feature.Key))
		}
	}

	// Only the selected style's measurements are validated. No style selected
	// means zero active measurements, not measurement errors.
	for _, def := range res.ActiveMeasurements {
		if def.Required && !s.hasMeasurement(def.ID) {
			errs = append(errs, fmt.Sprintf("La medida %s es requerida", def.Name))
		}
	}

	if res.UploadsActive {
		for _, req := range p.FileUploads {
			if req.Required && !s.hasFile(req.ID) {
				errs = append(errs, fmt.Sprintf("Adjunta el archivo %s", req.Name))
			}
		}
	}

	return errs
}
