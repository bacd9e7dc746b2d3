package configurator

import (
	"math"
	"testing"

	"github.com/Simplici0/configurador/internal/catalog"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

// testProduct covers the full schema: styles with their own measurement
// sets, a required material group, optional colors, a required feature, a
// branding feature gating the artwork upload, and opt-in defaults.
func testProduct() *catalog.Product {
	p := &catalog.Product{
		ID:        "aviso",
		Name:      "Aviso",
		BasePrice: 120,
		Currency:  "COP",
		Variations: catalog.Variations{
			Styles: &catalog.VariationGroup{
				Required: true,
				Options: []catalog.VariationOption{
					{
						ID: "rectangular", Name: "Rectangular",
						Measurements: []catalog.MeasurementDef{
							{ID: "width", Name: "Ancho", Required: true, Unit: "inches", Type: "number", Role: catalog.RoleWidth},
							{ID: "height", Name: "Alto", Required: true, Unit: "inches", Type: "number", Role: catalog.RoleHeight},
						},
					},
					{
						ID: "circular", Name: "Circular", Price: 25,
						Measurements: []catalog.MeasurementDef{
							{ID: "diameter", Name: "Diámetro", Required: true, Unit: "inches", Type: "number", Role: catalog.RoleDiameter},
						},
					},
				},
			},
			Materials: &catalog.VariationGroup{
				Required: true,
				Options: []catalog.VariationOption{
					{ID: "vinilo", Name: "Vinilo", Price: 40},
					{ID: "malla", Name: "Malla", Price: 55},
				},
			},
			Colors: &catalog.VariationGroup{
				Options: []catalog.VariationOption{
					{ID: "blanco", Name: "Blanco"},
					{ID: "negro", Name: "Negro", Price: 10},
				},
			},
			Features: map[string]*catalog.VariationGroup{
				"acabado": {
					Required: true,
					Options: []catalog.VariationOption{
						{ID: "mate", Name: "Mate"},
						{ID: "brillante", Name: "Brillante", Price: 15},
					},
				},
				"branding": {
					Options: []catalog.VariationOption{
						{ID: "none", Name: "Sin marca"},
						{ID: "una-cara", Name: "Logo una cara", Price: 30},
					},
				},
			},
		},
		FileUploads: []catalog.UploadRequirement{
			{ID: "artwork", Name: "Arte del logo", Required: true},
		},
		Defaults: &catalog.DefaultConfiguration{
			ShowDefaultPrice: true,
			Style:            "rectangular",
			Material:         "vinilo",
			Width:            48,
			Height:           24,
		},
	}
	p.Normalize()
	return p
}
