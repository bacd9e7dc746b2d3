package configurator

import "github.com/Simplici0/configurador/internal/catalog"

// Breakdown contains the itemized decomposition of a configuration's price.
// All amounts are non-negative and satisfy
// Subtotal = BasePrice + MaterialPrice + AddOnsTotal and
// Total = Subtotal + Tax.
type Breakdown struct {
	BasePrice       float64            `json:"basePrice"`
	MaterialPrice   float64            `json:"materialPrice"`
	VariationPrices map[string]float64 `json:"variationPrices"`
	AddOnsTotal     float64            `json:"addOnsTotal"`
	Subtotal        float64            `json:"subtotal"`
	Tax             float64            `json:"tax"`
	Total           float64            `json:"total"`
}

// Price recomputes the full breakdown from scratch. Lookup misses (a
// selection pointing at an id the catalog no longer carries) contribute
// zero silently; completeness is the validation engine's job, not ours.
func Price(p *catalog.Product, s State) Breakdown {
	b := Breakdown{
		BasePrice:       p.BasePrice,
		VariationPrices: map[string]float64{},
	}

	if materialID := s.Selection(catalog.SelectionMaterial); materialID != "" {
		if material := p.Material(materialID); material != nil {
			b.MaterialPrice = material.Price
		}
	}

	if colorID := s.Selection(catalog.SelectionColor); colorID != "" {
		if color := p.Color(colorID); color != nil && color.Price > 0 {
			b.AddOnsTotal += color.Price
			b.VariationPrices[catalog.SelectionColor] = color.Price
		}
	}

	for _, feature := range p.Features() {
		selected := s.Selection(feature.Key)
		if selected == "" {
			continue
		}
		if opt := feature.Group.Option(selected); opt != nil && opt.Price > 0 {
			b.AddOnsTotal += opt.Price
			b.VariationPrices[feature.Key] = opt.Price
		}
	}

	b.Subtotal = b.BasePrice + b.MaterialPrice + b.AddOnsTotal
	b.Tax = b.Subtotal * p.TaxRate
	b.Total = b.Subtotal + b.Tax
	return b
}
