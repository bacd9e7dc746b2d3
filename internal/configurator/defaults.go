package configurator

import "github.com/Simplici0/configurador/internal/catalog"

// SeedState produces the initial state for a new configuration session.
// Products that opt in via defaultConfiguration.showDefaultPrice get their
// declared defaults (or first-option fallbacks); everything else starts
// empty so the buyer makes every choice explicitly.
func SeedState(p *catalog.Product) State {
	s := NewState(p.ID)
	if p.Defaults == nil || !p.Defaults.ShowDefaultPrice {
		return s
	}

	styleID := defaultOption(p.Variations.Styles, p.Defaults.Style)
	if styleID != "" {
		s.Selections[catalog.SelectionStyle] = styleID
	}

	materialID := defaultOption(p.Variations.Materials, p.Defaults.Material)
	if materialID != "" {
		s.Selections[catalog.SelectionMaterial] = materialID
	}

	if colorID := defaultColor(p, materialID); colorID != "" {
		s.Selections[catalog.SelectionColor] = colorID
	}

	if style := p.Style(styleID); style != nil {
		for _, def := range style.Measurements {
			if def.DefaultValue != nil {
				s.Measurements[def.ID] = parseMeasurement(def.DefaultValue)
				continue
			}
			switch def.Role {
			case catalog.RoleWidth:
				if p.Defaults.Width > 0 {
					s.Measurements[def.ID] = p.Defaults.Width
				}
			case catalog.RoleHeight:
				if p.Defaults.Height > 0 {
					s.Measurements[def.ID] = p.Defaults.Height
				}
			}
		}
	}

	return s
}

// defaultOption picks the declared default when it exists in the group,
// else the group's first option.
func defaultOption(group *catalog.VariationGroup, declared string) string {
	if group == nil || len(group.Options) == 0 {
		return ""
	}
	if group.Option(declared) != nil {
		return declared
	}
	return group.Options[0].ID
}

// defaultColor picks the declared default color when it is compatible with
// the chosen material, else the first compatible color option.
func defaultColor(p *catalog.Product, materialID string) string {
	group := p.Variations.Colors
	if group == nil || len(group.Options) == 0 {
		return ""
	}

	if declared := group.Option(p.Defaults.Color); declared != nil && colorCompatible(*declared, materialID) {
		return declared.ID
	}
	for _, opt := range group.Options {
		if colorCompatible(opt, materialID) {
			return opt.ID
		}
	}
	return ""
}

// colorCompatible reports whether a color option may be combined with the
// material. An empty compatibility list means compatible with everything.
func colorCompatible(color catalog.VariationOption, materialID string) bool {
	if len(color.CompatibleMaterials) == 0 || materialID == "" {
		return true
	}
	for _, id := range color.CompatibleMaterials {
		if id == materialID {
			return true
		}
	}
	return false
}
