// Package measure derives a total area and a human-readable formula from a
// set of named, roled measurements. It is best-effort on purpose: missing or
// unconvertible values contribute zero so a running estimate stays available
// while the buyer is still typing.
package measure

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Simplici0/configurador/internal/catalog"
	"github.com/Simplici0/configurador/internal/units"
)

// Measurement is a measurement definition paired with the numeric value that
// contributed to the area, in the definition's own unit.
type Measurement struct {
	Def   catalog.MeasurementDef `json:"def"`
	Value float64                `json:"value"`
}

// Result is the outcome of an area calculation.
type Result struct {
	Area         float64       `json:"area"`
	Formula      string        `json:"formula"`
	Contributing []Measurement `json:"contributing,omitempty"`
}

// CalculateArea computes the area in square feet for the given measurement
// definitions and value map. Rules are tried in priority order; the first
// matching rule wins:
//
//	diameter → radius → width×height → sides → panel groups → fallback
//
// Three side measurements are treated as a triangle using side1×side2/2,
// a base×height proxy kept from the original system. It is an approximation,
// not a general triangle area formula.
func CalculateArea(defs []catalog.MeasurementDef, values map[string]any) Result {
	byRole := collect(defs, values)

	if m, ok := first(byRole[catalog.RoleDiameter]); ok {
		d := units.FeetOrZero(m.Value, m.Def.Unit)
		return Result{
			Area:         math.Pi * (d / 2) * (d / 2),
			Formula:      fmt.Sprintf("π × (%.2f ft ÷ 2)²", d),
			Contributing: []Measurement{m},
		}
	}

	if m, ok := first(byRole[catalog.RoleRadius]); ok {
		r := units.FeetOrZero(m.Value, m.Def.Unit)
		return Result{
			Area:         math.Pi * r * r,
			Formula:      fmt.Sprintf("π × (%.2f ft)²", r),
			Contributing: []Measurement{m},
		}
	}

	widths := byRole[catalog.RoleWidth]
	heights := byRole[catalog.RoleHeight]
	if len(widths) > 0 && len(heights) > 0 {
		w := units.FeetOrZero(widths[0].Value, widths[0].Def.Unit)
		h := units.FeetOrZero(heights[0].Value, heights[0].Def.Unit)
		return Result{
			Area:         w * h,
			Formula:      fmt.Sprintf("%.2f ft × %.2f ft", w, h),
			Contributing: []Measurement{widths[0], heights[0]},
		}
	}

	if sides := byRole[catalog.RoleSide]; len(sides) >= 2 {
		a := units.FeetOrZero(sides[0].Value, sides[0].Def.Unit)
		b := units.FeetOrZero(sides[1].Value, sides[1].Def.Unit)
		if len(sides) == 3 {
			// Triangle approximation: base × height proxy.
			return Result{
				Area:         a * b / 2,
				Formula:      fmt.Sprintf("%.2f ft × %.2f ft ÷ 2", a, b),
				Contributing: sides,
			}
		}
		return Result{
			Area:         a * b,
			Formula:      fmt.Sprintf("%.2f ft × %.2f ft", a, b),
			Contributing: sides[:2],
		}
	}

	if res, ok := panelArea(defs, values); ok {
		return res
	}

	return fallbackArea(defs, values)
}

// panelArea handles multi-panel styles: measurement defs grouped under a
// "panel*" key each contribute width×height when both roles carry a value.
func panelArea(defs []catalog.MeasurementDef, values map[string]any) (Result, bool) {
	type panel struct {
		width, height *Measurement
	}

	panels := map[string]*panel{}
	var order []string
	for _, def := range defs {
		if !strings.HasPrefix(strings.ToLower(def.Group), "panel") {
			continue
		}
		value, ok := numericValue(values[def.ID])
		if !ok || value <= 0 {
			continue
		}
		p := panels[def.Group]
		if p == nil {
			p = &panel{}
			panels[def.Group] = p
			order = append(order, def.Group)
		}
		m := Measurement{Def: def, Value: value}
		switch def.Role {
		case catalog.RoleWidth:
			if p.width == nil {
				p.width = &m
			}
		case catalog.RoleHeight:
			if p.height == nil {
				p.height = &m
			}
		}
	}

	var res Result
	var parts []string
	for _, name := range order {
		p := panels[name]
		if p.width == nil || p.height == nil {
			continue
		}
		w := units.FeetOrZero(p.width.Value, p.width.Def.Unit)
		h := units.FeetOrZero(p.height.Value, p.height.Def.Unit)
		res.Area += w * h
		res.Contributing = append(res.Contributing, *p.width, *p.height)
		parts = append(parts, fmt.Sprintf("%s: %.2f ft × %.2f ft", name, w, h))
	}
	if len(parts) == 0 {
		return Result{}, false
	}
	res.Formula = strings.Join(parts, " + ")
	return res, true
}

// fallbackArea multiplies the first two positive numeric measurements in
// definition order. With fewer than two, the area is zero and the formula
// empty.
func fallbackArea(defs []catalog.MeasurementDef, values map[string]any) Result {
	var picked []Measurement
	for _, def := range defs {
		value, ok := numericValue(values[def.ID])
		if !ok || value <= 0 {
			continue
		}
		picked = append(picked, Measurement{Def: def, Value: value})
		if len(picked) == 2 {
			break
		}
	}
	if len(picked) < 2 {
		return Result{}
	}

	a := units.FeetOrZero(picked[0].Value, picked[0].Def.Unit)
	b := units.FeetOrZero(picked[1].Value, picked[1].Def.Unit)
	return Result{
		Area:         a * b,
		Formula:      fmt.Sprintf("%.2f ft × %.2f ft", a, b),
		Contributing: picked,
	}
}

func collect(defs []catalog.MeasurementDef, values map[string]any) map[string][]Measurement {
	byRole := map[string][]Measurement{}
	for _, def := range defs {
		value, ok := numericValue(values[def.ID])
		if !ok || value <= 0 {
			continue
		}
		byRole[def.Role] = append(byRole[def.Role], Measurement{Def: def, Value: value})
	}
	return byRole
}

func first(ms []Measurement) (Measurement, bool) {
	if len(ms) == 0 {
		return Measurement{}, false
	}
	return ms[0], true
}

func numericValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
