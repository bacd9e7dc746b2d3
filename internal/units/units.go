package units

import "math"

// Supported linear measurement units.
const (
	Inches  = "inches"
	Feet    = "feet"
	Cm      = "cm"
	Meters  = "meters"
	Degrees = "degrees"
)

// Linear-to-feet conversion factors.
// 1 in = 1/12 ft; 1 cm = 0.0328084 ft; 1 m = 3.28084 ft.
// Measurements are always converted to feet individually before they are
// combined into areas, so inches use 1/12 here, never 1/144.
const (
	inchesToFeet = 1.0 / 12.0
	cmToFeet     = 0.0328084
	metersToFeet = 3.28084
)

// ToFeet converts a linear measurement to feet. Unknown units yield NaN;
// callers treat NaN as a zero contribution rather than an error.
func ToFeet(value float64, unit string) float64 {
	switch unit {
	case Inches:
		return value * inchesToFeet
	case Feet:
		return value
	case Cm:
		return value * cmToFeet
	case Meters:
		return value * metersToFeet
	default:
		return math.NaN()
	}
}

// FeetOrZero converts to feet and collapses NaN to zero, the "best effort"
// behavior the area calculator relies on for unconvertible units.
func FeetOrZero(value float64, unit string) float64 {
	ft := ToFeet(value, unit)
	if math.IsNaN(ft) {
		return 0
	}
	return ft
}
