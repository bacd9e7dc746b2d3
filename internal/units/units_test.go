package units

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestToFeet_KnownUnits(t *testing.T) {
	nearlyEqual(t, "12 inches", ToFeet(12, Inches), 1)
	nearlyEqual(t, "120 inches", ToFeet(120, Inches), 10)
	nearlyEqual(t, "3 feet", ToFeet(3, Feet), 3)
	nearlyEqual(t, "100 cm", ToFeet(100, Cm), 3.28084)
	nearlyEqual(t, "2 meters", ToFeet(2, Meters), 6.56168)
}

func TestToFeet_UnknownUnitIsNaN(t *testing.T) {
	for _, unit := range []string{Degrees, "furlongs", ""} {
		if !math.IsNaN(ToFeet(10, unit)) {
			t.Fatalf("expected NaN for unit %q", unit)
		}
	}
}

func TestFeetOrZero_CollapsesNaN(t *testing.T) {
	nearlyEqual(t, "degrees", FeetOrZero(45, Degrees), 0)
	nearlyEqual(t, "inches", FeetOrZero(6, Inches), 0.5)
}
