// Package configurator turns a catalog product definition plus a buyer's
// in-progress selections into a deterministic price breakdown and a
// validity report. Every mutation fully recomputes dependencies, validation
// and price; nothing derived is ever cached across mutations.
package configurator

import (
	"strconv"
	"strings"
)

// UploadedFile is the metadata of a file attached by an external uploader.
// The engine never touches the blob itself.
type UploadedFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// State holds a single editing session's selections, measurements, attached
// files and special requests. It is always paired with exactly one product
// definition and never stores derived prices.
type State struct {
	ProductID       string            `json:"productId"`
	Selections      map[string]string `json:"selections"`
	Measurements    map[string]any    `json:"measurements"`
	Files           []UploadedFile    `json:"files"`
	SpecialRequests string            `json:"specialRequests"`
}

// NewState returns an empty state for the given product.
func NewState(productID string) State {
	return State{
		ProductID:    productID,
		Selections:   map[string]string{},
		Measurements: map[string]any{},
	}
}

// Selection returns the value selected under key; the empty string means
// "cleared".
func (s State) Selection(key string) string {
	return s.Selections[key]
}

// clone returns a deep copy so mutations replace state instead of sharing
// maps with previous snapshots.
func (s State) clone() State {
	next := s
	next.Selections = make(map[string]string, len(s.Selections))
	for k, v := range s.Selections {
		next.Selections[k] = v
	}
	next.Measurements = make(map[string]any, len(s.Measurements))
	for k, v := range s.Measurements {
		next.Measurements[k] = v
	}
	if s.Files != nil {
		next.Files = append([]UploadedFile(nil), s.Files...)
	}
	return next
}

// hasMeasurement reports whether a value is present for the measurement id.
// Numeric values always count, including zero; strings count when non-blank.
func (s State) hasMeasurement(id string) bool {
	raw, ok := s.Measurements[id]
	if !ok || raw == nil {
		return false
	}
	if str, isStr := raw.(string); isStr {
		return strings.TrimSpace(str) != ""
	}
	return true
}

// hasFile reports whether a file with the given requirement id is attached.
func (s State) hasFile(id string) bool {
	for _, f := range s.Files {
		if f.ID == id {
			return true
		}
	}
	return false
}

// parseMeasurement normalizes an incoming measurement value: numeric strings
// become numbers so the area calculator and catalog defaults agree on types.
func parseMeasurement(value any) any {
	str, ok := value.(string)
	if !ok {
		return value
	}
	trimmed := strings.TrimSpace(str)
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return trimmed
}
