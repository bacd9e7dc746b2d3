package configurator

import (
	"github.com/Simplici0/configurador/internal/catalog"
	"github.com/Simplici0/configurador/internal/measure"
)

// Result is what the cart/order boundary consumes: the price breakdown plus
// the validity report. Total is the line-item price; callers must require
// IsValid before accepting an add-to-order action.
type Result struct {
	Breakdown Breakdown `json:"breakdown"`
	IsValid   bool      `json:"isValid"`
	Errors    []string  `json:"errors"`
}

// Session owns one ConfigurationState paired with one immutable product
// definition. Exactly one logical editor mutates a session at a time;
// callers that serve a session over HTTP serialize access themselves.
type Session struct {
	product *catalog.Product
	state   State
}

// NewSession seeds a session from the product's declared defaults.
func NewSession(p *catalog.Product) *Session {
	return &Session{product: p, state: SeedState(p)}
}

// Product returns the immutable definition this session configures.
func (s *Session) Product() *catalog.Product {
	return s.product
}

// State returns a snapshot of the current state. Mutating the snapshot does
// not affect the session.
func (s *Session) State() State {
	return s.state.clone()
}

// SetSelection records a selection under key. The empty string clears it.
func (s *Session) SetSelection(key, value string) Result {
	next := s.state.clone()
	next.Selections[key] = value
	return s.commit(next)
}

// SetMeasurement records a measurement value. Numeric strings are stored as
// numbers; a nil value removes the measurement.
func (s *Session) SetMeasurement(key string, value any) Result {
	next := s.state.clone()
	if value == nil {
		delete(next.Measurements, key)
	} else {
		next.Measurements[key] = parseMeasurement(value)
	}
	return s.commit(next)
}

// SetFiles replaces the attached file metadata.
func (s *Session) SetFiles(files []UploadedFile) Result {
	next := s.state.clone()
	next.Files = append([]UploadedFile(nil), files...)
	return s.commit(next)
}

// SetSpecialRequests replaces the free-text special requests.
func (s *Session) SetSpecialRequests(text string) Result {
	next := s.state.clone()
	next.SpecialRequests = text
	return s.commit(next)
}

// Evaluate runs the resolve→validate→price pipeline on the current state
// without mutating it. Calling it twice yields identical results.
func (s *Session) Evaluate() Result {
	return evaluate(s.product, s.state)
}

// Area computes the running area estimate for the active measurement set.
func (s *Session) Area() measure.Result {
	res := Resolve(s.product, s.state)
	return measure.CalculateArea(res.ActiveMeasurements, s.state.Measurements)
}

// commit resolves dependencies for the candidate state, drops uploads whose
// branding gate flipped false, replaces the session state and returns the
// freshly computed result. Validation and pricing are independent of each
// other and both run on every mutation.
func (s *Session) commit(next State) Result {
	res := Resolve(s.product, next)
	if !res.UploadsActive && len(next.Files) > 0 {
		// No orphaned uploads survive a branding deselection.
		next.Files = nil
	}
	s.state = next
	errs := Validate(s.product, next, res)
	return Result{
		Breakdown: Price(s.product, next),
		IsValid:   len(errs) == 0,
		Errors:    errs,
	}
}

func evaluate(p *catalog.Product, s State) Result {
	res := Resolve(p, s)
	errs := Validate(p, s, res)
	return Result{
		Breakdown: Price(p, s),
		IsValid:   len(errs) == 0,
		Errors:    errs,
	}
}
