package tui

import (
	"net/url"
	"slices"

	"github.com/goliatone/go-material-widgets/pkg/forms"
)

// State holds the answers collected so far as the submission a browser would
// post, plus the errors of the last validation round.
type State struct {
	values url.Values
	errors forms.ErrorMap
}

// NewState seeds the state with prefilled values.
func NewState(prefill url.Values) *State {
	values := make(url.Values, len(prefill))
	for key, list := range prefill {
		values[key] = slices.Clone(list)
	}
	return &State{values: values}
}

// Values returns the collected submission (mutable).
func (s *State) Values() url.Values {
	if s == nil {
		return nil
	}
	return s.values
}

// Has reports whether name was answered or prefilled.
func (s *State) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.values[name]
	return ok
}

// Get returns the answers stored under name.
func (s *State) Get(name string) []string {
	if s == nil {
		return nil
	}
	return s.values[name]
}

// Set replaces the answers stored under name.
func (s *State) Set(name string, values ...string) {
	if s.values == nil {
		s.values = url.Values{}
	}
	s.values[name] = slices.Clone(values)
}

// ErrorsFor returns the errors reported for field in the last round.
func (s *State) ErrorsFor(field string) forms.ErrorList {
	if s == nil {
		return nil
	}
	return s.errors[field]
}

func (s *State) setErrors(errs forms.ErrorMap) {
	s.errors = errs
}
