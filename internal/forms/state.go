package forms

// State is the ephemeral field/error/submitting bundle backing one
// mounted form. It is created when a form opens and discarded with it;
// nothing here is persisted.
type State struct {
	values     map[string]string
	errors     map[string]string
	submitting bool
}

// NewState builds form state seeded with initial field values.
func NewState(initial map[string]string) *State {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &State{values: values, errors: map[string]string{}}
}

// SetField records a field edit and clears only that field's error.
func (s *State) SetField(name, value string) {
	s.values[name] = value
	delete(s.errors, name)
}

// Value returns the current value for a field.
func (s *State) Value(name string) string {
	return s.values[name]
}

// SetErrors replaces the whole error map, as after a validation pass.
func (s *State) SetErrors(errs map[string]string) {
	s.errors = make(map[string]string, len(errs))
	for k, v := range errs {
		s.errors[k] = v
	}
}

// FieldError returns the error message for a field, empty when valid.
func (s *State) FieldError(name string) string {
	return s.errors[name]
}

// HasErrors reports whether any field is currently invalid.
func (s *State) HasErrors() bool {
	return len(s.errors) > 0
}

// SetSubmitting toggles the in-flight flag that disables inputs.
func (s *State) SetSubmitting(v bool) {
	s.submitting = v
}

// Submitting reports whether a submission is in flight.
func (s *State) Submitting() bool {
	return s.submitting
}

// Remaining derives the remaining character budget for a field. It is
// computed from the current value, never stored.
func (s *State) Remaining(name string, max int) int {
	return max - len([]rune(s.values[name]))
}
