package openai

// Field describes one payload field for build-time checks.
type Field struct {
	Name string
	Set  bool
}

// Require returns a BuildError for the first field that is not set.
func Require(fields ...Field) error {
	for _, f := range fields {
		if !f.Set {
			return &BuildError{Fields: []string{f.Name}, Err: ErrMissingField}
		}
	}
	return nil
}

// Exclusive returns a BuildError if more than one of the fields is set.
func Exclusive(fields ...Field) error {
	var set []string
	for _, f := range fields {
		if f.Set {
			set = append(set, f.Name)
		}
	}
	if len(set) > 1 {
		return &BuildError{Fields: set, Err: ErrConflictingFields}
	}
	return nil
}

// Ptr returns a pointer to a copy of v. Handy for optional payload fields.
func Ptr[T any](v T) *T {
	return &v
}

// Clone returns a copy of a pointer value, nil stays nil.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
