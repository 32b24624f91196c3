package schemas

import (
	"fmt"
	"strings"
)

// FieldError is a single violated constraint, identified by the field that
// violated it.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates every violation found in one validation pass.
// Validators never fail fast: callers show users the complete error set, not
// one error at a time.
type ValidationError struct {
	Violations []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	ve, ok := err.(*ValidationError)
	return ve, ok
}

// violations collects field errors during a validation pass and converts them
// to a single aggregated error at the end.
type violations struct {
	fields []FieldError
}

func (v *violations) add(field, format string, args ...any) {
	v.fields = append(v.fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// merge folds a nested ValidationError into this pass, prefixing each field
// path. Non-validation errors are recorded verbatim under the prefix.
func (v *violations) merge(prefix string, err error) {
	if err == nil {
		return
	}
	if ve, ok := AsValidationError(err); ok {
		for _, f := range ve.Violations {
			field := prefix
			if f.Field != "" {
				field = prefix + "." + f.Field
			}
			v.fields = append(v.fields, FieldError{Field: field, Message: f.Message})
		}
		return
	}
	v.fields = append(v.fields, FieldError{Field: prefix, Message: err.Error()})
}

// err returns the aggregated ValidationError, or nil when the pass was clean.
func (v *violations) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Violations: v.fields}
}
