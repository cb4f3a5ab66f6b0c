package record

import "fmt"

// MalformedRecordError indicates the administration file exists but does not
// hold a JSON object, or a stored identifier does not parse as a UUID.
type MalformedRecordError struct {
	Path  string
	Field string
	Cause error
}

func (e *MalformedRecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed administration record: field %q: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("malformed administration record at %s: %v", e.Path, e.Cause)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Cause
}

// FieldNotFoundError indicates Get was called on an absent field.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not found in administration record", e.Field)
}

// CoercionError indicates a value expected to be integer or float coercible
// is not.
type CoercionError struct {
	Field string
	Value any
	Cause error
}

func (e *CoercionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot coerce field %q value %v: %v", e.Field, e.Value, e.Cause)
	}
	return fmt.Sprintf("cannot coerce field %q value %v (%T)", e.Field, e.Value, e.Value)
}

func (e *CoercionError) Unwrap() error {
	return e.Cause
}
