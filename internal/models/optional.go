package models

import "encoding/json"

// Optional is a tri-state JSON field: absent from the payload, present
// as null, or present with a value. Partial updates need the first two
// states to be distinguishable, which a plain pointer cannot do.
type Optional[T any] struct {
	Set   bool // key was present in the payload
	Valid bool // value was not null
	Value T
}

// UnmarshalJSON records presence before decoding the value.
// It is only invoked for keys that exist in the payload, so Set is
// always true here; absent fields keep the zero Optional.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Ptr returns the value as a pointer, or nil when the field was absent
// or null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
