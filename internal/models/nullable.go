package models

import (
	"bytes"
	"encoding/json"
)

// Nullable is a patch field that tells an omitted key apart from an explicit
// null. Set is true whenever the key was present in the payload; Value is nil
// when it was sent as null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// NullableOf returns a present, non-null field.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a present field that clears the stored value.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON records presence and decodes the value.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// MarshalJSON renders the value, or null when absent or cleared.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Any returns the dereferenced value, or nil when absent or null. The
// validator uses it to check the carried value against field rules.
func (n Nullable[T]) Any() interface{} {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}

func (n Nullable[T]) clone() *T {
	if n.Value == nil {
		return nil
	}
	v := *n.Value
	return &v
}
