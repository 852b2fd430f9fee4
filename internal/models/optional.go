package models

import "encoding/json"

// Optional is a JSON field that distinguishes "absent from the body"
// from "explicitly null". UnmarshalJSON only runs for fields present in
// the payload, so Present is false for omitted fields, and a JSON null
// yields Present with Valid false.
type Optional[T any] struct {
	Present bool
	Valid   bool
	Value   T
}

// Some builds a present, non-null Optional, mainly for tests and
// programmatic updates.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Valid: true, Value: v}
}

// Null builds a present but explicitly-null Optional.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
