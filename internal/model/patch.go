package model

import (
	"encoding/json"

	"github.com/stemsi/registry/internal/validator"
)

// Patch is one field of a partial update. It tells an absent JSON key
// (Set == false) apart from an explicit null (Set && Null).
type Patch[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a patch that assigns v.
func Some[T any](v T) Patch[T] {
	return Patch[T]{Set: true, Value: v}
}

// Null returns a patch that clears the field.
func Null[T any]() Patch[T] {
	return Patch[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked when the key is present, including for null.
func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	p.Set = true
	if string(data) == "null" {
		p.Null = true
		var zero T
		p.Value = zero
		return nil
	}
	p.Null = false
	return json.Unmarshal(data, &p.Value)
}

// MarshalJSON writes the value, or null when cleared or unset.
func (p Patch[T]) MarshalJSON() ([]byte, error) {
	if !p.Set || p.Null {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// apply assigns a present patch to dst. A null on a non-nullable field
// is reported against path.
func apply[T any](dst *T, p Patch[T], path string) error {
	if !p.Set {
		return nil
	}
	if p.Null {
		return validator.Invalid(path, path+" must not be null")
	}
	*dst = p.Value
	return nil
}

// applyAll runs apply over several fields and merges the issues.
func applyAll(steps ...func() error) error {
	var merged *validator.ValidationError
	for _, step := range steps {
		err := step()
		if err == nil {
			continue
		}
		ve, ok := err.(*validator.ValidationError)
		if !ok {
			return err
		}
		if merged == nil {
			merged = &validator.ValidationError{}
		}
		merged.Issues = append(merged.Issues, ve.Issues...)
	}
	if merged != nil {
		return merged
	}
	return nil
}
