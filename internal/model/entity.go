package model

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Kind names an entity type. It appears in error messages and change events.
type Kind string

const (
	KindClass   Kind = "Class"
	KindStudent Kind = "Student"
	KindTeacher Kind = "Teacher"
	KindParent  Kind = "Parent"
)

// Entity is the shape shared by every stored record kind.
// T is the concrete pointer type so Clone stays typed.
type Entity[T any] interface {
	EntityID() string
	EntityKind() Kind
	Clone() T
}

// Field is the name of a queryable entity field, as it appears in JSON.
type Field string

// Accessors maps the queryable fields of one kind to their readers.
type Accessors[T any] map[Field]func(T) any

// Matches reports whether a field value equals the wanted value.
// List fields match when they contain the value; a nil field never matches.
func Matches(fieldValue, want any) bool {
	switch v := fieldValue.(type) {
	case nil:
		return false
	case []string:
		s, ok := want.(string)
		return ok && slices.Contains(v, s)
	case string:
		s, ok := want.(string)
		return ok && v == s
	case float64:
		switch w := want.(type) {
		case float64:
			return v == w
		case int:
			return v == float64(w)
		}
		return false
	default:
		return false
	}
}

func newID() string {
	return uuid.New().String()
}

// decodeStrict unmarshals data into dst and rejects keys the schema lacks.
func decodeStrict(data []byte, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Wrapf(err, "decode %T", dst)
	}
	return nil
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return slices.Clone(in)
}
