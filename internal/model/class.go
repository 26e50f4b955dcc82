package model

import (
	"encoding/json"
	"reflect"

	"github.com/stemsi/registry/internal/validator"
)

// Class represents a school class group, optionally led by a teacher.
type Class struct {
	ID      string  `json:"id" validate:"required,uuid"`
	Code    string  `json:"code" validate:"required,classcode"`
	Teacher *string `json:"teacher" validate:"omitempty,uuid"`
}

// Queryable class fields.
const (
	ClassID      Field = "id"
	ClassCode    Field = "code"
	ClassTeacher Field = "teacher"
)

// ClassFields is the listBy dispatch table for classes.
var ClassFields = Accessors[*Class]{
	ClassID:   func(c *Class) any { return c.ID },
	ClassCode: func(c *Class) any { return c.Code },
	ClassTeacher: func(c *Class) any {
		if c.Teacher == nil {
			return nil
		}
		return *c.Teacher
	},
}

// ClassPatch carries the fields of a partial class update.
type ClassPatch struct {
	Code    Patch[string] `json:"code"`
	Teacher Patch[string] `json:"teacher"`
}

// NewClass validates in and returns a new Class.
// An empty ID is replaced by a fresh one.
func NewClass(in Class) (*Class, error) {
	c := in.Object()
	if c.ID == "" {
		c.ID = newID()
	}
	if err := validator.Struct(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ClassFromObject rebuilds a Class from its serialized form, keeping its id.
func ClassFromObject(data []byte) (*Class, error) {
	var in Class
	if err := decodeStrict(data, &in); err != nil {
		return nil, err
	}
	return NewClass(in)
}

func (c *Class) EntityID() string { return c.ID }

func (c *Class) EntityKind() Kind { return KindClass }

// Clone returns a deep copy.
func (c *Class) Clone() *Class {
	cp := c.Object()
	return &cp
}

// Object returns the plain structured form of the class.
func (c *Class) Object() Class {
	out := Class{ID: c.ID, Code: c.Code}
	if c.Teacher != nil {
		teacher := *c.Teacher
		out.Teacher = &teacher
	}
	return out
}

// JSON returns the canonical serialized form.
func (c *Class) JSON() ([]byte, error) {
	return json.Marshal(c.Object())
}

// Equal reports whether both classes hold the same id and fields.
func (c *Class) Equal(other *Class) bool {
	return reflect.DeepEqual(c, other)
}

// Apply returns a validated copy with the present patch fields applied.
// An explicit null teacher clears the relation; an absent one keeps it.
func (c *Class) Apply(p ClassPatch) (*Class, error) {
	next := c.Object()
	if err := apply(&next.Code, p.Code, "code"); err != nil {
		return nil, err
	}
	if p.Teacher.Set {
		if p.Teacher.Null {
			next.Teacher = nil
		} else {
			teacher := p.Teacher.Value
			next.Teacher = &teacher
		}
	}
	return NewClass(next)
}
