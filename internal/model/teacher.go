package model

import (
	"encoding/json"
	"reflect"

	"github.com/stemsi/registry/internal/validator"
)

// Teacher represents a member of the teaching staff.
type Teacher struct {
	ID         string  `json:"id" validate:"required,uuid"`
	FirstName  string  `json:"firstName" validate:"required,max=255"`
	Surname    string  `json:"surname" validate:"required,max=255"`
	Phone      string  `json:"phone" validate:"required,max=30"`
	Email      string  `json:"email" validate:"required,email"`
	Document   string  `json:"document" validate:"required,max=20"`
	HiringDate string  `json:"hiringDate" validate:"required,isodate"`
	Major      string  `json:"major" validate:"required,max=255"`
	Salary     float64 `json:"salary" validate:"gt=0"`
}

// Queryable teacher fields.
const (
	TeacherID         Field = "id"
	TeacherFirstName  Field = "firstName"
	TeacherSurname    Field = "surname"
	TeacherPhone      Field = "phone"
	TeacherEmail      Field = "email"
	TeacherDocument   Field = "document"
	TeacherHiringDate Field = "hiringDate"
	TeacherMajor      Field = "major"
	TeacherSalary     Field = "salary"
)

// TeacherFields is the listBy dispatch table for teachers.
var TeacherFields = Accessors[*Teacher]{
	TeacherID:         func(t *Teacher) any { return t.ID },
	TeacherFirstName:  func(t *Teacher) any { return t.FirstName },
	TeacherSurname:    func(t *Teacher) any { return t.Surname },
	TeacherPhone:      func(t *Teacher) any { return t.Phone },
	TeacherEmail:      func(t *Teacher) any { return t.Email },
	TeacherDocument:   func(t *Teacher) any { return t.Document },
	TeacherHiringDate: func(t *Teacher) any { return t.HiringDate },
	TeacherMajor:      func(t *Teacher) any { return t.Major },
	TeacherSalary:     func(t *Teacher) any { return t.Salary },
}

// TeacherPatch carries the fields of a partial teacher update.
type TeacherPatch struct {
	FirstName  Patch[string]  `json:"firstName"`
	Surname    Patch[string]  `json:"surname"`
	Phone      Patch[string]  `json:"phone"`
	Email      Patch[string]  `json:"email"`
	Document   Patch[string]  `json:"document"`
	HiringDate Patch[string]  `json:"hiringDate"`
	Major      Patch[string]  `json:"major"`
	Salary     Patch[float64] `json:"salary"`
}

// NewTeacher validates in and returns a new Teacher.
func NewTeacher(in Teacher) (*Teacher, error) {
	t := in
	if t.ID == "" {
		t.ID = newID()
	}
	if err := validator.Struct(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TeacherFromObject rebuilds a Teacher from its serialized form.
func TeacherFromObject(data []byte) (*Teacher, error) {
	var in Teacher
	if err := decodeStrict(data, &in); err != nil {
		return nil, err
	}
	return NewTeacher(in)
}

func (t *Teacher) EntityID() string { return t.ID }

func (t *Teacher) EntityKind() Kind { return KindTeacher }

func (t *Teacher) Clone() *Teacher {
	cp := *t
	return &cp
}

func (t *Teacher) Object() Teacher { return *t }

func (t *Teacher) JSON() ([]byte, error) {
	return json.Marshal(t.Object())
}

func (t *Teacher) Equal(other *Teacher) bool {
	return reflect.DeepEqual(t, other)
}

func (t *Teacher) Apply(p TeacherPatch) (*Teacher, error) {
	next := t.Object()
	err := applyAll(
		func() error { return apply(&next.FirstName, p.FirstName, "firstName") },
		func() error { return apply(&next.Surname, p.Surname, "surname") },
		func() error { return apply(&next.Phone, p.Phone, "phone") },
		func() error { return apply(&next.Email, p.Email, "email") },
		func() error { return apply(&next.Document, p.Document, "document") },
		func() error { return apply(&next.HiringDate, p.HiringDate, "hiringDate") },
		func() error { return apply(&next.Major, p.Major, "major") },
		func() error { return apply(&next.Salary, p.Salary, "salary") },
	)
	if err != nil {
		return nil, err
	}
	return NewTeacher(next)
}
