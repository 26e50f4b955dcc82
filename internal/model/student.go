package model

import (
	"encoding/json"
	"reflect"

	"github.com/stemsi/registry/internal/validator"
)

// BloodTypes lists the accepted ABO/Rh blood types.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Student represents an enrolled student. Class and Parents hold ids.
type Student struct {
	ID          string   `json:"id" validate:"required,uuid"`
	FirstName   string   `json:"firstName" validate:"required,max=255"`
	Surname     string   `json:"surname" validate:"required,max=255"`
	Document    string   `json:"document" validate:"required,max=20"`
	BirthDate   string   `json:"birthDate" validate:"required,isodate"`
	BloodType   string   `json:"bloodType" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Class       string   `json:"class" validate:"required,uuid"`
	Parents     []string `json:"parents" validate:"required,min=1,dive,uuid"`
	StartDate   string   `json:"startDate" validate:"required,isodate"`
	Medications []string `json:"medications,omitempty" validate:"omitempty,dive,required"`
	Allergies   []string `json:"allergies,omitempty" validate:"omitempty,dive,required"`
}

// Queryable student fields.
const (
	StudentID          Field = "id"
	StudentFirstName   Field = "firstName"
	StudentSurname     Field = "surname"
	StudentDocument    Field = "document"
	StudentBirthDate   Field = "birthDate"
	StudentBloodType   Field = "bloodType"
	StudentClass       Field = "class"
	StudentParents     Field = "parents"
	StudentStartDate   Field = "startDate"
	StudentMedications Field = "medications"
	StudentAllergies   Field = "allergies"
)

// StudentFields is the listBy dispatch table for students.
var StudentFields = Accessors[*Student]{
	StudentID:          func(s *Student) any { return s.ID },
	StudentFirstName:   func(s *Student) any { return s.FirstName },
	StudentSurname:     func(s *Student) any { return s.Surname },
	StudentDocument:    func(s *Student) any { return s.Document },
	StudentBirthDate:   func(s *Student) any { return s.BirthDate },
	StudentBloodType:   func(s *Student) any { return s.BloodType },
	StudentClass:       func(s *Student) any { return s.Class },
	StudentParents:     func(s *Student) any { return s.Parents },
	StudentStartDate:   func(s *Student) any { return s.StartDate },
	StudentMedications: func(s *Student) any { return s.Medications },
	StudentAllergies:   func(s *Student) any { return s.Allergies },
}

// StudentPatch carries the fields of a partial student update.
// Medications and allergies are optional, so null clears them.
type StudentPatch struct {
	FirstName   Patch[string]   `json:"firstName"`
	Surname     Patch[string]   `json:"surname"`
	Document    Patch[string]   `json:"document"`
	BirthDate   Patch[string]   `json:"birthDate"`
	BloodType   Patch[string]   `json:"bloodType"`
	Class       Patch[string]   `json:"class"`
	Parents     Patch[[]string] `json:"parents"`
	StartDate   Patch[string]   `json:"startDate"`
	Medications Patch[[]string] `json:"medications"`
	Allergies   Patch[[]string] `json:"allergies"`
}

// NewStudent validates in and returns a new Student.
func NewStudent(in Student) (*Student, error) {
	s := in.Object()
	if s.ID == "" {
		s.ID = newID()
	}
	if err := validator.Struct(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// StudentFromObject rebuilds a Student from its serialized form.
func StudentFromObject(data []byte) (*Student, error) {
	var in Student
	if err := decodeStrict(data, &in); err != nil {
		return nil, err
	}
	return NewStudent(in)
}

func (s *Student) EntityID() string { return s.ID }

func (s *Student) EntityKind() Kind { return KindStudent }

func (s *Student) Clone() *Student {
	cp := s.Object()
	return &cp
}

// Object returns the plain structured form. Empty optional lists are dropped.
func (s *Student) Object() Student {
	out := *s
	out.Parents = cloneStrings(s.Parents)
	out.Medications = cloneStrings(s.Medications)
	out.Allergies = cloneStrings(s.Allergies)
	return out
}

func (s *Student) JSON() ([]byte, error) {
	return json.Marshal(s.Object())
}

func (s *Student) Equal(other *Student) bool {
	return reflect.DeepEqual(s, other)
}

// Apply returns a validated copy with the present patch fields applied.
func (s *Student) Apply(p StudentPatch) (*Student, error) {
	next := s.Object()
	err := applyAll(
		func() error { return apply(&next.FirstName, p.FirstName, "firstName") },
		func() error { return apply(&next.Surname, p.Surname, "surname") },
		func() error { return apply(&next.Document, p.Document, "document") },
		func() error { return apply(&next.BirthDate, p.BirthDate, "birthDate") },
		func() error { return apply(&next.BloodType, p.BloodType, "bloodType") },
		func() error { return apply(&next.Class, p.Class, "class") },
		func() error { return apply(&next.Parents, p.Parents, "parents") },
		func() error { return apply(&next.StartDate, p.StartDate, "startDate") },
	)
	if err != nil {
		return nil, err
	}
	if p.Medications.Set {
		next.Medications = p.Medications.Value
	}
	if p.Allergies.Set {
		next.Allergies = p.Allergies.Value
	}
	return NewStudent(next)
}
