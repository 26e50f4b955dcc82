package model

import (
	"encoding/json"
	"reflect"
	"slices"

	"github.com/stemsi/registry/internal/validator"
)

// Address is a postal address attached to a parent.
type Address struct {
	Line1   string `json:"line1" validate:"required,max=255"`
	Line2   string `json:"line2,omitempty" validate:"max=255"`
	City    string `json:"city" validate:"required,max=255"`
	Country string `json:"country" validate:"required,max=255"`
	ZipCode string `json:"zipCode" validate:"required,max=20"`
}

// Parent represents a student's parent or guardian.
type Parent struct {
	ID        string    `json:"id" validate:"required,uuid"`
	FirstName string    `json:"firstName" validate:"required,max=255"`
	Surname   string    `json:"surname" validate:"required,max=255"`
	Phones    []string  `json:"phones" validate:"required,min=1,dive,required,max=30"`
	Emails    []string  `json:"emails" validate:"required,min=1,dive,email"`
	Document  string    `json:"document" validate:"required,max=20"`
	Address   []Address `json:"address" validate:"required,min=1,dive"`
}

// Queryable parent fields.
const (
	ParentID        Field = "id"
	ParentFirstName Field = "firstName"
	ParentSurname   Field = "surname"
	ParentDocument  Field = "document"
	ParentPhones    Field = "phones"
	ParentEmails    Field = "emails"
)

// ParentFields is the listBy dispatch table for parents. Address is a
// structured value and is not queryable.
var ParentFields = Accessors[*Parent]{
	ParentID:        func(p *Parent) any { return p.ID },
	ParentFirstName: func(p *Parent) any { return p.FirstName },
	ParentSurname:   func(p *Parent) any { return p.Surname },
	ParentDocument:  func(p *Parent) any { return p.Document },
	ParentPhones:    func(p *Parent) any { return p.Phones },
	ParentEmails:    func(p *Parent) any { return p.Emails },
}

// ParentPatch carries the fields of a partial parent update.
type ParentPatch struct {
	FirstName Patch[string]    `json:"firstName"`
	Surname   Patch[string]    `json:"surname"`
	Phones    Patch[[]string]  `json:"phones"`
	Emails    Patch[[]string]  `json:"emails"`
	Document  Patch[string]    `json:"document"`
	Address   Patch[[]Address] `json:"address"`
}

// NewParent validates in and returns a new Parent.
func NewParent(in Parent) (*Parent, error) {
	p := in.Object()
	if p.ID == "" {
		p.ID = newID()
	}
	if err := validator.Struct(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParentFromObject rebuilds a Parent from its serialized form.
func ParentFromObject(data []byte) (*Parent, error) {
	var in Parent
	if err := decodeStrict(data, &in); err != nil {
		return nil, err
	}
	return NewParent(in)
}

func (p *Parent) EntityID() string { return p.ID }

func (p *Parent) EntityKind() Kind { return KindParent }

func (p *Parent) Clone() *Parent {
	cp := p.Object()
	return &cp
}

func (p *Parent) Object() Parent {
	out := *p
	out.Phones = cloneStrings(p.Phones)
	out.Emails = cloneStrings(p.Emails)
	if len(p.Address) == 0 {
		out.Address = nil
	} else {
		out.Address = slices.Clone(p.Address)
	}
	return out
}

func (p *Parent) JSON() ([]byte, error) {
	return json.Marshal(p.Object())
}

func (p *Parent) Equal(other *Parent) bool {
	return reflect.DeepEqual(p, other)
}

func (p *Parent) Apply(patch ParentPatch) (*Parent, error) {
	next := p.Object()
	err := applyAll(
		func() error { return apply(&next.FirstName, patch.FirstName, "firstName") },
		func() error { return apply(&next.Surname, patch.Surname, "surname") },
		func() error { return apply(&next.Phones, patch.Phones, "phones") },
		func() error { return apply(&next.Emails, patch.Emails, "emails") },
		func() error { return apply(&next.Document, patch.Document, "document") },
		func() error { return apply(&next.Address, patch.Address, "address") },
	)
	if err != nil {
		return nil, err
	}
	return NewParent(next)
}
