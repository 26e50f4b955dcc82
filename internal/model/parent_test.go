package model

import (
	"testing"

	"github.com/stemsi/registry/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParent() Parent {
	return Parent{
		FirstName: "Paulo",
		Surname:   "Souza",
		Phones:    []string{"+55 11 90000-0100"},
		Emails:    []string{"paulo@family.test"},
		Document:  "P-0001",
		Address: []Address{{
			Line1:   "Rua das Flores, 10",
			City:    "Sao Paulo",
			Country: "BR",
			ZipCode: "01000-000",
		}},
	}
}

func TestNewParent(t *testing.T) {
	parent, err := NewParent(validParent())
	require.NoError(t, err)
	assert.NotEmpty(t, parent.ID)
	assert.Equal(t, KindParent, parent.EntityKind())
}

func TestNewParent_NestedPaths(t *testing.T) {
	in := validParent()
	in.Emails = []string{"ok@family.test", "broken"}
	in.Address = append(in.Address, Address{Line1: "Second", City: "Rio", Country: "BR"})

	_, err := NewParent(in)

	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []validator.FieldIssue{
		{Path: "address[1].zipCode", Reason: ve.Fields()["address[1].zipCode"]},
		{Path: "emails[1]", Reason: ve.Fields()["emails[1]"]},
	}, ve.Issues)
}

func TestNewParent_RequiresContacts(t *testing.T) {
	in := validParent()
	in.Phones = nil
	in.Emails = []string{}
	in.Address = nil

	_, err := NewParent(in)

	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	fields := ve.Fields()
	assert.Contains(t, fields, "phones")
	assert.Contains(t, fields, "emails")
	assert.Contains(t, fields, "address")
}

func TestParent_RoundTrip(t *testing.T) {
	in := validParent()
	in.Address[0].Line2 = "Apt 4"

	original, err := NewParent(in)
	require.NoError(t, err)

	data, err := original.JSON()
	require.NoError(t, err)

	restored, err := ParentFromObject(data)
	require.NoError(t, err)
	assert.True(t, original.Equal(restored))
}

func TestParent_CloneIsDeep(t *testing.T) {
	parent, err := NewParent(validParent())
	require.NoError(t, err)

	cp := parent.Clone()
	cp.Emails[0] = "other@family.test"
	cp.Address[0].City = "Rio"

	assert.Equal(t, "paulo@family.test", parent.Emails[0])
	assert.Equal(t, "Sao Paulo", parent.Address[0].City)
}

func TestParent_ApplyNullAddress(t *testing.T) {
	parent, err := NewParent(validParent())
	require.NoError(t, err)

	_, err = parent.Apply(ParentPatch{Address: Null[[]Address]()})

	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "address must not be null", ve.Fields()["address"])
}
