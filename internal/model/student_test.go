package model

import (
	"encoding/json"
	"testing"

	"github.com/stemsi/registry/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureParentID = "5f0c2a43-2b1e-4d0a-9c51-7d1e0f6b8a21"

func validStudent() Student {
	return Student{
		FirstName: "Ana",
		Surname:   "Souza",
		Document:  "S-0001",
		BirthDate: "2015-04-10T00:00:00.000Z",
		BloodType: "O+",
		Class:     fixtureClassID,
		Parents:   []string{fixtureParentID},
		StartDate: "2023-02-01T00:00:00Z",
	}
}

func TestNewStudent(t *testing.T) {
	student, err := NewStudent(validStudent())
	require.NoError(t, err)

	assert.NotEmpty(t, student.ID)
	assert.Equal(t, KindStudent, student.EntityKind())
	assert.Nil(t, student.Medications)
}

func TestNewStudent_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Student)
		path   string
	}{
		{"missing first name", func(s *Student) { s.FirstName = "" }, "firstName"},
		{"document too long", func(s *Student) { s.Document = "012345678901234567890" }, "document"},
		{"birth date not ISO", func(s *Student) { s.BirthDate = "10/04/2015" }, "birthDate"},
		{"unknown blood type", func(s *Student) { s.BloodType = "C+" }, "bloodType"},
		{"class not a uuid", func(s *Student) { s.Class = "1A-M" }, "class"},
		{"no parents", func(s *Student) { s.Parents = nil }, "parents"},
		{"parent not a uuid", func(s *Student) { s.Parents = []string{"dad"} }, "parents[0]"},
		{"blank medication", func(s *Student) { s.Medications = []string{""} }, "medications[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validStudent()
			tt.mutate(&in)

			_, err := NewStudent(in)
			var ve *validator.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields(), tt.path)
		})
	}
}

func TestStudent_RoundTrip(t *testing.T) {
	in := validStudent()
	in.Medications = []string{"ibuprofen"}
	in.Allergies = []string{"peanuts", "pollen"}

	original, err := NewStudent(in)
	require.NoError(t, err)

	data, err := original.JSON()
	require.NoError(t, err)

	restored, err := StudentFromObject(data)
	require.NoError(t, err)
	assert.True(t, original.Equal(restored))
}

func TestStudent_EmptyOptionalListsAreDropped(t *testing.T) {
	in := validStudent()
	in.Medications = []string{}

	student, err := NewStudent(in)
	require.NoError(t, err)

	data, err := student.JSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "medications")

	restored, err := StudentFromObject(data)
	require.NoError(t, err)
	assert.True(t, student.Equal(restored))
}

func TestStudent_Apply(t *testing.T) {
	in := validStudent()
	in.Allergies = []string{"peanuts"}
	student, err := NewStudent(in)
	require.NoError(t, err)

	var patch StudentPatch
	require.NoError(t, json.Unmarshal([]byte(`{"surname":"Lima","allergies":null}`), &patch))

	updated, err := student.Apply(patch)
	require.NoError(t, err)
	assert.Equal(t, "Lima", updated.Surname)
	assert.Equal(t, "Ana", updated.FirstName)
	assert.Nil(t, updated.Allergies)
	assert.Equal(t, []string{"peanuts"}, student.Allergies)

	var bad StudentPatch
	require.NoError(t, json.Unmarshal([]byte(`{"class":null,"parents":null}`), &bad))
	_, err = student.Apply(bad)

	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Issues, 2)
}

func TestStudentFields_ParentsMatchByMembership(t *testing.T) {
	in := validStudent()
	in.Parents = []string{fixtureParentID, fixtureTeacherID}
	student, err := NewStudent(in)
	require.NoError(t, err)

	get := StudentFields[StudentParents]
	assert.True(t, Matches(get(student), fixtureTeacherID))
	assert.True(t, Matches(get(student), fixtureParentID))
	assert.False(t, Matches(get(student), fixtureClassID))
}
