package model

import (
	"testing"

	"github.com/stemsi/registry/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTeacher() Teacher {
	return Teacher{
		FirstName:  "Marta",
		Surname:    "Oliveira",
		Phone:      "+55 11 90000-0001",
		Email:      "marta@school.test",
		Document:   "T-0001",
		HiringDate: "2020-01-15T08:00:00Z",
		Major:      "Mathematics",
		Salary:     4200.5,
	}
}

func TestNewTeacher(t *testing.T) {
	teacher, err := NewTeacher(validTeacher())
	require.NoError(t, err)
	assert.NotEmpty(t, teacher.ID)
	assert.Equal(t, KindTeacher, teacher.EntityKind())
}

func TestNewTeacher_Invalid(t *testing.T) {
	in := validTeacher()
	in.Email = "not-an-email"
	in.Salary = 0
	in.HiringDate = "yesterday"

	teacher, err := NewTeacher(in)
	assert.Nil(t, teacher)

	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	fields := ve.Fields()
	assert.Len(t, fields, 3)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "salary")
	assert.Contains(t, fields, "hiringDate")
}

func TestTeacher_RoundTrip(t *testing.T) {
	original, err := NewTeacher(validTeacher())
	require.NoError(t, err)

	data, err := original.JSON()
	require.NoError(t, err)

	restored, err := TeacherFromObject(data)
	require.NoError(t, err)
	assert.True(t, original.Equal(restored))
}

func TestTeacher_Apply(t *testing.T) {
	teacher, err := NewTeacher(validTeacher())
	require.NoError(t, err)

	updated, err := teacher.Apply(TeacherPatch{Salary: Some(5000.0), Major: Some("Physics")})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, updated.Salary)
	assert.Equal(t, "Physics", updated.Major)
	assert.Equal(t, teacher.Document, updated.Document)

	_, err = teacher.Apply(TeacherPatch{Salary: Some(-1.0)})
	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields(), "salary")
}

func TestTeacherFields_SalaryIsNumeric(t *testing.T) {
	teacher, err := NewTeacher(validTeacher())
	require.NoError(t, err)

	get := TeacherFields[TeacherSalary]
	assert.True(t, Matches(get(teacher), 4200.5))
	assert.False(t, Matches(get(teacher), "4200.5"))
}
