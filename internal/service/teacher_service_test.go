package service

import (
	"context"
	"os"
	"testing"

	"github.com/stemsi/registry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeacherService_Create_DocumentConflict(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	mustTeacher(t, s, "T-1")

	_, err := s.Teachers.Create(ctx, teacherInput("T-1"))

	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "T-1", conflict.Locator)
	assert.Equal(t, model.KindTeacher, conflict.Kind)
	assert.Len(t, s.Teachers.List(ctx), 1)
}

func TestTeacherService_Create_Validation(t *testing.T) {
	s, _, _ := setup(t)
	in := teacherInput("T-1")
	in.Salary = 0
	in.Email = "not-an-email"

	_, err := s.Teachers.Create(context.Background(), in)

	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	fields := ve.Fields()
	assert.Contains(t, fields, "salary")
	assert.Contains(t, fields, "email")
}

func TestTeacherService_ListBySalary(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	mustTeacher(t, s, "T-1")
	in := teacherInput("T-2")
	in.Salary = 5100.5
	second, err := s.Teachers.Create(ctx, in)
	require.NoError(t, err)

	got := s.Teachers.ListBy(ctx, model.TeacherSalary, 5100.5)
	require.Len(t, got, 1)
	assert.Equal(t, second.ID, got[0].ID)

	assert.Len(t, s.Teachers.ListBy(ctx, model.TeacherSalary, 4200), 1, "int matches float")
}

func TestTeacherService_Update(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	first := mustTeacher(t, s, "T-1")
	mustTeacher(t, s, "T-2")

	_, err := s.Teachers.Update(ctx, first.ID, model.TeacherPatch{Document: model.Some("T-2")})
	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)

	_, err = s.Teachers.Update(ctx, first.ID, model.TeacherPatch{Major: model.Null[string]()})
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)

	updated, err := s.Teachers.Update(ctx, first.ID, model.TeacherPatch{Salary: model.Some(4800.0)})
	require.NoError(t, err)
	assert.Equal(t, 4800.0, updated.Salary)
	assert.Equal(t, first.Document, updated.Document)
}

func TestTeacherService_Remove_DependencyLock(t *testing.T) {
	s, events, _ := setup(t)
	ctx := context.Background()
	teacher := mustTeacher(t, s, "T-1")
	class := mustClass(t, s, "1A-M", &teacher.ID)

	err := s.Teachers.Remove(ctx, teacher.ID)

	var locked *model.DependencyConflictError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, model.KindClass, locked.Dependent)
	assert.Equal(t, model.KindTeacher, locked.Kind)
	assert.NotContains(t, events.ops(), model.OpRemoved)

	_, err = s.Classes.Update(ctx, class.ID, model.ClassPatch{Teacher: model.Null[string]()})
	require.NoError(t, err)
	require.NoError(t, s.Teachers.Remove(ctx, teacher.ID))

	_, err = s.Teachers.FindByID(ctx, teacher.ID)
	var notFound *model.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestTeacherService_GetClasses(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	teacher := mustTeacher(t, s, "T-1")
	a := mustClass(t, s, "1A-M", &teacher.ID)
	mustClass(t, s, "1B-M", nil)
	b := mustClass(t, s, "2A-T", &teacher.ID)

	classes, err := s.Teachers.GetClasses(ctx, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, classIDs(classes))

	_, err = s.Teachers.GetClasses(ctx, fixtureTeacherID)
	var notFound *model.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestTeacherService_Create_StoreFailureLeavesNoRecord(t *testing.T) {
	s, events, _ := setup(t)
	ctx := context.Background()

	tmp := s.Teachers.teacherRepo.Path() + ".tmp"
	require.NoError(t, os.Mkdir(tmp, 0o755))

	_, err := s.Teachers.Create(ctx, teacherInput("T-1"))
	require.Error(t, err)
	assert.Empty(t, s.Teachers.List(ctx))
	assert.Empty(t, events.ops())

	require.NoError(t, os.Remove(tmp))
	_, err = s.Teachers.Create(ctx, teacherInput("T-1"))
	require.NoError(t, err, "document is free after the failed write")
}

func TestTeacherService_ListByPhoneAndHiringDate(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	in := teacherInput("T-1")
	in.Phone = "555"
	in.HiringDate = "2010-10-10T00:00:00Z"
	teacher, err := s.Teachers.Create(ctx, in)
	require.NoError(t, err)
	mustTeacher(t, s, "T-2")

	byPhone := s.Teachers.ListBy(ctx, model.TeacherPhone, "555")
	require.Len(t, byPhone, 1)
	assert.Equal(t, teacher.ID, byPhone[0].ID)

	byDate := s.Teachers.ListBy(ctx, model.TeacherHiringDate, "2010-10-10T00:00:00Z")
	require.Len(t, byDate, 1)
	assert.Equal(t, teacher.ID, byDate[0].ID)
}
