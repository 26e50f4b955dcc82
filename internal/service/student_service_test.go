package service

import (
	"context"
	"testing"

	"github.com/stemsi/registry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentService_Create_References(t *testing.T) {
	s, events, _ := setup(t)
	ctx := context.Background()
	parent := mustParent(t, s, "P-1")
	class := mustClass(t, s, "1A-M", nil)

	t.Run("unknown class", func(t *testing.T) {
		_, err := s.Students.Create(ctx, studentInput(fixtureClassID, parent.ID))
		var notFound *model.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, model.KindClass, notFound.Kind)
		assert.Equal(t, fixtureClassID, notFound.Locator)
	})

	t.Run("unknown parent", func(t *testing.T) {
		_, err := s.Students.Create(ctx, studentInput(class.ID, parent.ID, fixtureParentID))
		var notFound *model.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, model.KindParent, notFound.Kind)
		assert.Equal(t, fixtureParentID, notFound.Locator)
	})

	t.Run("missing class is a validation error", func(t *testing.T) {
		_, err := s.Students.Create(ctx, studentInput("", parent.ID))
		var ve *model.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields(), "class")
	})

	assert.Empty(t, s.Students.List(ctx))

	student, err := s.Students.Create(ctx, studentInput(class.ID, parent.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.Equal(t, model.Change{
		Kind: model.KindStudent,
		Op:   model.OpCreated,
		ID:   student.ID,
		At:   events.changes[len(events.changes)-1].At,
	}, events.changes[len(events.changes)-1])
}

func TestStudentService_Update(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	parent := mustParent(t, s, "P-1")
	other := mustParent(t, s, "P-2")
	class := mustClass(t, s, "1A-M", nil)
	student, err := s.Students.Create(ctx, studentInput(class.ID, parent.ID))
	require.NoError(t, err)

	_, err = s.Students.Update(ctx, student.ID, model.StudentPatch{Class: model.Some(fixtureClassID)})
	var notFound *model.NotFoundError
	require.ErrorAs(t, err, &notFound)

	_, err = s.Students.Update(ctx, student.ID, model.StudentPatch{Parents: model.Some([]string{})})
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve, "a student keeps at least one parent")

	updated, err := s.Students.Update(ctx, student.ID, model.StudentPatch{
		Parents:   model.Some([]string{parent.ID, other.ID}),
		Allergies: model.Some([]string{"peanuts"}),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{parent.ID, other.ID}, updated.Parents)
	assert.Equal(t, []string{"peanuts"}, updated.Allergies)
	assert.Equal(t, class.ID, updated.Class)

	cleared, err := s.Students.Update(ctx, student.ID, model.StudentPatch{Allergies: model.Null[[]string]()})
	require.NoError(t, err)
	assert.Empty(t, cleared.Allergies)
}

func TestStudentService_Relations(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	first := mustParent(t, s, "P-1")
	second := mustParent(t, s, "P-2")
	class := mustClass(t, s, "1A-M", nil)
	student, err := s.Students.Create(ctx, studentInput(class.ID, second.ID, first.ID))
	require.NoError(t, err)

	got, err := s.Students.GetClass(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, class.Equal(got))

	parents, err := s.Students.GetParents(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, parents, 2)
	assert.Equal(t, second.ID, parents[0].ID, "stored order")
	assert.Equal(t, first.ID, parents[1].ID)

	_, err = s.Students.GetClass(ctx, fixtureClassID)
	var notFound *model.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, model.KindStudent, notFound.Kind)
}

func TestStudentService_ListByParentMembership(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	first := mustParent(t, s, "P-1")
	second := mustParent(t, s, "P-2")
	class := mustClass(t, s, "1A-M", nil)

	in := studentInput(class.ID, first.ID, second.ID)
	both, err := s.Students.Create(ctx, in)
	require.NoError(t, err)
	in.Document = "S-0002"
	in.Parents = []string{first.ID}
	_, err = s.Students.Create(ctx, in)
	require.NoError(t, err)

	got := s.Students.ListBy(ctx, model.StudentParents, second.ID)
	require.Len(t, got, 1)
	assert.Equal(t, both.ID, got[0].ID)
	assert.Len(t, s.Students.ListBy(ctx, model.StudentParents, first.ID), 2)
}

func TestStudentService_Remove(t *testing.T) {
	s, events, _ := setup(t)
	ctx := context.Background()
	parent := mustParent(t, s, "P-1")
	class := mustClass(t, s, "1A-M", nil)
	student, err := s.Students.Create(ctx, studentInput(class.ID, parent.ID))
	require.NoError(t, err)

	require.NoError(t, s.Students.Remove(ctx, student.ID))
	require.NoError(t, s.Students.Remove(ctx, student.ID))

	removed := 0
	for _, op := range events.ops() {
		if op == model.OpRemoved {
			removed++
		}
	}
	assert.Equal(t, 1, removed)
	assert.Empty(t, s.Students.List(ctx))
}
