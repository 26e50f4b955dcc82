package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stemsi/registry/internal/model"
	"github.com/stemsi/registry/internal/repository"
	"github.com/stretchr/testify/require"
)

const (
	fixtureTeacherID = "998a702b-6123-4ae3-b0d7-9d43227f6032"
	fixtureClassID   = "95c2faa4-8951-4f7b-bdbf-45aedb060583"
)

// recorder is a Publisher that keeps every change.
type recorder struct {
	mu      sync.Mutex
	changes []model.Change
}

func (r *recorder) Publish(_ context.Context, change model.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, change)
}

func (r *recorder) ops() []model.Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Op, 0, len(r.changes))
	for _, c := range r.changes {
		out = append(out, c.Op)
	}
	return out
}

func setup(t *testing.T) (*Services, *recorder, string) {
	t.Helper()
	dir := t.TempDir()
	stores, err := repository.Open(dir)
	require.NoError(t, err)
	events := &recorder{}
	return NewServices(stores, events), events, dir
}

func teacherInput(document string) model.Teacher {
	return model.Teacher{
		FirstName:  "Marta",
		Surname:    "Oliveira",
		Phone:      "+55 11 90000-0001",
		Email:      "marta@school.test",
		Document:   document,
		HiringDate: "2020-01-15T08:00:00Z",
		Major:      "Mathematics",
		Salary:     4200,
	}
}

func parentInput(document string) model.Parent {
	return model.Parent{
		FirstName: "Paulo",
		Surname:   "Souza",
		Phones:    []string{"+55 11 90000-0100"},
		Emails:    []string{"paulo@family.test"},
		Document:  document,
		Address: []model.Address{{
			Line1:   "Rua das Flores, 10",
			City:    "Sao Paulo",
			Country: "BR",
			ZipCode: "01000-000",
		}},
	}
}

func studentInput(classID string, parents ...string) model.Student {
	return model.Student{
		FirstName: "Ana",
		Surname:   "Souza",
		Document:  "S-0001",
		BirthDate: "2015-04-10T00:00:00Z",
		BloodType: "O+",
		Class:     classID,
		Parents:   parents,
		StartDate: "2023-02-01T00:00:00Z",
	}
}

func mustTeacher(t *testing.T, s *Services, document string) *model.Teacher {
	t.Helper()
	teacher, err := s.Teachers.Create(context.Background(), teacherInput(document))
	require.NoError(t, err)
	return teacher
}

func mustParent(t *testing.T, s *Services, document string) *model.Parent {
	t.Helper()
	parent, err := s.Parents.Create(context.Background(), parentInput(document))
	require.NoError(t, err)
	return parent
}

func mustClass(t *testing.T, s *Services, code string, teacher *string) *model.Class {
	t.Helper()
	class, err := s.Classes.Create(context.Background(), model.Class{Code: code, Teacher: teacher})
	require.NoError(t, err)
	return class
}
