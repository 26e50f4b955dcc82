package service

import (
	"context"
	"sync"
	"time"

	"github.com/stemsi/registry/internal/model"
	"github.com/stemsi/registry/internal/repository"
)

// Capability interfaces services use to reach each other. Depending on these
// instead of the concrete services keeps the cycle Class ↔ Student wireable
// and lets tests substitute doubles.

// TeacherReader resolves teachers by id.
type TeacherReader interface {
	FindByID(ctx context.Context, id string) (*model.Teacher, error)
}

// ClassReader resolves classes by id.
type ClassReader interface {
	FindByID(ctx context.Context, id string) (*model.Class, error)
}

// ParentReader resolves parents by id.
type ParentReader interface {
	FindByID(ctx context.Context, id string) (*model.Parent, error)
}

// StudentLister queries students by field.
type StudentLister interface {
	ListBy(ctx context.Context, field model.Field, value any) []*model.Student
}

// ClassLister queries classes by field.
type ClassLister interface {
	ListBy(ctx context.Context, field model.Field, value any) []*model.Class
}

// Publisher receives a Change after every successful mutation.
type Publisher interface {
	Publish(ctx context.Context, change model.Change)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, model.Change) {}

// Services bundles the four domain services wired to each other.
type Services struct {
	Classes  *ClassService
	Students *StudentService
	Teachers *TeacherService
	Parents  *ParentService
}

// NewServices builds every domain service over stores. All mutations share
// one write lock, so a check and the write that follows it cannot interleave
// with any other mutation. A nil publisher discards changes.
func NewServices(stores *repository.Stores, events Publisher) *Services {
	if events == nil {
		events = nopPublisher{}
	}
	mu := &sync.Mutex{}

	teachers := NewTeacherService(stores.Teachers, nil)
	parents := NewParentService(stores.Parents, nil)
	classes := NewClassService(stores.Classes, teachers, nil)
	students := NewStudentService(stores.Students, classes, parents)

	teachers.classes = classes
	parents.students = students
	classes.students = students

	teachers.mu, parents.mu, classes.mu, students.mu = mu, mu, mu, mu
	teachers.events, parents.events, classes.events, students.events = events, events, events, events

	return &Services{
		Classes:  classes,
		Students: students,
		Teachers: teachers,
		Parents:  parents,
	}
}

func change(kind model.Kind, op model.Op, id string) model.Change {
	return model.Change{Kind: kind, Op: op, ID: id, At: time.Now().UTC()}
}
