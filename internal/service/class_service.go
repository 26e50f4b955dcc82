package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/registry/internal/model"
	"github.com/stemsi/registry/internal/repository"
)

// ClassService handles class business logic: code uniqueness, the teacher
// reference and the student dependency lock.
type ClassService struct {
	classRepo *repository.ClassRepository
	teachers  TeacherReader
	students  StudentLister
	events    Publisher
	mu        *sync.Mutex
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository, teachers TeacherReader, students StudentLister) *ClassService {
	return &ClassService{
		classRepo: classRepo,
		teachers:  teachers,
		students:  students,
		events:    nopPublisher{},
		mu:        &sync.Mutex{},
	}
}

// FindByID retrieves a class by its ID.
func (s *ClassService) FindByID(_ context.Context, id string) (*model.Class, error) {
	class, ok := s.classRepo.FindByID(id)
	if !ok {
		return nil, &model.NotFoundError{Locator: id, Kind: model.KindClass}
	}
	return class, nil
}

// List retrieves all classes in insertion order.
func (s *ClassService) List(_ context.Context) []*model.Class {
	return s.classRepo.List()
}

// ListBy retrieves the classes whose field equals value.
func (s *ClassService) ListBy(_ context.Context, field model.Field, value any) []*model.Class {
	return s.classRepo.ListBy(field, value)
}

// Create creates a new class. The code must be unused and a non-null
// teacher must exist.
func (s *ClassService) Create(ctx context.Context, in model.Class) (*model.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.ID != "" {
		if _, exists := s.classRepo.FindByID(in.ID); exists {
			return nil, &model.ConflictError{Locator: in.ID, Kind: model.KindClass}
		}
	}
	if len(s.classRepo.ListBy(model.ClassCode, in.Code)) > 0 {
		return nil, &model.ConflictError{Locator: in.Code, Kind: model.KindClass}
	}
	if in.Teacher != nil {
		if _, err := s.teachers.FindByID(ctx, *in.Teacher); err != nil {
			return nil, err
		}
	}

	class, err := model.NewClass(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.classRepo.Save(class); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("class_id", class.ID).Str("code", class.Code).Msg("Class created")
	s.events.Publish(ctx, change(model.KindClass, model.OpCreated, class.ID))
	return class, nil
}

// Update applies the present fields of patch to the class.
// A teacher reference is only re-checked when the patch sets one.
func (s *ClassService) Update(ctx context.Context, id string, patch model.ClassPatch) (*model.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	class, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Code.Set && !patch.Code.Null && patch.Code.Value != class.Code {
		for _, other := range s.classRepo.ListBy(model.ClassCode, patch.Code.Value) {
			if other.ID != id {
				return nil, &model.ConflictError{Locator: patch.Code.Value, Kind: model.KindClass}
			}
		}
	}
	if patch.Teacher.Set && !patch.Teacher.Null {
		if _, err := s.teachers.FindByID(ctx, patch.Teacher.Value); err != nil {
			return nil, err
		}
	}

	updated, err := class.Apply(patch)
	if err != nil {
		return nil, err
	}
	if _, err := s.classRepo.Save(updated); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("class_id", id).Msg("Class updated")
	s.events.Publish(ctx, change(model.KindClass, model.OpUpdated, id))
	return updated, nil
}

// Remove deletes a class. Fails while any student is enrolled in it.
func (s *ClassService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dependents := s.students.ListBy(ctx, model.StudentClass, id); len(dependents) > 0 {
		return &model.DependencyConflictError{Dependent: model.KindStudent, Locator: id, Kind: model.KindClass}
	}

	_, existed := s.classRepo.FindByID(id)
	if err := s.classRepo.Remove(id); err != nil {
		return err
	}
	if existed {
		zerolog.Ctx(ctx).Info().Str("class_id", id).Msg("Class removed")
		s.events.Publish(ctx, change(model.KindClass, model.OpRemoved, id))
	}
	return nil
}

// GetTeacher resolves the teacher of a class. A class without a teacher
// fails with *model.MissingDependencyError rather than NotFound.
func (s *ClassService) GetTeacher(ctx context.Context, classID string) (*model.Teacher, error) {
	class, err := s.FindByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class.Teacher == nil {
		return nil, &model.MissingDependencyError{Dependency: model.KindTeacher, Locator: classID, Kind: model.KindClass}
	}
	return s.teachers.FindByID(ctx, *class.Teacher)
}

// GetStudents lists the students enrolled in a class.
func (s *ClassService) GetStudents(ctx context.Context, classID string) ([]*model.Student, error) {
	if _, err := s.FindByID(ctx, classID); err != nil {
		return nil, err
	}
	return s.students.ListBy(ctx, model.StudentClass, classID), nil
}
