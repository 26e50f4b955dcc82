package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/registry/internal/model"
	"github.com/stemsi/registry/internal/repository"
)

// TeacherService handles teacher business logic. Documents are unique and a
// teacher leading a class cannot be removed.
type TeacherService struct {
	teacherRepo *repository.TeacherRepository
	classes     ClassLister
	events      Publisher
	mu          *sync.Mutex
}

func NewTeacherService(teacherRepo *repository.TeacherRepository, classes ClassLister) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		classes:     classes,
		events:      nopPublisher{},
		mu:          &sync.Mutex{},
	}
}

func (s *TeacherService) FindByID(_ context.Context, id string) (*model.Teacher, error) {
	teacher, ok := s.teacherRepo.FindByID(id)
	if !ok {
		return nil, &model.NotFoundError{Locator: id, Kind: model.KindTeacher}
	}
	return teacher, nil
}

func (s *TeacherService) List(_ context.Context) []*model.Teacher {
	return s.teacherRepo.List()
}

func (s *TeacherService) ListBy(_ context.Context, field model.Field, value any) []*model.Teacher {
	return s.teacherRepo.ListBy(field, value)
}

func (s *TeacherService) Create(ctx context.Context, in model.Teacher) (*model.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.ID != "" {
		if _, exists := s.teacherRepo.FindByID(in.ID); exists {
			return nil, &model.ConflictError{Locator: in.ID, Kind: model.KindTeacher}
		}
	}
	if len(s.teacherRepo.ListBy(model.TeacherDocument, in.Document)) > 0 {
		return nil, &model.ConflictError{Locator: in.Document, Kind: model.KindTeacher}
	}

	teacher, err := model.NewTeacher(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.teacherRepo.Save(teacher); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("teacher_id", teacher.ID).Msg("Teacher created")
	s.events.Publish(ctx, change(model.KindTeacher, model.OpCreated, teacher.ID))
	return teacher, nil
}

func (s *TeacherService) Update(ctx context.Context, id string, patch model.TeacherPatch) (*model.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teacher, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Document.Set && !patch.Document.Null && patch.Document.Value != teacher.Document {
		for _, other := range s.teacherRepo.ListBy(model.TeacherDocument, patch.Document.Value) {
			if other.ID != id {
				return nil, &model.ConflictError{Locator: patch.Document.Value, Kind: model.KindTeacher}
			}
		}
	}

	updated, err := teacher.Apply(patch)
	if err != nil {
		return nil, err
	}
	if _, err := s.teacherRepo.Save(updated); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("teacher_id", id).Msg("Teacher updated")
	s.events.Publish(ctx, change(model.KindTeacher, model.OpUpdated, id))
	return updated, nil
}

// Remove deletes a teacher. Fails while any class names the teacher.
func (s *TeacherService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dependents := s.classes.ListBy(ctx, model.ClassTeacher, id); len(dependents) > 0 {
		return &model.DependencyConflictError{Dependent: model.KindClass, Locator: id, Kind: model.KindTeacher}
	}

	_, existed := s.teacherRepo.FindByID(id)
	if err := s.teacherRepo.Remove(id); err != nil {
		return err
	}
	if existed {
		zerolog.Ctx(ctx).Info().Str("teacher_id", id).Msg("Teacher removed")
		s.events.Publish(ctx, change(model.KindTeacher, model.OpRemoved, id))
	}
	return nil
}

// GetClasses lists the classes led by a teacher.
func (s *TeacherService) GetClasses(ctx context.Context, teacherID string) ([]*model.Class, error) {
	if _, err := s.FindByID(ctx, teacherID); err != nil {
		return nil, err
	}
	return s.classes.ListBy(ctx, model.ClassTeacher, teacherID), nil
}
