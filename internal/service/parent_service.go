package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/registry/internal/model"
	"github.com/stemsi/registry/internal/repository"
)

// ParentService handles parent business logic. Documents are unique and a
// parent still listed by a student cannot be removed.
type ParentService struct {
	parentRepo *repository.ParentRepository
	students   StudentLister
	events     Publisher
	mu         *sync.Mutex
}

func NewParentService(parentRepo *repository.ParentRepository, students StudentLister) *ParentService {
	return &ParentService{
		parentRepo: parentRepo,
		students:   students,
		events:     nopPublisher{},
		mu:         &sync.Mutex{},
	}
}

func (s *ParentService) FindByID(_ context.Context, id string) (*model.Parent, error) {
	parent, ok := s.parentRepo.FindByID(id)
	if !ok {
		return nil, &model.NotFoundError{Locator: id, Kind: model.KindParent}
	}
	return parent, nil
}

func (s *ParentService) List(_ context.Context) []*model.Parent {
	return s.parentRepo.List()
}

func (s *ParentService) ListBy(_ context.Context, field model.Field, value any) []*model.Parent {
	return s.parentRepo.ListBy(field, value)
}

func (s *ParentService) Create(ctx context.Context, in model.Parent) (*model.Parent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.ID != "" {
		if _, exists := s.parentRepo.FindByID(in.ID); exists {
			return nil, &model.ConflictError{Locator: in.ID, Kind: model.KindParent}
		}
	}
	if len(s.parentRepo.ListBy(model.ParentDocument, in.Document)) > 0 {
		return nil, &model.ConflictError{Locator: in.Document, Kind: model.KindParent}
	}

	parent, err := model.NewParent(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.parentRepo.Save(parent); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("parent_id", parent.ID).Msg("Parent created")
	s.events.Publish(ctx, change(model.KindParent, model.OpCreated, parent.ID))
	return parent, nil
}

func (s *ParentService) Update(ctx context.Context, id string, patch model.ParentPatch) (*model.Parent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Document.Set && !patch.Document.Null && patch.Document.Value != parent.Document {
		for _, other := range s.parentRepo.ListBy(model.ParentDocument, patch.Document.Value) {
			if other.ID != id {
				return nil, &model.ConflictError{Locator: patch.Document.Value, Kind: model.KindParent}
			}
		}
	}

	updated, err := parent.Apply(patch)
	if err != nil {
		return nil, err
	}
	if _, err := s.parentRepo.Save(updated); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("parent_id", id).Msg("Parent updated")
	s.events.Publish(ctx, change(model.KindParent, model.OpUpdated, id))
	return updated, nil
}

// Remove deletes a parent. Fails while any student lists the parent.
func (s *ParentService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dependents := s.students.ListBy(ctx, model.StudentParents, id); len(dependents) > 0 {
		return &model.DependencyConflictError{Dependent: model.KindStudent, Locator: id, Kind: model.KindParent}
	}

	_, existed := s.parentRepo.FindByID(id)
	if err := s.parentRepo.Remove(id); err != nil {
		return err
	}
	if existed {
		zerolog.Ctx(ctx).Info().Str("parent_id", id).Msg("Parent removed")
		s.events.Publish(ctx, change(model.KindParent, model.OpRemoved, id))
	}
	return nil
}

// GetStudents lists the students that name this parent.
func (s *ParentService) GetStudents(ctx context.Context, parentID string) ([]*model.Student, error) {
	if _, err := s.FindByID(ctx, parentID); err != nil {
		return nil, err
	}
	return s.students.ListBy(ctx, model.StudentParents, parentID), nil
}
