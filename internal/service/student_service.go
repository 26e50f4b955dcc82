package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/registry/internal/model"
	"github.com/stemsi/registry/internal/repository"
)

// StudentService handles student business logic. Every student must point
// at an existing class and existing parents.
type StudentService struct {
	studentRepo *repository.StudentRepository
	classes     ClassReader
	parents     ParentReader
	events      Publisher
	mu          *sync.Mutex
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, classes ClassReader, parents ParentReader) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		classes:     classes,
		parents:     parents,
		events:      nopPublisher{},
		mu:          &sync.Mutex{},
	}
}

// FindByID retrieves a student by ID.
func (s *StudentService) FindByID(_ context.Context, id string) (*model.Student, error) {
	student, ok := s.studentRepo.FindByID(id)
	if !ok {
		return nil, &model.NotFoundError{Locator: id, Kind: model.KindStudent}
	}
	return student, nil
}

func (s *StudentService) List(_ context.Context) []*model.Student {
	return s.studentRepo.List()
}

func (s *StudentService) ListBy(_ context.Context, field model.Field, value any) []*model.Student {
	return s.studentRepo.ListBy(field, value)
}

// Create enrolls a new student.
func (s *StudentService) Create(ctx context.Context, in model.Student) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.ID != "" {
		if _, exists := s.studentRepo.FindByID(in.ID); exists {
			return nil, &model.ConflictError{Locator: in.ID, Kind: model.KindStudent}
		}
	}
	// An empty class is left to validation below.
	var class *string
	if in.Class != "" {
		class = &in.Class
	}
	if err := s.checkReferences(ctx, class, in.Parents); err != nil {
		return nil, err
	}

	student, err := model.NewStudent(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.studentRepo.Save(student); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("student_id", student.ID).Str("class_id", student.Class).Msg("Student created")
	s.events.Publish(ctx, change(model.KindStudent, model.OpCreated, student.ID))
	return student, nil
}

// Update applies the present fields of patch. Class and parents are only
// re-checked when the patch carries them.
func (s *StudentService) Update(ctx context.Context, id string, patch model.StudentPatch) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var class *string
	if patch.Class.Set && !patch.Class.Null {
		class = &patch.Class.Value
	}
	var parents []string
	if patch.Parents.Set && !patch.Parents.Null {
		parents = patch.Parents.Value
	}
	if err := s.checkReferences(ctx, class, parents); err != nil {
		return nil, err
	}

	updated, err := student.Apply(patch)
	if err != nil {
		return nil, err
	}
	if _, err := s.studentRepo.Save(updated); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("student_id", id).Msg("Student updated")
	s.events.Publish(ctx, change(model.KindStudent, model.OpUpdated, id))
	return updated, nil
}

// Remove deletes a student. Nothing references students.
func (s *StudentService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.studentRepo.FindByID(id)
	if err := s.studentRepo.Remove(id); err != nil {
		return err
	}
	if existed {
		zerolog.Ctx(ctx).Info().Str("student_id", id).Msg("Student removed")
		s.events.Publish(ctx, change(model.KindStudent, model.OpRemoved, id))
	}
	return nil
}

// GetClass resolves the class a student is enrolled in.
func (s *StudentService) GetClass(ctx context.Context, studentID string) (*model.Class, error) {
	student, err := s.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Class == "" {
		return nil, &model.MissingDependencyError{Dependency: model.KindClass, Locator: studentID, Kind: model.KindStudent}
	}
	return s.classes.FindByID(ctx, student.Class)
}

// GetParents resolves every parent of a student, in the stored order.
func (s *StudentService) GetParents(ctx context.Context, studentID string) ([]*model.Parent, error) {
	student, err := s.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(student.Parents) == 0 {
		return nil, &model.MissingDependencyError{Dependency: model.KindParent, Locator: studentID, Kind: model.KindStudent}
	}

	parents := make([]*model.Parent, 0, len(student.Parents))
	for _, parentID := range student.Parents {
		parent, err := s.parents.FindByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
		parents = append(parents, parent)
	}
	return parents, nil
}

func (s *StudentService) checkReferences(ctx context.Context, class *string, parents []string) error {
	if class != nil {
		if _, err := s.classes.FindByID(ctx, *class); err != nil {
			return err
		}
	}
	for _, parentID := range parents {
		if _, err := s.parents.FindByID(ctx, parentID); err != nil {
			return err
		}
	}
	return nil
}
