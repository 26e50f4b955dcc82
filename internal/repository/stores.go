package repository

import "github.com/pkg/errors"

// Stores groups the record store of every entity kind in one data directory.
// Construct it once per process and share it; each store is the single
// writer of its file.
type Stores struct {
	Classes  *ClassRepository
	Students *StudentRepository
	Teachers *TeacherRepository
	Parents  *ParentRepository
}

// Open loads (or creates) all stores under dataDir.
func Open(dataDir string) (*Stores, error) {
	classes, err := NewClassRepository(dataDir)
	if err != nil {
		return nil, errors.Wrap(err, "open classes")
	}
	students, err := NewStudentRepository(dataDir)
	if err != nil {
		return nil, errors.Wrap(err, "open students")
	}
	teachers, err := NewTeacherRepository(dataDir)
	if err != nil {
		return nil, errors.Wrap(err, "open teachers")
	}
	parents, err := NewParentRepository(dataDir)
	if err != nil {
		return nil, errors.Wrap(err, "open parents")
	}

	return &Stores{
		Classes:  classes,
		Students: students,
		Teachers: teachers,
		Parents:  parents,
	}, nil
}
