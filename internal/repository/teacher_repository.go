package repository

import (
	"path/filepath"

	"github.com/stemsi/registry/internal/model"
)

// TeacherFile is the file name of the teacher store inside the data directory.
const TeacherFile = "teachers.json"

// TeacherRepository handles teacher data access.
type TeacherRepository = Store[*model.Teacher]

// NewTeacherRepository opens the teacher store in dataDir.
func NewTeacherRepository(dataDir string) (*TeacherRepository, error) {
	return NewStore(filepath.Join(dataDir, TeacherFile), model.TeacherFromObject, model.TeacherFields)
}
