package repository

import (
	"path/filepath"

	"github.com/stemsi/registry/internal/model"
)

// StudentFile is the file name of the student store inside the data directory.
const StudentFile = "students.json"

// StudentRepository handles student data access.
type StudentRepository = Store[*model.Student]

// NewStudentRepository opens the student store in dataDir.
func NewStudentRepository(dataDir string) (*StudentRepository, error) {
	return NewStore(filepath.Join(dataDir, StudentFile), model.StudentFromObject, model.StudentFields)
}
