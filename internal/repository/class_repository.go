package repository

import (
	"path/filepath"

	"github.com/stemsi/registry/internal/model"
)

// ClassFile is the file name of the class store inside the data directory.
const ClassFile = "classes.json"

// ClassRepository handles class data access.
type ClassRepository = Store[*model.Class]

// NewClassRepository opens the class store in dataDir.
func NewClassRepository(dataDir string) (*ClassRepository, error) {
	return NewStore(filepath.Join(dataDir, ClassFile), model.ClassFromObject, model.ClassFields)
}
