package repository

import (
	"path/filepath"

	"github.com/stemsi/registry/internal/model"
)

// ParentFile is the file name of the parent store inside the data directory.
const ParentFile = "parents.json"

// ParentRepository handles parent data access.
type ParentRepository = Store[*model.Parent]

// NewParentRepository opens the parent store in dataDir.
func NewParentRepository(dataDir string) (*ParentRepository, error) {
	return NewStore(filepath.Join(dataDir, ParentFile), model.ParentFromObject, model.ParentFields)
}
