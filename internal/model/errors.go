package model

import (
	"fmt"

	"github.com/stemsi/registry/internal/validator"
)

// ValidationError is raised when constructing an entity from invalid input.
type ValidationError = validator.ValidationError

// NotFoundError means no entity of Kind exists at Locator.
type NotFoundError struct {
	Locator string
	Kind    Kind
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with locator %q could not be found", e.Kind, e.Locator)
}

// ConflictError means a uniqueness rule of Kind is already taken by Locator.
type ConflictError struct {
	Locator string
	Kind    Kind
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with locator %q already exists", e.Kind, e.Locator)
}

// MissingDependencyError means the owner exists but its optional relation
// to Dependency is unset.
type MissingDependencyError struct {
	Dependency Kind
	Locator    string
	Kind       Kind
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s with locator %q has no %s", e.Kind, e.Locator, e.Dependency)
}

// DependencyConflictError means Kind at Locator cannot be removed while
// Dependent records still reference it.
type DependencyConflictError struct {
	Dependent Kind
	Locator   string
	Kind      Kind
}

func (e *DependencyConflictError) Error() string {
	return fmt.Sprintf("%s with locator %q is still referenced by %s records", e.Kind, e.Locator, e.Dependent)
}

// StorageCorruptionError means a backing file could not be parsed.
// The store that hit it never becomes usable.
type StorageCorruptionError struct {
	Path string
	Err  error
}

func (e *StorageCorruptionError) Error() string {
	return fmt.Sprintf("storage file %q is corrupt: %v", e.Path, e.Err)
}

func (e *StorageCorruptionError) Unwrap() error { return e.Err }
