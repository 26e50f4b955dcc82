package repository

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"github.com/stemsi/registry/internal/model"
)

// Store is the record store for one entity kind, backed 1:1 by a JSON file.
//
// The file holds an array of [id, entity] pairs in insertion order and is
// rewritten in full after every mutation, so memory and file are equal
// whenever a mutating call returns. A Store must be the only writer of its
// file: two Stores over the same path each keep their own snapshot and the
// later rewrite silently drops the other's changes.
type Store[T model.Entity[T]] struct {
	mu      sync.RWMutex
	path    string
	decode  func([]byte) (T, error)
	fields  model.Accessors[T]
	order   []string
	records map[string]T
}

// NewStore opens the store at path. A missing file is created holding an
// empty array; an unparseable one fails with *model.StorageCorruptionError.
func NewStore[T model.Entity[T]](path string, decode func([]byte) (T, error), fields model.Accessors[T]) (*Store[T], error) {
	s := &Store[T]{
		path:    path,
		decode:  decode,
		fields:  fields,
		records: make(map[string]T),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "create data dir")
		}
		if err := s.flush(); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, errors.Wrapf(err, "read %s", path)
	}

	if err := s.load(data); err != nil {
		return nil, &model.StorageCorruptionError{Path: path, Err: err}
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store[T]) Path() string { return s.path }

// Len returns the number of stored records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Save inserts or overwrites the record keyed by its id and rewrites the file.
// An overwritten record keeps its position. Returns the store for chaining.
func (s *Store[T]) Save(entity T) (*Store[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.EntityID()
	prev, existed := s.records[id]
	s.records[id] = entity.Clone()
	if !existed {
		s.order = append(s.order, id)
	}

	if err := s.flush(); err != nil {
		if existed {
			s.records[id] = prev
		} else {
			delete(s.records, id)
			s.order = s.order[:len(s.order)-1]
		}
		return nil, err
	}
	return s, nil
}

// FindByID returns the record for id. The bool is false when absent.
func (s *Store[T]) FindByID(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.records[id]
	if !ok {
		var zero T
		return zero, false
	}
	return entity.Clone(), true
}

// List returns every record in insertion order.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].Clone())
	}
	return out
}

// ListBy returns, in insertion order, the records whose field equals value.
// Unknown fields match nothing.
func (s *Store[T]) ListBy(field model.Field, value any) []T {
	get, ok := s.fields[field]
	if !ok {
		return []T{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0)
	for _, id := range s.order {
		entity := s.records[id]
		if model.Matches(get(entity), value) {
			out = append(out, entity.Clone())
		}
	}
	return out
}

// Remove deletes the record for id and rewrites the file.
// Removing an absent id is a no-op.
func (s *Store[T]) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.records[id]
	if !ok {
		return nil
	}
	idx := slices.Index(s.order, id)
	delete(s.records, id)
	s.order = slices.Delete(s.order, idx, idx+1)

	if err := s.flush(); err != nil {
		s.records[id] = prev
		s.order = slices.Insert(s.order, idx, id)
		return err
	}
	return nil
}

func (s *Store[T]) load(data []byte) error {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return errors.New("expected a JSON array")
	}

	var pairs [][]json.RawMessage
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}

	for i, pair := range pairs {
		if len(pair) != 2 {
			return errors.Errorf("entry %d: expected [id, entity], got %d elements", i, len(pair))
		}
		var id string
		if err := json.Unmarshal(pair[0], &id); err != nil {
			return errors.Wrapf(err, "entry %d: id", i)
		}
		entity, err := s.decode(pair[1])
		if err != nil {
			return errors.Wrapf(err, "entry %d", i)
		}
		if entity.EntityID() != id {
			return errors.Errorf("entry %d: key %q does not match entity id %q", i, id, entity.EntityID())
		}
		if _, dup := s.records[id]; dup {
			return errors.Errorf("entry %d: duplicate id %q", i, id)
		}
		s.records[id] = entity
		s.order = append(s.order, id)
	}
	return nil
}

// flush rewrites the whole file. It writes a sibling temp file first and
// renames it over the target so readers never see a partial file.
func (s *Store[T]) flush() error {
	pairs := make([][2]any, 0, len(s.order))
	for _, id := range s.order {
		pairs = append(pairs, [2]any{id, s.records[id]})
	}

	b, err := json.Marshal(pairs)
	if err != nil {
		return errors.Wrapf(err, "marshal %s", s.path)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "rename %s", tmp)
	}
	return nil
}
