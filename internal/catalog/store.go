// Package catalog holds the immutable doctor catalog.
package catalog

import (
	"fmt"

	"github.com/jwalitptl/care-api/internal/model"
)

// Store is a read-only, ordered set of doctors.
type Store struct {
	doctors []model.Doctor
	byID    map[int]int
}

// NewStore copies doctors into a new store. Duplicate ids are rejected.
func NewStore(doctors []model.Doctor) (*Store, error) {
	s := &Store{
		doctors: make([]model.Doctor, len(doctors)),
		byID:    make(map[int]int, len(doctors)),
	}
	copy(s.doctors, doctors)

	for i, d := range s.doctors {
		if _, dup := s.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate doctor id %d", d.ID)
		}
		s.byID[d.ID] = i
	}
	return s, nil
}

// All returns the doctors in catalog order. The slice is a copy.
func (s *Store) All() []model.Doctor {
	out := make([]model.Doctor, len(s.doctors))
	copy(out, s.doctors)
	return out
}

// Get looks a doctor up by id.
func (s *Store) Get(id int) (model.Doctor, bool) {
	i, ok := s.byID[id]
	if !ok {
		return model.Doctor{}, false
	}
	return s.doctors[i], true
}

// Len returns the catalog size.
func (s *Store) Len() int {
	return len(s.doctors)
}
