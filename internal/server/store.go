package server

import (
	"context"
	"errors"
	"sort"
	"sync"

	"empdir/internal/domain/directory"
)

var ErrNotFound = errors.New("employee not found")

// Store persists employee records for the reference server. Two
// implementations exist: MemStore for tests and local runs, PGStore for a
// real deployment.
type Store interface {
	List(ctx context.Context) ([]directory.Employee, error)
	Get(ctx context.Context, id int64) (*directory.Employee, error)
	Create(ctx context.Context, emp directory.Employee) (*directory.Employee, error)
	Update(ctx context.Context, id int64, emp directory.Employee) (*directory.Employee, error)
	Delete(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	IdentityExists(ctx context.Context, idType, idNumber string, excludeID int64) (bool, error)
}

// MemStore keeps records in memory with server-assigned incremental ids.
type MemStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]directory.Employee
}

func NewMemStore() *MemStore {
	return &MemStore{nextID: 1, records: make(map[int64]directory.Employee)}
}

// List returns records ordered by first surname, then first name, matching
// the directory's canonical listing order.
func (s *MemStore) List(ctx context.Context) ([]directory.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]directory.Employee, 0, len(s.records))
	for _, emp := range s.records {
		out = append(out, emp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FirstSurname != out[j].FirstSurname {
			return out[i].FirstSurname < out[j].FirstSurname
		}
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id int64) (*directory.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &emp, nil
}

func (s *MemStore) Create(ctx context.Context, emp directory.Employee) (*directory.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp.ID = s.nextID
	s.nextID++
	s.records[emp.ID] = emp
	return &emp, nil
}

func (s *MemStore) Update(ctx context.Context, id int64, emp directory.Employee) (*directory.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return nil, ErrNotFound
	}
	emp.ID = id
	s.records[id] = emp
	return &emp, nil
}

func (s *MemStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *MemStore) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, emp := range s.records {
		if emp.ID != excludeID && emp.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) IdentityExists(ctx context.Context, idType, idNumber string, excludeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, emp := range s.records {
		if emp.ID != excludeID && emp.IDType == idType && emp.IDNumber == idNumber {
			return true, nil
		}
	}
	return false, nil
}
