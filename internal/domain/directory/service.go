package directory

import "context"

// API is the remote directory boundary the controller talks to. The HTTP
// implementation lives in internal/client.
type API interface {
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, draft Draft) (*Employee, error)
	Update(ctx context.Context, id int64, draft Draft) (*Employee, error)
	Delete(ctx context.Context, id int64) error
}

// Service owns the authoritative in-memory employee collection and keeps it
// reconciled with the remote service. The collection is only ever mutated as
// the direct result of a successful remote response; a failed call leaves it
// untouched and records the failure.
//
// The service does not serialize callers. It is meant for a single
// interactive session; whoever drives it must not issue a second mutation
// while one is still in flight.
type Service struct {
	api     API
	records []Employee
	loading bool
	lastErr error
}

func NewService(api API) *Service {
	return &Service{api: api}
}

// Records returns the current collection. Callers must not mutate it.
func (s *Service) Records() []Employee { return s.records }

func (s *Service) Loading() bool { return s.loading }

// LastError is the most recent remote failure, or nil after a success.
func (s *Service) LastError() error { return s.lastErr }

// Refresh replaces the collection wholesale with the remote list. The
// loading flag is cleared on every exit path.
func (s *Service) Refresh(ctx context.Context) error {
	s.loading = true
	defer func() { s.loading = false }()

	records, err := s.api.List(ctx)
	if err != nil {
		s.lastErr = err
		return err
	}
	s.records = records
	s.lastErr = nil
	return nil
}

// Submit creates a new record when editingID is nil, otherwise updates the
// record with that id. On success the returned record is reconciled into the
// collection exactly as the server echoed it.
func (s *Service) Submit(ctx context.Context, draft Draft, editingID *int64) (*Employee, error) {
	s.loading = true
	defer func() { s.loading = false }()

	var (
		saved *Employee
		err   error
	)
	if editingID != nil {
		saved, err = s.api.Update(ctx, *editingID, draft)
	} else {
		saved, err = s.api.Create(ctx, draft)
	}
	if err != nil {
		s.lastErr = err
		return nil, err
	}

	if editingID != nil {
		for i := range s.records {
			if s.records[i].ID == *editingID {
				s.records[i] = *saved
				break
			}
		}
	} else {
		s.records = append(s.records, *saved)
	}
	s.lastErr = nil
	return saved, nil
}

// Remove deletes the record remotely and, only on success, drops it from the
// collection.
func (s *Service) Remove(ctx context.Context, id int64) error {
	s.loading = true
	defer func() { s.loading = false }()

	if err := s.api.Delete(ctx, id); err != nil {
		s.lastErr = err
		return err
	}

	kept := s.records[:0:0]
	for _, emp := range s.records {
		if emp.ID != id {
			kept = append(kept, emp)
		}
	}
	s.records = kept
	s.lastErr = nil
	return nil
}

// Find returns the record with the given id from the local collection.
func (s *Service) Find(id int64) (*Employee, bool) {
	for i := range s.records {
		if s.records[i].ID == id {
			return &s.records[i], true
		}
	}
	return nil, false
}
