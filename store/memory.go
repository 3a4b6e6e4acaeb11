package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KESA-RIKIN/zero-hunger-platform/lifecycle"
	"github.com/KESA-RIKIN/zero-hunger-platform/models"
)

// MemoryStore is a mutex-serialized in-memory donation store. It backs tests
// that need deterministic concurrency and can run the API without a database.
// The single mutex makes every UpdateIf a linearized read-check-write, which
// is the same single-winner contract the SQL store gets from its guarded
// UPDATE.
type MemoryStore struct {
	mu        sync.Mutex
	donations map[string]models.Donation
	history   []models.DonationStatusHistory
	nextHist  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{donations: make(map[string]models.Donation)}
}

func (s *MemoryStore) Get(id string) (*models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.donations[id]
	if !ok {
		return nil, lifecycle.ErrNotFound
	}
	return &d, nil
}

func (s *MemoryStore) Create(d *models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	d.UpdatedAt = d.CreatedAt
	s.donations[d.ID] = *d
	return nil
}

func (s *MemoryStore) List(f lifecycle.Filter) ([]models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Donation, 0)
	for _, d := range s.donations {
		if matchesFilter(&d, f) {
			out = append(out, d)
		}
	}
	if f.NewestFirst {
		sort.Slice(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out, nil
}

func (s *MemoryStore) UpdateIf(id string, pre lifecycle.Precondition, changes lifecycle.Changes) (*models.Donation, error) {
	if err := validateChanges(changes); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.donations[id]
	if !ok {
		return nil, lifecycle.ErrNotFound
	}
	if !holds(&d, pre) {
		return nil, lifecycle.ErrConflict
	}
	if err := applyChanges(&d, changes); err != nil {
		return nil, err
	}
	d.UpdatedAt = time.Now().UTC()
	s.donations[id] = d
	return &d, nil
}

func (s *MemoryStore) AppendHistory(h *models.DonationStatusHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextHist++
	h.ID = s.nextHist
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	s.history = append(s.history, *h)
	return nil
}

// History returns the audit trail for one donation in append order.
func (s *MemoryStore) History(donationID string) []models.DonationStatusHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.DonationStatusHistory
	for _, h := range s.history {
		if h.DonationID == donationID {
			out = append(out, h)
		}
	}
	return out
}

func holds(d *models.Donation, pre lifecycle.Precondition) bool {
	if len(pre.Statuses) > 0 {
		found := false
		for _, st := range pre.Statuses {
			if d.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if pre.ReceiverUnset && d.ReceiverID != nil {
		return false
	}
	if pre.VolunteerUnset && d.VolunteerID != nil {
		return false
	}
	if pre.VolunteerIs != nil && (d.VolunteerID == nil || *d.VolunteerID != *pre.VolunteerIs) {
		return false
	}
	return true
}

func matchesFilter(d *models.Donation, f lifecycle.Filter) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, st := range f.Statuses {
			if d.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.DonorID != nil && d.DonorID != *f.DonorID {
		return false
	}
	if f.ReceiverID != nil && (d.ReceiverID == nil || *d.ReceiverID != *f.ReceiverID) {
		return false
	}
	if f.VolunteerID != nil && (d.VolunteerID == nil || *d.VolunteerID != *f.VolunteerID) {
		return false
	}
	if f.VolunteerUnset && d.VolunteerID != nil {
		return false
	}
	return true
}
