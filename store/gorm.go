package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KESA-RIKIN/zero-hunger-platform/lifecycle"
	"github.com/KESA-RIKIN/zero-hunger-platform/models"
)

// GormStore persists donation records through gorm (sqlite in development,
// postgres in production). UpdateIf is a single guarded UPDATE whose WHERE
// clause carries the whole precondition, so the database linearizes competing
// transitions on the same record and exactly one writer can match the guard.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(id string) (*models.Donation, error) {
	var d models.Donation
	if err := s.db.First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lifecycle.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (s *GormStore) Create(d *models.Donation) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return s.db.Create(d).Error
}

func (s *GormStore) List(f lifecycle.Filter) ([]models.Donation, error) {
	q := s.db.Model(&models.Donation{})
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.DonorID != nil {
		q = q.Where("donor_id = ?", *f.DonorID)
	}
	if f.ReceiverID != nil {
		q = q.Where("receiver_id = ?", *f.ReceiverID)
	}
	if f.VolunteerID != nil {
		q = q.Where("volunteer_id = ?", *f.VolunteerID)
	}
	if f.VolunteerUnset {
		q = q.Where("volunteer_id IS NULL")
	}
	if f.NewestFirst {
		q = q.Order("created_at desc")
	}
	out := make([]models.Donation, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) UpdateIf(id string, pre lifecycle.Precondition, changes lifecycle.Changes) (*models.Donation, error) {
	if err := validateChanges(changes); err != nil {
		return nil, err
	}

	q := s.db.Model(&models.Donation{}).Where("id = ?", id)
	if len(pre.Statuses) > 0 {
		q = q.Where("status IN ?", pre.Statuses)
	}
	if pre.ReceiverUnset {
		q = q.Where("receiver_id IS NULL")
	}
	if pre.VolunteerUnset {
		q = q.Where("volunteer_id IS NULL")
	}
	if pre.VolunteerIs != nil {
		q = q.Where("volunteer_id = ?", *pre.VolunteerIs)
	}

	res := q.Updates(map[string]interface{}(changes))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the record never existed or another writer beat us to it
		if _, err := s.Get(id); err != nil {
			return nil, err
		}
		return nil, lifecycle.ErrConflict
	}
	return s.Get(id)
}

func (s *GormStore) AppendHistory(h *models.DonationStatusHistory) error {
	return s.db.Create(h).Error
}
