package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/KESA-RIKIN/zero-hunger-platform/models"
)

// Defaults applied when a receiver books without supplying drop details.
const (
	DefaultReceiverName = "Community Shelter"
	DefaultDropAddress  = "Designated Shelter Point"
	DefaultFoodImage    = "https://images.unsplash.com/photo-1488521787991-ed7bbaae773c?auto=format&fit=crop&q=80"
)

// Fallback drop coordinates (Hyderabad area)
const (
	DefaultDropLat = 17.4
	DefaultDropLng = 78.5
)

// Controller validates and applies donation lifecycle transitions. It is the
// only code path allowed to write status, receiver_id or volunteer_id; every
// transition goes through the store's precondition-gated UpdateIf, so two
// racing writers can never both commit against the same record.
type Controller struct {
	store Store
}

func NewController(s Store) *Controller {
	return &Controller{store: s}
}

// ClaimInput carries the optional drop details a receiver sends when booking.
type ClaimInput struct {
	ReceiverName string
	DropAddress  string
	DropLat      *float64
	DropLng      *float64
}

// CreateDonation stores a new record in the initial created state. The store
// assigns the opaque id.
func (c *Controller) CreateDonation(d *models.Donation) (*models.Donation, error) {
	d.Status = models.StatusCreated
	if d.FoodImage == "" {
		d.FoodImage = DefaultFoodImage
	}
	// Legacy alias fields are resolved once here, never in business logic
	d.FoodItem = d.FoodDetails
	d.Location = d.PickupAddress
	d.OrgName = d.DonorName
	if err := c.store.Create(d); err != nil {
		return nil, err
	}
	_ = c.store.AppendHistory(&models.DonationStatusHistory{
		DonationID: d.ID,
		ToStatus:   models.StatusCreated,
		ChangedBy:  d.DonorID,
		Note:       "Donation posted by donor",
	})
	return d, nil
}

// Claim records a receiver's interest in a still-available donation. Status
// stays at created: booking and coordinator assignment are independent facts,
// so availability for claiming is expressed as receiver_id still being null
// rather than by a status change.
func (c *Controller) Claim(id string, receiverID uint, in ClaimInput) (*models.Donation, error) {
	name := in.ReceiverName
	if name == "" {
		name = DefaultReceiverName
	}
	addr := in.DropAddress
	if addr == "" {
		addr = DefaultDropAddress
	}
	lat, lng := DefaultDropLat, DefaultDropLng
	if in.DropLat != nil {
		lat = *in.DropLat
	}
	if in.DropLng != nil {
		lng = *in.DropLng
	}

	pre := Precondition{
		Statuses:      []models.DonationStatus{models.StatusCreated, models.StatusAvailable},
		ReceiverUnset: true,
	}
	d, err := c.store.UpdateIf(id, pre, Changes{
		"receiver_id":   receiverID,
		"receiver_name": name,
		"drop_address":  addr,
		"drop_lat":      lat,
		"drop_lng":      lng,
		"booked_at":     time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("this request is no longer available: %w", ErrConflict)
		}
		return nil, err
	}
	return d, nil
}

// Assign hands the donation to the accepting coordinator. This is the
// mutual-exclusion path: under concurrent accepts exactly one caller commits
// and every other one gets a conflict, with no partial or double assignment.
func (c *Controller) Assign(id string, coordinatorID uint) (*models.Donation, error) {
	pre := Precondition{
		Statuses:       []models.DonationStatus{models.StatusCreated},
		VolunteerUnset: true,
	}
	d, err := c.store.UpdateIf(id, pre, Changes{
		"status":         models.StatusAssigned,
		"volunteer_id":   coordinatorID,
		"coordinator_id": coordinatorID,
		"accepted_at":    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("already accepted by another coordinator: %w", ErrConflict)
		}
		return nil, err
	}
	_ = c.store.AppendHistory(&models.DonationStatusHistory{
		DonationID: id,
		FromStatus: models.StatusCreated,
		ToStatus:   models.StatusAssigned,
		ChangedBy:  coordinatorID,
		Note:       "Coordinator accepted the delivery",
	})
	return d, nil
}

// MarkPickedUp advances an assigned donation once its own coordinator has
// collected the food. The volunteer_id guard rides in the same atomic update
// as the status check, so a stale or competing pickup cannot slip through.
func (c *Controller) MarkPickedUp(id string, coordinatorID uint) (*models.Donation, error) {
	pre := Precondition{
		Statuses:    []models.DonationStatus{models.StatusAssigned},
		VolunteerIs: &coordinatorID,
	}
	d, err := c.store.UpdateIf(id, pre, Changes{
		"status":      models.StatusPickedUp,
		"pickup_time": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	_ = c.store.AppendHistory(&models.DonationStatusHistory{
		DonationID: id,
		FromStatus: models.StatusAssigned,
		ToStatus:   models.StatusPickedUp,
		ChangedBy:  coordinatorID,
		Note:       "Coordinator picked up the food",
	})
	return d, nil
}

// MarkDelivered completes the lifecycle. Delivered is terminal.
func (c *Controller) MarkDelivered(id string, coordinatorID uint) (*models.Donation, error) {
	pre := Precondition{
		Statuses:    []models.DonationStatus{models.StatusPickedUp},
		VolunteerIs: &coordinatorID,
	}
	d, err := c.store.UpdateIf(id, pre, Changes{
		"status":       models.StatusDelivered,
		"delivered_at": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	_ = c.store.AppendHistory(&models.DonationStatusHistory{
		DonationID: id,
		FromStatus: models.StatusPickedUp,
		ToStatus:   models.StatusDelivered,
		ChangedBy:  coordinatorID,
		Note:       "Food delivered to the receiver",
	})
	return d, nil
}

// Get returns a single donation record.
func (c *Controller) Get(id string) (*models.Donation, error) {
	return c.store.Get(id)
}

// ActiveFeed lists every donation still moving through the lifecycle,
// newest first. Delivered records are excluded.
func (c *Controller) ActiveFeed() ([]models.Donation, error) {
	return c.store.List(Filter{
		Statuses: []models.DonationStatus{
			models.StatusCreated,
			models.StatusAvailable,
			models.StatusAssigned,
			models.StatusPickedUp,
		},
		NewestFirst: true,
	})
}

// ByDonor lists everything a donor has posted.
func (c *Controller) ByDonor(donorID uint) ([]models.Donation, error) {
	return c.store.List(Filter{DonorID: &donorID, NewestFirst: true})
}

// ByReceiver lists the donations a receiver has booked.
func (c *Controller) ByReceiver(receiverID uint) ([]models.Donation, error) {
	return c.store.List(Filter{ReceiverID: &receiverID, NewestFirst: true})
}

// AvailableTasks lists donations a coordinator can still accept.
func (c *Controller) AvailableTasks() ([]models.Donation, error) {
	return c.store.List(Filter{
		Statuses:       []models.DonationStatus{models.StatusCreated, models.StatusAvailable},
		VolunteerUnset: true,
		NewestFirst:    true,
	})
}

// TasksFor lists the donations assigned to a coordinator.
func (c *Controller) TasksFor(coordinatorID uint) ([]models.Donation, error) {
	return c.store.List(Filter{VolunteerID: &coordinatorID, NewestFirst: true})
}
