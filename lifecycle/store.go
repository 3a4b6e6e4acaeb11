package lifecycle

import "github.com/KESA-RIKIN/zero-hunger-platform/models"

// Filter selects donations in a List scan. Zero-valued fields are ignored.
type Filter struct {
	Statuses       []models.DonationStatus
	DonorID        *uint
	ReceiverID     *uint
	VolunteerID    *uint
	VolunteerUnset bool
	NewestFirst    bool
}

// Precondition is the compare half of the store's compare-and-update. It is
// evaluated against the current record inside the same atomic unit as the
// write, so that at most one of several racing writers observes it as true.
type Precondition struct {
	// Statuses the record must currently be in
	Statuses []models.DonationStatus
	// ReceiverUnset requires receiver_id to still be null
	ReceiverUnset bool
	// VolunteerUnset requires volunteer_id to still be null
	VolunteerUnset bool
	// VolunteerIs requires volunteer_id to equal this user
	VolunteerIs *uint
}

// Changes maps lifecycle column names to their new values. Stores must reject
// any column outside the lifecycle set; creation-time fields are immutable.
type Changes map[string]interface{}

// Store is the donation record store. Implementations must guarantee that
// UpdateIf executes its read-check-write as a single atomic unit: when two
// calls race on the same id, at most one sees its precondition satisfied and
// commits, and the loser gets ErrConflict rather than a merged record.
type Store interface {
	Get(id string) (*models.Donation, error)
	Create(d *models.Donation) error
	List(f Filter) ([]models.Donation, error)
	UpdateIf(id string, pre Precondition, changes Changes) (*models.Donation, error)
	AppendHistory(h *models.DonationStatusHistory) error
}
