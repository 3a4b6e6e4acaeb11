package store

import (
	"fmt"
	"time"

	"github.com/KESA-RIKIN/zero-hunger-platform/lifecycle"
	"github.com/KESA-RIKIN/zero-hunger-platform/models"
)

// lifecycleColumns is the full set of columns a transition may write. Every
// other donation column is set at creation and immutable, so both stores
// refuse changes outside this list.
var lifecycleColumns = map[string]bool{
	"status":         true,
	"receiver_id":    true,
	"receiver_name":  true,
	"drop_address":   true,
	"drop_lat":       true,
	"drop_lng":       true,
	"booked_at":      true,
	"volunteer_id":   true,
	"coordinator_id": true,
	"accepted_at":    true,
	"pickup_time":    true,
	"delivered_at":   true,
}

func validateChanges(changes lifecycle.Changes) error {
	for col := range changes {
		if !lifecycleColumns[col] {
			return fmt.Errorf("column %q is not a lifecycle field", col)
		}
	}
	return nil
}

// applyChanges mutates an in-memory record the way the SQL store's UPDATE
// would. Values arrive with the types the lifecycle controller produces.
func applyChanges(d *models.Donation, changes lifecycle.Changes) error {
	for col, val := range changes {
		switch col {
		case "status":
			d.Status = val.(models.DonationStatus)
		case "receiver_id":
			id := val.(uint)
			d.ReceiverID = &id
		case "receiver_name":
			d.ReceiverName = val.(string)
		case "drop_address":
			d.DropAddress = val.(string)
		case "drop_lat":
			d.DropLocation.Lat = val.(float64)
		case "drop_lng":
			d.DropLocation.Lng = val.(float64)
		case "booked_at":
			t := val.(time.Time)
			d.BookedAt = &t
		case "volunteer_id":
			id := val.(uint)
			d.VolunteerID = &id
		case "coordinator_id":
			id := val.(uint)
			d.CoordinatorID = &id
		case "accepted_at":
			t := val.(time.Time)
			d.AcceptedAt = &t
		case "pickup_time":
			t := val.(time.Time)
			d.PickupTime = &t
		case "delivered_at":
			t := val.(time.Time)
			d.DeliveredAt = &t
		default:
			return fmt.Errorf("column %q is not a lifecycle field", col)
		}
	}
	return nil
}
