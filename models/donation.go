package models

import "time"

// DonationStatus represents all possible states of a food donation request
type DonationStatus string

const (
	StatusCreated   DonationStatus = "created"
	StatusAssigned  DonationStatus = "assigned"
	StatusPickedUp  DonationStatus = "picked_up"
	StatusDelivered DonationStatus = "delivered"

	// StatusAvailable is a legacy synonym for StatusCreated still found in old
	// records. It is accepted when claiming and never written back.
	StatusAvailable DonationStatus = "available"
)

// GeoPoint is a latitude/longitude pair
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Donation is the per-food-offer record tracked through its lifecycle.
// Everything set at creation is immutable afterwards; only the lifecycle
// fields (status, receiver/volunteer identity and the milestone timestamps)
// may change, and only through the lifecycle controller.
type Donation struct {
	ID      string `json:"id" gorm:"primaryKey"`
	DonorID uint   `json:"donor_id" gorm:"not null;index"`

	DonorName      string   `json:"donor_name"`
	DonorType      string   `json:"donor_type"`
	FoodDetails    string   `json:"food_details"`
	Quantity       int      `json:"quantity"`
	PickupAddress  string   `json:"pickup_address"`
	PickupLocation GeoPoint `json:"pickup_location" gorm:"embedded;embeddedPrefix:pickup_"`
	ExpiryTime     string   `json:"expiry_time"`
	FoodImage      string   `json:"food_image"`

	Status DonationStatus `json:"status" gorm:"not null;default:'created';index"`

	ReceiverID   *uint    `json:"receiver_id" gorm:"index"`
	ReceiverName string   `json:"receiver_name"`
	DropAddress  string   `json:"drop_address"`
	DropLocation GeoPoint `json:"drop_location" gorm:"embedded;embeddedPrefix:drop_"`

	VolunteerID   *uint `json:"volunteer_id" gorm:"index"`
	CoordinatorID *uint `json:"coordinator_id"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	BookedAt    *time.Time `json:"booked_at"`
	AcceptedAt  *time.Time `json:"accepted_at"`
	PickupTime  *time.Time `json:"pickup_time"`
	DeliveredAt *time.Time `json:"delivered_at"`

	// Legacy alias fields, written once at creation for old clients
	FoodItem string `json:"foodItem"`
	Location string `json:"location"`
	OrgName  string `json:"orgName"`

	StatusHistory []DonationStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:DonationID"`
}

// DonationStatusHistory tracks every status change — audit trail
type DonationStatusHistory struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	DonationID string         `json:"donation_id" gorm:"not null;index"`
	FromStatus DonationStatus `json:"from_status"`
	ToStatus   DonationStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint           `json:"changed_by"` // user ID who triggered the transition
	Note       string         `json:"note"`
	CreatedAt  time.Time      `json:"created_at"`
}
