package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KESA-RIKIN/zero-hunger-platform/middleware"
	"github.com/KESA-RIKIN/zero-hunger-platform/models"
)

// Fallback pickup coordinates when a donor posts without them (Hyderabad)
const (
	defaultPickupLat = 17.3850
	defaultPickupLng = 78.4867
)

type CreateDonationRequest struct {
	OrgName   string   `json:"orgName"`
	Name      string   `json:"name"`
	DonorType string   `json:"donorType"`
	FoodType  string   `json:"foodType"`
	Location  string   `json:"location"`
	Quantity  int      `json:"quantity"`
	Time      string   `json:"time"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	FoodImage string   `json:"food_image"`
}

// CreateDonation posts a new food donation record (authenticated donors)
func CreateDonation(c *gin.Context) {
	donorID := middleware.GetUserID(c)

	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Old clients send orgName, newer ones send name
	name := req.OrgName
	if name == "" {
		name = req.Name
	}
	if name == "" || req.Quantity == 0 || req.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide all required fields"})
		return
	}

	lat, lng := defaultPickupLat, defaultPickupLng
	if req.Latitude != nil && req.Longitude != nil {
		lat, lng = *req.Latitude, *req.Longitude
	}

	donation := models.Donation{
		DonorID:        donorID,
		DonorName:      name,
		DonorType:      req.DonorType,
		FoodDetails:    fmt.Sprintf("%s - %d Meals", req.FoodType, req.Quantity),
		Quantity:       req.Quantity,
		PickupAddress:  req.Location,
		PickupLocation: models.GeoPoint{Lat: lat, Lng: lng},
		ExpiryTime:     req.Time,
		FoodImage:      req.FoodImage,
	}

	created, err := ctrl().CreateDonation(&donation)
	if err != nil {
		log.Println("Error creating food request:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating food request"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetDonations returns the public feed: every record still moving through
// the lifecycle (created, assigned or picked_up), newest first
func GetDonations(c *gin.Context) {
	donations, err := ctrl().ActiveFeed()
	if err != nil {
		log.Println("Error getting food requests:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching food requests"})
		return
	}
	c.JSON(http.StatusOK, donations)
}

// GetMyDonations returns the caller's posted donations. Unauthenticated
// callers get an empty list rather than an error.
func GetMyDonations(c *gin.Context) {
	donorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusOK, []models.Donation{})
		return
	}
	donations, err := ctrl().ByDonor(donorID)
	if err != nil {
		log.Println("Error fetching donor requests:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching your requests"})
		return
	}
	c.JSON(http.StatusOK, donations)
}

// GetMyRequests returns the donations the caller has booked as a receiver,
// with the same leniency as GetMyDonations.
func GetMyRequests(c *gin.Context) {
	receiverID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusOK, []models.Donation{})
		return
	}
	donations, err := ctrl().ByReceiver(receiverID)
	if err != nil {
		log.Println("Error fetching receiver requests:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching your assigned tasks"})
		return
	}
	c.JSON(http.StatusOK, donations)
}
