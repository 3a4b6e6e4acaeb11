package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KESA-RIKIN/zero-hunger-platform/lifecycle"
	"github.com/KESA-RIKIN/zero-hunger-platform/middleware"
)

type CreateBookingRequest struct {
	DonationID   string   `json:"donationId"`
	ReceiverName string   `json:"receiverName"`
	DropAddress  string   `json:"drop_address"`
	DropLat      *float64 `json:"drop_lat"`
	DropLng      *float64 `json:"drop_lng"`
}

// CreateBooking claims a donation for the authenticated receiver. The claim
// is applied atomically against the record store: it either commits against a
// still-available record or fails with a conflict, never overwriting a
// receiver someone else already set. Status stays at created — handing the
// job to a coordinator is a separate accept step.
func CreateBooking(c *gin.Context) {
	receiverID := middleware.GetUserID(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DonationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request ID (donationId) is required"})
		return
	}

	donation, err := ctrl().Claim(req.DonationID, receiverID, lifecycle.ClaimInput{
		ReceiverName: req.ReceiverName,
		DropAddress:  req.DropAddress,
		DropLat:      req.DropLat,
		DropLng:      req.DropLng,
	})
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Food request not found"})
		case errors.Is(err, lifecycle.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "This request is no longer available"})
		default:
			log.Println("Error processing booking:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing request"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order updated successfully",
		"data":    donation,
	})
}
