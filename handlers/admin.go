package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KESA-RIKIN/zero-hunger-platform/config"
	"github.com/KESA-RIKIN/zero-hunger-platform/models"
)

// AdminGetAllDonations returns all donation records with full detail (admin only).
// There is no admin override for status; the lifecycle never regresses.
func AdminGetAllDonations(c *gin.Context) {
	var donations []models.Donation
	query := config.DB.Preload("StatusHistory")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if donorID := c.Query("donor_id"); donorID != "" {
		query = query.Where("donor_id = ?", donorID)
	}
	if receiverID := c.Query("receiver_id"); receiverID != "" {
		query = query.Where("receiver_id = ?", receiverID)
	}

	query.Order("created_at desc").Find(&donations)

	// Admin dashboard: aggregate by status
	summary := map[string]int{}
	var mealsDelivered int
	for _, d := range donations {
		summary[string(d.Status)]++
		if d.Status == models.StatusDelivered {
			mealsDelivered += d.Quantity
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"donation_summary": summary,
		"meals_delivered":  mealsDelivered,
		"count":            len(donations),
		"donations":        donations,
	})
}

// AdminGetAllUsers returns all users (admin only)
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}
