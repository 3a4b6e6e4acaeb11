package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KESA-RIKIN/zero-hunger-platform/lifecycle"
	"github.com/KESA-RIKIN/zero-hunger-platform/middleware"
	"github.com/KESA-RIKIN/zero-hunger-platform/models"
	"github.com/KESA-RIKIN/zero-hunger-platform/statemachine"
)

// GetAvailableTasks shows donations a coordinator can still accept: status
// created with no volunteer assigned yet
func GetAvailableTasks(c *gin.Context) {
	tasks, err := ctrl().AvailableTasks()
	if err != nil {
		log.Println("Error fetching available tasks:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching available tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(tasks), "tasks": tasks})
}

// GetMyTasks returns all donations assigned to the logged-in coordinator
func GetMyTasks(c *gin.Context) {
	coordinatorID := middleware.GetUserID(c)
	tasks, err := ctrl().TasksFor(coordinatorID)
	if err != nil {
		log.Println("Error fetching coordinator tasks:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching your tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(tasks), "tasks": tasks})
}

// AcceptTask assigns the donation to the coordinator, created → assigned.
// The precondition (status still created, no volunteer yet) is enforced in
// the same atomic update as the write: under concurrent accepts exactly one
// coordinator wins and the rest get a conflict.
func AcceptTask(c *gin.Context) {
	coordinatorID := middleware.GetUserID(c)
	taskID := c.Param("id")

	donation, err := ctrl().Get(taskID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if err := statemachine.CanTransition(donation.Status, models.StatusAssigned, statemachine.ActorCoordinator); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":             "Invalid state transition",
			"current_status":    donation.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(donation.Status),
		})
		return
	}

	updated, err := ctrl().Assign(taskID, coordinatorID)
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, lifecycle.ErrConflict):
			// Lost the race to another coordinator
			c.JSON(http.StatusConflict, gin.H{"error": "Task already accepted by another coordinator"})
		default:
			log.Println("Error accepting task:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error accepting task"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task accepted successfully",
		"task":    updated,
	})
}

// PickupTask transitions assigned → picked_up for the assigned coordinator
func PickupTask(c *gin.Context) {
	coordinatorID := middleware.GetUserID(c)
	taskID := c.Param("id")

	donation, err := ctrl().Get(taskID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if donation.VolunteerID == nil || *donation.VolunteerID != coordinatorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned coordinator for this task"})
		return
	}

	if err := statemachine.CanTransition(donation.Status, models.StatusPickedUp, statemachine.ActorCoordinator); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":             "Invalid state transition",
			"current_status":    donation.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(donation.Status),
		})
		return
	}

	updated, err := ctrl().MarkPickedUp(taskID, coordinatorID)
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, lifecycle.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Task is no longer in a state that can be picked up"})
		default:
			log.Println("Error confirming pickup:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error confirming pickup"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pickup confirmed",
		"task":    updated,
	})
}

// DeliverTask transitions picked_up → delivered. Terminal.
func DeliverTask(c *gin.Context) {
	coordinatorID := middleware.GetUserID(c)
	taskID := c.Param("id")

	donation, err := ctrl().Get(taskID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if donation.VolunteerID == nil || *donation.VolunteerID != coordinatorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned coordinator for this task"})
		return
	}

	if err := statemachine.CanTransition(donation.Status, models.StatusDelivered, statemachine.ActorCoordinator); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":             "Invalid state transition",
			"current_status":    donation.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(donation.Status),
		})
		return
	}

	updated, err := ctrl().MarkDelivered(taskID, coordinatorID)
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, lifecycle.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Task is no longer in a state that can be delivered"})
		default:
			log.Println("Error confirming delivery:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error confirming delivery"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery confirmed",
		"task":    updated,
	})
}
