package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KESA-RIKIN/zero-hunger-platform/statemachine"
)

// GetStateMachineInfo returns the full lifecycle state machine for
// informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.AllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"delivered"},
		"description":     "Food Donation Lifecycle State Machine",
	})
}
