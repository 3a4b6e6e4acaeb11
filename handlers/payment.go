package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProcessPaymentRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Source   string  `json:"source"`
}

// ProcessPayment simulates a payment provider for the donation flow. No real
// charge happens; it validates the amount, waits as a provider would, and
// returns a mock transaction id.
func ProcessPayment(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Amount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount is required"})
		return
	}
	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	// Simulate processing delay
	time.Sleep(1500 * time.Millisecond)

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Payment processed successfully",
		"transactionId": "txn_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9],
		"amount":        req.Amount,
		"currency":      currency,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}
