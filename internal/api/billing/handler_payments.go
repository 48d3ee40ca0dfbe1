package billing

import (
	"net/http"

	"consultoc-api/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// GetPaymentHistory lists the confirmed payment ledger for admins.
func (h *Handler) GetPaymentHistory(c *gin.Context) {
	payments, err := h.payments.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("load payments failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}
	if payments == nil {
		payments = []billing.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}
