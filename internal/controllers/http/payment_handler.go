package http

import (
	"errors"
	"io"
	"net/http"

	"shop-backend/internal/domain"
	"shop-backend/internal/infra/payment"
	"shop-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err.Error())
		return
	}

	sessionID, err := h.payments.CreateCheckoutSession(c.Request.Context(), req.OrderID)
	if err != nil {
		if domain.IsValidation(err) || errors.Is(err, services.ErrOrderNotFound) {
			h.respondError(c, err)
			return
		}
		// Gateway failure; the provider message goes through as-is.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
}

// StripeWebhook hands the raw body bytes to verification. Anything that
// re-serializes the payload on the way in would break the signature.
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		failure(c, http.StatusBadRequest, "failed to read payload")
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	if err := h.payments.HandleWebhook(c.Request.Context(), payload, sig); err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			c.String(http.StatusBadRequest, "Webhook Error: %v", err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process webhook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
