package handlers

import (
	"io"
	"net/http"

	"stayledger/services/payment"

	"github.com/gin-gonic/gin"
)

// Stripe webhook payloads are small; anything larger is rejected.
const maxWebhookBody = int64(65536)

type PaymentHandler struct {
	PaymentService payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{PaymentService: svc}
}

// CreateOrderHandler opens a payment for a generated bill and returns the client secret.
func (h *PaymentHandler) CreateOrderHandler(c *gin.Context) {
	order, err := h.PaymentService.CreateOrder(c.Request.Context(), c.Param("billID"))
	if err != nil {
		respondError(c, "Failed to create payment order", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// StripeWebhookHandler verifies and applies a gateway event.
func (h *PaymentHandler) StripeWebhookHandler(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.PaymentService.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		respondError(c, "Webhook rejected", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
