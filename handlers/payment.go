package handlers

import (
	"net/http"

	"apnakam/services/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Payments payment.PaymentService
}

func (h *PaymentHandler) CreateOrderHandler(c *gin.Context) {
	var req struct {
		WorkerID string `json:"workerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.Payments.CreateOrder(c.Request.Context(), callerID(c), req.WorkerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *PaymentHandler) VerifyPaymentHandler(c *gin.Context) {
	var req struct {
		IntentID string `json:"intentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Payments.VerifyPayment(c.Request.Context(), callerID(c), req.IntentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
