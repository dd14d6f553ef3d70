package handlers

import (
	"net/http"

	"apnakam/services/contact"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	Contact contact.ContactService
}

func (h *ContactHandler) SubmitContactHandler(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	msg, err := h.Contact.SaveContactMessage(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": msg.ID})
}
