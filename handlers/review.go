package handlers

import (
	"net/http"

	"apnakam/models"
	"apnakam/services/review"
	"apnakam/services/user"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	Reviews review.ReviewService
	Users   user.UserService
}

// SubmitReviewHandler records the caller's review of a completed booking.
// Name and avatar come from the caller's profile; the body only fills fields
// the profile leaves empty.
func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	var input models.SubmitReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	input.CustomerID = callerID(c)

	if profile, err := h.Users.GetProfile(c.Request.Context(), input.CustomerID); err == nil {
		if profile.Name != "" {
			input.CustomerName = profile.Name
		}
		if profile.Avatar != "" {
			input.CustomerAvatar = profile.Avatar
		}
	}

	r, err := h.Reviews.SubmitReview(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}
