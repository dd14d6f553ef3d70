package handlers

import (
	"net/http"

	"apnakam/models"
	"apnakam/services/user"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Users user.UserService
}

// GetProfileHandler returns the authenticated user's profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	profile, err := h.Users.GetProfile(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler applies a partial update to the authenticated user's profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	var patch models.ProfileUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.Users.UpdateProfile(c.Request.Context(), callerID(c), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) ToggleFavoriteHandler(c *gin.Context) {
	isFavorite, err := h.Users.ToggleFavorite(c.Request.Context(), callerID(c), c.Param("workerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workerId": c.Param("workerId"), "isFavorite": isFavorite})
}

func (h *UserHandler) ListFavoritesHandler(c *gin.Context) {
	favorites, err := h.Users.ListFavorites(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": favorites})
}

func (h *UserHandler) SuggestSkillsHandler(c *gin.Context) {
	var req struct {
		WorkerDetails string `json:"workerDetails" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.Users.SuggestSkills(c.Request.Context(), req.WorkerDetails)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
