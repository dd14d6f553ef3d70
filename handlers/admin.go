package handlers

import (
	"errors"
	"net/http"

	"apnakam/models"
	"apnakam/services/admin"
	"apnakam/services/blog"
	"apnakam/services/contact"
	"apnakam/services/user"
	"apnakam/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Admin   admin.AdminService
	Users   user.UserService
	Contact contact.ContactService
	Blog    blog.BlogService
}

func (ah *AdminHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := ah.Admin.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid username or password", "")
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetAllUsersHandler returns all users.
func (ah *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := ah.Users.GetAllUsers(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to fetch all users", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (ah *AdminHandler) StatsHandler(c *gin.Context) {
	stats, err := ah.Admin.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ah *AdminHandler) ApproveWorkerHandler(c *gin.Context) {
	var req struct {
		Approved *bool `json:"approved" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := ah.Users.ApproveWorker(c.Request.Context(), c.Param("id"), *req.Approved); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workerId": c.Param("id"), "approved": *req.Approved})
}

func (ah *AdminHandler) ListContactMessagesHandler(c *gin.Context) {
	msgs, err := ah.Contact.ListMessages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (ah *AdminHandler) CreatePostHandler(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	post, err := ah.Blog.CreatePost(c.Request.Context(), req.Title, req.Description, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (ah *AdminHandler) DeletePostHandler(c *gin.Context) {
	if err := ah.Blog.DeletePost(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ah *AdminHandler) GenerateDraftHandler(c *gin.Context) {
	var req models.BlogDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	content, err := ah.Blog.GenerateDraft(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

// LegalHandler serves legal documents, optionally filtered by ?audience=.
func (ah *AdminHandler) LegalHandler(c *gin.Context) {
	audience := c.Query("audience")
	if audience == "" {
		c.JSON(http.StatusOK, gin.H{"sections": ah.Admin.GetLegalSections()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": ah.Admin.GetLegalSectionsFor(audience)})
}
