package handlers

import (
	"net/http"

	"apnakam/services/blog"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	Blog blog.BlogService
}

func (h *BlogHandler) ListPostsHandler(c *gin.Context) {
	posts, err := h.Blog.ListPosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *BlogHandler) GetPostHandler(c *gin.Context) {
	post, err := h.Blog.GetPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
