package handlers

import (
	"net/http"

	"apnakam/models"
	"apnakam/services/review"
	"apnakam/services/search"
	"apnakam/services/user"

	"github.com/gin-gonic/gin"
)

// WorkerHandler serves the public worker directory.
type WorkerHandler struct {
	Search  search.SearchService
	Users   user.UserService
	Reviews review.ReviewService
}

// SearchWorkersHandler reads q, pincode and repeated category parameters.
func (h *WorkerHandler) SearchWorkersHandler(c *gin.Context) {
	input := models.SearchWorkersInput{
		Query:      c.Query("q"),
		Pincode:    c.Query("pincode"),
		Categories: c.QueryArray("category"),
	}
	workers, err := h.Search.SearchWorkers(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

func (h *WorkerHandler) GetWorkerHandler(c *gin.Context) {
	w, err := h.Users.GetWorker(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkerHandler) ListReviewsHandler(c *gin.Context) {
	reviews, err := h.Reviews.ListReviewsForWorker(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *WorkerHandler) SummarizeReviewsHandler(c *gin.Context) {
	summary, err := h.Reviews.SummarizeReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
