package handlers

import (
	"errors"
	"net/http"

	"apnakam/services/apperrors"
	"apnakam/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses and the shared error body.
func respondError(c *gin.Context, err error) {
	var (
		ve *apperrors.ValidationError
		nf *apperrors.NotFoundError
		it *apperrors.InvalidTransitionError
		ae *apperrors.AuthorizationError
		te *apperrors.TransactionError
	)
	switch {
	case errors.As(err, &ve):
		utils.JSONErrorCode(c, http.StatusBadRequest, ve.Code, ve.Message, ve.Field)
	case errors.As(err, &nf):
		utils.JSONErrorCode(c, http.StatusNotFound, "not_found", nf.Error(), "")
	case errors.As(err, &it):
		utils.JSONErrorCode(c, http.StatusConflict, "invalid_transition", it.Error(), it.Reason)
	case errors.As(err, &ae):
		utils.JSONErrorCode(c, http.StatusForbidden, "forbidden", "You are not allowed to do that", ae.Action)
	case errors.As(err, &te):
		c.Header("Retry-After", "1")
		utils.JSONErrorCode(c, http.StatusServiceUnavailable, "transaction_failed", "Please try again", "")
	default:
		getLogger(c).Error("Unhandled service error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func badRequest(c *gin.Context, err error) {
	utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_input", "Invalid request", err.Error())
}

// callerID returns the authenticated user set by the auth middleware.
func callerID(c *gin.Context) string {
	return c.GetString("userID")
}
