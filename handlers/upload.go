package handlers

import (
	"net/http"
	"strings"

	"apnakam/models"
	"apnakam/services/apperrors"
	"apnakam/services/storage"
	"apnakam/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 5 << 20

// UploadHandler stores avatar and portfolio images.
type UploadHandler struct {
	Storage storage.StorageService
	Users   user.UserService
}

// UploadImageHandler accepts a multipart "file" and, for portfolio uploads,
// an optional "hint". The stored image is linked to the caller's profile.
func (h *UploadHandler) UploadImageHandler(c *gin.Context) {
	logger := getLogger(c)
	kind, ok := storage.ParseKind(c.Param("kind"))
	if !ok {
		respondError(c, apperrors.NewValidationError("kind", "kind must be avatar or portfolio"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperrors.NewValidationError("file", "file not provided"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respondError(c, apperrors.NewValidationError("file", "file must be at most 5 MB"))
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		respondError(c, apperrors.NewValidationError("file", "only images can be uploaded"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	userID := callerID(c)
	img, err := h.Storage.UploadImage(ctx, userID, kind, file)
	if err != nil {
		logger.Error("Image upload failed", zap.String("kind", string(kind)), zap.Error(err))
		respondError(c, err)
		return
	}

	switch kind {
	case storage.KindAvatar:
		_, err = h.Users.UpdateProfile(ctx, userID, models.ProfileUpdate{Avatar: &img.URL})
	case storage.KindPortfolio:
		err = h.Users.AddPortfolioItem(ctx, userID, models.PortfolioItem{
			URL:      img.URL,
			Hint:     c.PostForm("hint"),
			PublicID: img.PublicID,
		})
	}
	if err != nil {
		// Do not leave an orphaned asset behind.
		if delErr := h.Storage.DeleteImage(ctx, img.PublicID); delErr != nil {
			logger.Warn("Failed to remove orphaned upload", zap.String("publicID", img.PublicID), zap.Error(delErr))
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, img)
}
