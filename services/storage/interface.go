package storage

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageKind is the folder an uploaded image belongs in.
type ImageKind string

const (
	KindAvatar    ImageKind = "avatar"
	KindPortfolio ImageKind = "portfolio"
)

// UploadedImage is the stored result of an upload.
type UploadedImage struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// StorageService defines the interface for image storage operations.
type StorageService interface {
	UploadImage(ctx context.Context, userID string, kind ImageKind, file io.Reader) (*UploadedImage, error)
	DeleteImage(ctx context.Context, publicID string) error
	ImageURL(publicID string) (string, error)
}

// Uploader is the subset of the Cloudinary upload API the service uses.
type Uploader interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// ParseKind validates a kind taken from a request path.
func ParseKind(s string) (ImageKind, bool) {
	switch ImageKind(s) {
	case KindAvatar, KindPortfolio:
		return ImageKind(s), true
	}
	return "", false
}
