package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

const rootFolder = "apnakam"

// CloudinaryStorageService stores user images on Cloudinary.
type CloudinaryStorageService struct {
	cld      *cloudinary.Cloudinary
	uploader Uploader
	logger   *zap.Logger
}

// NewCloudinaryStorageService builds the service from account credentials.
func NewCloudinaryStorageService(cloudName, apiKey, apiSecret string, logger *zap.Logger) (*CloudinaryStorageService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStorageService{cld: cld, uploader: &cld.Upload, logger: logger}, nil
}

// folderFor returns apnakam/<userId>/<kind>.
func folderFor(userID string, kind ImageKind) string {
	return path.Join(rootFolder, userID, string(kind))
}

// UploadImage uploads into the user's folder for kind and returns the
// permanent identifier with its delivery URL.
func (s *CloudinaryStorageService) UploadImage(ctx context.Context, userID string, kind ImageKind, file io.Reader) (*UploadedImage, error) {
	if userID == "" {
		return nil, errors.New("upload requires a user id")
	}
	if _, ok := ParseKind(string(kind)); !ok {
		return nil, fmt.Errorf("unknown image kind %q", kind)
	}

	result, err := s.uploader.Upload(ctx, file, uploader.UploadParams{Folder: folderFor(userID, kind)})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	if result.PublicID == "" {
		if result.Error.Message != "" {
			return nil, fmt.Errorf("upload rejected: %s", result.Error.Message)
		}
		return nil, errors.New("no public ID returned")
	}

	s.logger.Info("Image uploaded",
		zap.String("userID", userID),
		zap.String("kind", string(kind)),
		zap.String("publicID", result.PublicID),
	)
	return &UploadedImage{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

// DeleteImage deletes a file given its public ID.
func (s *CloudinaryStorageService) DeleteImage(ctx context.Context, publicID string) error {
	res, err := s.uploader.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if res != nil && res.Error.Message != "" {
		return fmt.Errorf("delete rejected: %s", res.Error.Message)
	}
	return nil
}

// ImageURL constructs the delivery URL for an image public ID.
func (s *CloudinaryStorageService) ImageURL(publicID string) (string, error) {
	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to get asset: %w", err)
	}
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to get URL string: %w", err)
	}
	return url, nil
}
