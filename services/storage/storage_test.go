package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	args := m.Called(ctx, file, params)
	r, _ := args.Get(0).(*uploader.UploadResult)
	return r, args.Error(1)
}

func (m *mockUploader) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	args := m.Called(ctx, params)
	r, _ := args.Get(0).(*uploader.DestroyResult)
	return r, args.Error(1)
}

func TestUploadImage_UsesUserFolder(t *testing.T) {
	up := new(mockUploader)
	svc := &CloudinaryStorageService{uploader: up, logger: zap.NewNop()}
	body := strings.NewReader("png-bytes")

	up.On("Upload", mock.Anything, body, uploader.UploadParams{Folder: "apnakam/u1/portfolio"}).
		Return(&uploader.UploadResult{PublicID: "apnakam/u1/portfolio/abc", SecureURL: "https://res.cloudinary.com/x/abc.png"}, nil)

	img, err := svc.UploadImage(context.Background(), "u1", KindPortfolio, body)
	require.NoError(t, err)
	assert.Equal(t, "apnakam/u1/portfolio/abc", img.PublicID)
	assert.Equal(t, "https://res.cloudinary.com/x/abc.png", img.URL)
	up.AssertExpectations(t)
}

func TestUploadImage_RejectsUnknownKind(t *testing.T) {
	svc := &CloudinaryStorageService{uploader: new(mockUploader), logger: zap.NewNop()}
	_, err := svc.UploadImage(context.Background(), "u1", ImageKind("resume"), strings.NewReader(""))
	assert.Error(t, err)
}

func TestUploadImage_MissingPublicID(t *testing.T) {
	up := new(mockUploader)
	svc := &CloudinaryStorageService{uploader: up, logger: zap.NewNop()}
	up.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(&uploader.UploadResult{}, nil)

	_, err := svc.UploadImage(context.Background(), "u1", KindAvatar, strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("avatar")
	assert.True(t, ok)
	assert.Equal(t, KindAvatar, k)

	_, ok = ParseKind("kyc")
	assert.False(t, ok)
}
