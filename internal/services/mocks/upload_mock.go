// filepath: internal/services/mocks/upload_mock.go
package mocks

import (
	"mime/multipart"

	"github.com/stretchr/testify/mock"

	"github.com/Popap2/forymusic/internal/models"
	"github.com/Popap2/forymusic/internal/services"
)

// MockUploadService is a mock implementation of services.UploadService
type MockUploadService struct {
	mock.Mock
}

// Compile-time check to ensure interface compliance
var _ services.UploadService = (*MockUploadService)(nil)

func (m *MockUploadService) Upload(file multipart.File, header *multipart.FileHeader, meta services.UploadMeta) (*models.Track, error) {
	args := m.Called(file, header, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Track), args.Error(1)
}
