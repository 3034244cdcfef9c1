// filepath: internal/services/mocks/info_mock.go
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/Popap2/forymusic/internal/models"
	"github.com/Popap2/forymusic/internal/services"
)

// MockInfoService is a mock implementation of services.InfoService
type MockInfoService struct {
	mock.Mock
}

// Compile-time check to ensure interface compliance
var _ services.InfoService = (*MockInfoService)(nil)

func (m *MockInfoService) GetInfo() models.Info {
	args := m.Called()
	return args.Get(0).(models.Info)
}
