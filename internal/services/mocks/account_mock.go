// filepath: internal/services/mocks/account_mock.go
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/Popap2/forymusic/internal/models"
	"github.com/Popap2/forymusic/internal/services"
)

// MockAccountService is a mock implementation of services.AccountService
type MockAccountService struct {
	mock.Mock
}

// Compile-time check to ensure interface compliance
var _ services.AccountService = (*MockAccountService)(nil)

func (m *MockAccountService) Register(email, password string) (*models.Account, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) Authenticate(email, password string) (*models.Account, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(id int64) (*models.Account, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) ReplaceLikes(id int64, likes models.Likes) (*models.Account, error) {
	args := m.Called(id, likes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) ReplacePlaylists(id int64, playlists models.Playlists) (*models.Account, error) {
	args := m.Called(id, playlists)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}
