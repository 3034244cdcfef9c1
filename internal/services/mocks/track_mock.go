// filepath: internal/services/mocks/track_mock.go
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/Popap2/forymusic/internal/models"
	"github.com/Popap2/forymusic/internal/repository"
	"github.com/Popap2/forymusic/internal/services"
)

// MockTrackService is a mock implementation of services.TrackService
type MockTrackService struct {
	mock.Mock
}

// Compile-time check to ensure interface compliance
var _ services.TrackService = (*MockTrackService)(nil)

func (m *MockTrackService) ListTracks() ([]models.Track, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Track), args.Error(1)
}

func (m *MockTrackService) CreateTrack(cArgs repository.TrackCreateArgs) (*models.Track, error) {
	args := m.Called(cArgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Track), args.Error(1)
}

func (m *MockTrackService) UpdateTrack(id int64, title, artist string) (*models.Track, error) {
	args := m.Called(id, title, artist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Track), args.Error(1)
}

func (m *MockTrackService) DeleteTrack(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}
