// filepath: internal/services/info_service.go
package services

import (
	"time"

	"github.com/Popap2/forymusic/internal/models"
)

var _ InfoService = (*infoService)(nil)

type infoService struct {
	Version       string
	StartTime     time.Time
	RemoteStorage bool
}

// NewInfoService creates a new InfoService.
func NewInfoService(version string, startTime time.Time, remoteStorage bool) *infoService {
	return &infoService{
		Version:       version,
		StartTime:     startTime,
		RemoteStorage: remoteStorage,
	}
}

// GetInfo retrieves the application information.
func (s *infoService) GetInfo() models.Info {
	return models.Info{
		ServiceName:   "ForyMusic-API",
		Version:       s.Version,
		UptimeSince:   s.StartTime,
		RemoteStorage: s.RemoteStorage,
	}
}
