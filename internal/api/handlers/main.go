// filepath: internal/api/handlers/main.go
package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/Popap2/forymusic/internal/auth"
	"github.com/Popap2/forymusic/internal/config"
	"github.com/Popap2/forymusic/internal/services"
)

// Handlers holds the shared dependencies for all API handlers.
type Handlers struct {
	// --- Depend on interfaces, not concrete structs ---
	Info    services.InfoService
	Account services.AccountService
	Track   services.TrackService
	Upload  services.UploadService

	Guard   auth.Authorizer
	Auditor services.Auditor
	Cfg     *config.Config
	Logger  *logrus.Logger
}

// NewHandlers creates a new instance of Handlers with its dependencies.
// --- Accept interfaces as parameters ---
func NewHandlers(
	info services.InfoService,
	account services.AccountService,
	track services.TrackService,
	upload services.UploadService,
	guard auth.Authorizer,
	auditor services.Auditor,
	cfg *config.Config,
	logger *logrus.Logger,
) *Handlers {
	return &Handlers{
		Info:    info,
		Account: account,
		Track:   track,
		Upload:  upload,
		Guard:   guard,
		Auditor: auditor,
		Cfg:     cfg,
		Logger:  logger,
	}
}
