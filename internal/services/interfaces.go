// filepath: internal/services/interfaces.go
package services

import (
	"context"
	"mime/multipart"

	"github.com/Popap2/forymusic/internal/models"
	"github.com/Popap2/forymusic/internal/repository"
)

// Auditor defines the interface for recording security-relevant events.
type Auditor interface {
	// Log records an event.
	// ctx: context to trace request IDs (if available)
	// action: what happened (e.g., "account.register", "track.delete")
	// actor: who did it (email or "admin")
	// resource: what was affected (e.g., "Account:3", "Track:101")
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}

// AccountService defines the interface for listener account management.
type AccountService interface {
	Register(email, password string) (*models.Account, error)
	Authenticate(email, password string) (*models.Account, error)
	GetAccountByID(id int64) (*models.Account, error)
	ReplaceLikes(id int64, likes models.Likes) (*models.Account, error)
	ReplacePlaylists(id int64, playlists models.Playlists) (*models.Account, error)
}

// TrackService defines the interface for the track catalog.
type TrackService interface {
	ListTracks() ([]models.Track, error)
	CreateTrack(args repository.TrackCreateArgs) (*models.Track, error)
	UpdateTrack(id int64, title, artist string) (*models.Track, error)
	DeleteTrack(id int64) error
}

// UploadMeta carries the caller-supplied metadata for a file upload.
type UploadMeta struct {
	Title      string
	Artist     string
	OwnerEmail string
}

// UploadService defines the interface for the track upload pipeline.
type UploadService interface {
	Upload(file multipart.File, header *multipart.FileHeader, meta UploadMeta) (*models.Track, error)
}

// ReconcileService defines the interface for the pending-upload sweep.
type ReconcileService interface {
	Start() error
	Stop()
	SweepOnce() (*models.ReconcileReport, error)
}
