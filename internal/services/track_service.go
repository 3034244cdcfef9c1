// filepath: internal/services/track_service.go
package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Popap2/forymusic/internal/models"
	"github.com/Popap2/forymusic/internal/repository"
)

// Compile-time check to ensure interface is implemented
var _ TrackService = (*trackService)(nil)

// trackService handles business logic for the track catalog.
type trackService struct {
	Repo    *repository.Repository
	Storage *StorageService
	Logger  *logrus.Logger
}

// NewTrackService creates a new TrackService.
func NewTrackService(repo *repository.Repository, storage *StorageService, logger *logrus.Logger) *trackService {
	return &trackService{Repo: repo, Storage: storage, Logger: logger}
}

// ListTracks returns the whole catalog, newest first.
func (s *trackService) ListTracks() ([]models.Track, error) {
	tracks, err := s.Repo.ListTracks()
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	return tracks, nil
}

// CreateTrack records a track whose audio already lives at an external
// URL. No bytes move through this path.
func (s *trackService) CreateTrack(args repository.TrackCreateArgs) (*models.Track, error) {
	args.Title = strings.TrimSpace(args.Title)
	args.Artist = strings.TrimSpace(args.Artist)
	if args.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if err := validateTrackURL(args.URL); err != nil {
		return nil, err
	}

	track, err := s.Repo.CreateTrack(&args)
	if err != nil {
		s.Logger.Errorf("TrackService: failed to create track '%s': %v", args.Title, err)
		return nil, fmt.Errorf("failed to create track: %w", err)
	}
	return track, nil
}

// UpdateTrack changes a track's title and artist. The URL is fixed at
// creation; repointing a track at different audio is not an edit.
func (s *trackService) UpdateTrack(id int64, title, artist string) (*models.Track, error) {
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	if err := s.Repo.UpdateTrack(id, title, artist); err != nil {
		if errors.Is(err, repository.ErrTrackNotFound) {
			return nil, fmt.Errorf("%w: track %d", ErrNotFound, id)
		}
		s.Logger.Errorf("TrackService: failed to update track %d: %v", id, err)
		return nil, fmt.Errorf("failed to update track: %w", err)
	}

	// Re-fetch so the caller sees the final stored state.
	track, err := s.Repo.GetTrack(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated track: %w", err)
	}
	return track, nil
}

// DeleteTrack removes a track row and, for locally stored audio, the
// backing file. File removal is best effort: the catalog row is the
// source of truth and a leftover file never blocks the delete.
func (s *trackService) DeleteTrack(id int64) error {
	track, err := s.Repo.GetTrack(id)
	if err != nil {
		if errors.Is(err, repository.ErrTrackNotFound) {
			return fmt.Errorf("%w: track %d", ErrNotFound, id)
		}
		return fmt.Errorf("failed to look up track: %w", err)
	}

	if err := s.Repo.DeleteTrack(id); err != nil {
		if errors.Is(err, repository.ErrTrackNotFound) {
			return fmt.Errorf("%w: track %d", ErrNotFound, id)
		}
		s.Logger.Errorf("TrackService: failed to delete track %d: %v", id, err)
		return fmt.Errorf("failed to delete track: %w", err)
	}

	if strings.HasPrefix(track.URL, LocalURLPrefix) {
		go func(url string) {
			if err := s.Storage.DeleteUploadByURL(url); err != nil {
				s.Logger.Warnf("TrackService: failed to remove file for deleted track %d (%s): %v", id, url, err)
			}
		}(track.URL)
	}

	s.Logger.Infof("TrackService: track deleted: %d", id)
	return nil
}

// validateTrackURL accepts absolute http(s) URLs and local upload
// paths.
func validateTrackURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: url is required", ErrValidation)
	}
	if strings.HasPrefix(raw, LocalURLPrefix) {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: url must be absolute http(s) or a local upload path", ErrValidation)
	}
	return nil
}
