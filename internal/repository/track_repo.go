// filepath: internal/repository/track_repo.go
package repository

import (
	"database/sql"
	"errors"

	"github.com/Popap2/forymusic/internal/models"
)

// ErrTrackNotFound is returned when no track matches the given ID.
var ErrTrackNotFound = errors.New("track not found")

// tracksListCacheKey caches the full catalog listing between mutations.
const tracksListCacheKey = "tracks_list"

// TrackCreateArgs is the input for inserting a track row.
type TrackCreateArgs struct {
	Title      string
	Artist     string
	URL        string
	OwnerEmail string
}

// ListTracks returns every track ordered by descending ID (newest first).
// IDs are assigned monotonically, so the ordering is deterministic.
func (s *Repository) ListTracks() ([]models.Track, error) {
	if cached, found := s.Cache.Get(tracksListCacheKey); found {
		return cached.([]models.Track), nil
	}

	s.Logger.Debug("ListTracks: CACHE MISS. Querying DB.")
	query, args, err := s.Builder.
		Select("id", "title", "artist", "url", "owner_email").
		From("tracks").
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracks := make([]models.Track, 0)
	for rows.Next() {
		var track models.Track
		if err := rows.Scan(&track.ID, &track.Title, &track.Artist, &track.URL, &track.OwnerEmail); err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.Cache.Set(tracksListCacheKey, tracks, cacheTTL)
	return tracks, nil
}

// GetTrack fetches a single track row. It reads the database directly:
// the delete path depends on a fresh URL, not a cached one.
func (s *Repository) GetTrack(id int64) (*models.Track, error) {
	query := "SELECT id, title, artist, url, owner_email FROM tracks WHERE id = ?"
	var track models.Track
	err := s.DB.QueryRow(query, id).Scan(&track.ID, &track.Title, &track.Artist, &track.URL, &track.OwnerEmail)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTrackNotFound
		}
		return nil, err
	}
	return &track, nil
}

// CreateTrack inserts a new track row and returns the stored record.
func (s *Repository) CreateTrack(args *TrackCreateArgs) (*models.Track, error) {
	query := `
		INSERT INTO tracks (title, artist, url, owner_email)
		VALUES (?, ?, ?, ?)
	`
	result, err := s.DB.Exec(query, args.Title, args.Artist, args.URL, args.OwnerEmail)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	s.Logger.Debugf("CreateTrack: Track '%s' created with ID %d", args.Title, id)
	s.Cache.Delete(tracksListCacheKey)

	return &models.Track{
		ID:         id,
		Title:      args.Title,
		Artist:     args.Artist,
		URL:        args.URL,
		OwnerEmail: args.OwnerEmail,
	}, nil
}

// UpdateTrack modifies title and artist. The URL column is intentionally
// not part of the statement: once set it is the source of truth for
// where the bytes live.
func (s *Repository) UpdateTrack(id int64, title, artist string) error {
	query, args, err := s.Builder.
		Update("tracks").
		Set("title", title).
		Set("artist", artist).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return err
	}

	result, err := s.DB.Exec(query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTrackNotFound
	}

	s.Cache.Delete(tracksListCacheKey)
	return nil
}

// DeleteTrack removes a track row. Zero affected rows means the row
// vanished between lookup and delete, which callers treat as not found.
func (s *Repository) DeleteTrack(id int64) error {
	result, err := s.DB.Exec("DELETE FROM tracks WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTrackNotFound
	}

	s.Cache.Delete(tracksListCacheKey)
	return nil
}

// TrackExistsByURL reports whether any track references the given URL.
// The reconciliation sweep uses it to tell completed uploads from
// orphaned ones.
func (s *Repository) TrackExistsByURL(url string) (bool, error) {
	var id int64
	err := s.DB.QueryRow("SELECT id FROM tracks WHERE url = ? LIMIT 1", url).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
