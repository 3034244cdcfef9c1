// filepath: internal/repository/dbtx.go
package repository

import (
	"database/sql"

	"github.com/Popap2/forymusic/internal/models"
)

// Tx is a wrapper around *sql.Tx that provides transactional database operations.
type Tx struct {
	*sql.Tx
	repo *Repository
}

// BeginTx starts a transaction on the repository's database handle.
func (s *Repository) BeginTx() (*Tx, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, repo: s}, nil
}

// CreateTrackInTx inserts a track row within the transaction.
func (tx *Tx) CreateTrackInTx(args *TrackCreateArgs) (*models.Track, error) {
	query := `
		INSERT INTO tracks (title, artist, url, owner_email)
		VALUES (?, ?, ?, ?)
	`
	result, err := tx.Exec(query, args.Title, args.Artist, args.URL, args.OwnerEmail)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Track{
		ID:         id,
		Title:      args.Title,
		Artist:     args.Artist,
		URL:        args.URL,
		OwnerEmail: args.OwnerEmail,
	}, nil
}

// DeletePendingUploadInTx clears a ledger row within the transaction.
// The upload pipeline pairs it with CreateTrackInTx so the recorded
// track and its cleared ledger row commit together.
func (tx *Tx) DeletePendingUploadInTx(id int64) error {
	_, err := tx.Exec("DELETE FROM pending_uploads WHERE id = ?", id)
	return err
}

// Commit finishes the transaction and invalidates the read caches the
// writes above touched.
func (tx *Tx) Commit() error {
	if err := tx.Tx.Commit(); err != nil {
		return err
	}
	tx.repo.Cache.Delete(tracksListCacheKey)
	return nil
}
