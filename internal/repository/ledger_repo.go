// filepath: internal/repository/ledger_repo.go
package repository

import (
	"time"

	"github.com/Popap2/forymusic/internal/models"
)

// CreatePendingUpload records that bytes for an upload are durably
// placed while the track row is not confirmed yet. The row is the
// explicit trace of the stage-to-record consistency window.
func (s *Repository) CreatePendingUpload(p *models.PendingUpload) (int64, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO pending_uploads (object_key, location, url, staged_path, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := s.DB.Exec(query, p.ObjectKey, p.Location, p.URL, p.StagedPath, p.CreatedAt.Unix())
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

// DeletePendingUpload clears a ledger row once the upload either
// completed or was fully cleaned up. Deleting an already-gone row is
// not an error; the sweep may race the request path.
func (s *Repository) DeletePendingUpload(id int64) error {
	_, err := s.DB.Exec("DELETE FROM pending_uploads WHERE id = ?", id)
	return err
}

// StalePendingUploads lists ledger rows created before the cutoff,
// oldest first. These are the candidates for reconciliation.
func (s *Repository) StalePendingUploads(cutoff time.Time) ([]models.PendingUpload, error) {
	query := `
		SELECT id, object_key, location, url, staged_path, created_at
		FROM pending_uploads
		WHERE created_at < ?
		ORDER BY created_at ASC
	`
	rows, err := s.DB.Query(query, cutoff.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pending := make([]models.PendingUpload, 0)
	for rows.Next() {
		var (
			p         models.PendingUpload
			createdAt int64
		)
		if err := rows.Scan(&p.ID, &p.ObjectKey, &p.Location, &p.URL, &p.StagedPath, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = time.Unix(createdAt, 0).UTC()
		pending = append(pending, p)
	}
	return pending, rows.Err()
}
