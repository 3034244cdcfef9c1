// filepath: internal/api/handlers/upload_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Popap2/forymusic/internal/services"
)

// UploadTrack accepts an audio file plus metadata and runs the upload
// pipeline: stage, offload (or promote locally), record.
// @Summary Upload a track file
// @Description Stores the audio payload and creates the catalog row in one request. Admin only.
// @Tags tracks
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file"
// @Param title formData string true "Track title"
// @Param artist formData string false "Track artist (falls back to the file's ID3 tag)"
// @Param owner_email formData string false "Advisory uploader email"
// @Param token formData string false "Admin secret when the X-Admin-Token header is not used"
// @Success 201 {object} models.Track
// @Failure 400 {object} ErrorResponse "Missing title or empty payload"
// @Failure 403 {object} ErrorResponse "Admin token missing or invalid"
// @Failure 413 {object} ErrorResponse "Payload exceeds the configured size limit"
// @Failure 500 {object} ErrorResponse "Staging or object storage failure"
// @Security AdminToken
// @Router /api/tracks/upload [post]
func (h *Handlers) UploadTrack(w http.ResponseWriter, r *http.Request) {
	// Cap the whole request body, not just the in-memory spool: without
	// this, an oversized file part streams to disk unchecked and can
	// fill the staging volume.
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSizeBytes)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSizeBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Uploaded file exceeds the configured size limit")
			return
		}
		respondWithError(w, http.StatusBadRequest, "Could not parse multipart form (check size limits)")
		return
	}
	// Drop the transport-spooled temp file no matter how the request ends.
	defer func() {
		if r.MultipartForm != nil {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				h.Logger.Warnf("Failed to clean up multipart form: %v", err)
			}
		}
	}()

	// The guard runs before the payload is touched.
	if !h.authorizeAdmin(w, r, r.FormValue("token")) {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing 'file' part in form data")
		return
	}
	defer file.Close()

	meta := services.UploadMeta{
		Title:      r.FormValue("title"),
		Artist:     r.FormValue("artist"),
		OwnerEmail: r.FormValue("owner_email"),
	}

	track, err := h.Upload.Upload(file, header, meta)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	actor := meta.OwnerEmail
	if actor == "" {
		actor = "admin"
	}
	h.Auditor.Log(r.Context(), "track.upload", actor, fmt.Sprintf("Track:%d", track.ID), map[string]interface{}{
		"filename": header.Filename,
		"title":    track.Title,
		"url":      track.URL,
	})
	respondWithJSON(w, http.StatusCreated, track)
}
