// filepath: internal/api/handlers/track_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Popap2/forymusic/internal/repository"
)

// TrackCreateRequest is the payload for registering a track by URL.
// Token may carry the admin secret when the header is not used.
type TrackCreateRequest struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	URL        string `json:"url"`
	OwnerEmail string `json:"owner_email,omitempty"`
	Token      string `json:"token,omitempty"`
}

// TrackUpdateRequest is the payload for editing track metadata.
type TrackUpdateRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Token  string `json:"token,omitempty"`
}

// ListTracks returns the full catalog, newest first.
// @Summary List tracks
// @Description Returns all tracks ordered by insertion, newest first.
// @Tags tracks
// @Produce json
// @Success 200 {array} models.Track
// @Router /api/tracks [get]
func (h *Handlers) ListTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.Track.ListTracks()
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tracks)
}

// CreateTrack registers a track that already lives at some URL.
// @Summary Create a track by URL
// @Description Adds a catalog row pointing at an existing audio URL. Admin only.
// @Tags tracks
// @Accept json
// @Produce json
// @Param track body TrackCreateRequest true "Track metadata and URL"
// @Success 201 {object} models.Track
// @Failure 400 {object} ErrorResponse "Missing title or unusable URL"
// @Failure 403 {object} ErrorResponse "Admin token missing or invalid"
// @Security AdminToken
// @Router /api/tracks [post]
func (h *Handlers) CreateTrack(w http.ResponseWriter, r *http.Request) {
	var req TrackCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if !h.authorizeAdmin(w, r, req.Token) {
		return
	}

	track, err := h.Track.CreateTrack(repository.TrackCreateArgs{
		Title:      req.Title,
		Artist:     req.Artist,
		URL:        req.URL,
		OwnerEmail: req.OwnerEmail,
	})
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	h.Auditor.Log(r.Context(), "track.create", "admin", fmt.Sprintf("Track:%d", track.ID), map[string]interface{}{
		"title": track.Title,
		"url":   track.URL,
	})
	respondWithJSON(w, http.StatusCreated, track)
}

// UpdateTrack edits the title and artist of an existing track.
// @Summary Update track metadata
// @Description Changes title and artist. The URL is immutable. Admin only.
// @Tags tracks
// @Accept json
// @Produce json
// @Param id path int true "Track ID"
// @Param track body TrackUpdateRequest true "New metadata"
// @Success 200 {object} models.Track
// @Failure 400 {object} ErrorResponse "Missing title"
// @Failure 403 {object} ErrorResponse "Admin token missing or invalid"
// @Failure 404 {object} ErrorResponse "Track not found"
// @Security AdminToken
// @Router /api/tracks/{id} [put]
func (h *Handlers) UpdateTrack(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	var req TrackUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if !h.authorizeAdmin(w, r, req.Token) {
		return
	}

	track, err := h.Track.UpdateTrack(id, req.Title, req.Artist)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	h.Auditor.Log(r.Context(), "track.update", "admin", fmt.Sprintf("Track:%d", track.ID), map[string]interface{}{
		"title":  track.Title,
		"artist": track.Artist,
	})
	respondWithJSON(w, http.StatusOK, track)
}

// DeleteTrack removes a track and, for local uploads, its file.
// @Summary Delete a track
// @Description Removes the catalog row. Locally stored audio is deleted best-effort. Admin only.
// @Tags tracks
// @Produce json
// @Param id path int true "Track ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse "Admin token missing or invalid"
// @Failure 404 {object} ErrorResponse "Track not found"
// @Security AdminToken
// @Router /api/tracks/{id} [delete]
func (h *Handlers) DeleteTrack(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	if !h.authorizeAdmin(w, r, "") {
		return
	}

	if err := h.Track.DeleteTrack(id); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	h.Auditor.Log(r.Context(), "track.delete", "admin", fmt.Sprintf("Track:%d", id), nil)
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Track deleted successfully."})
}
