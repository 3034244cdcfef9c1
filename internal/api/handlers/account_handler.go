// filepath: internal/api/handlers/account_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Popap2/forymusic/internal/models"
)

// CredentialsRequest is the payload for register and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LikesRequest is the payload for replacing an account's liked tracks.
type LikesRequest struct {
	Likes models.Likes `json:"likes"`
}

// PlaylistsRequest is the payload for replacing an account's playlists.
type PlaylistsRequest struct {
	Playlists models.Playlists `json:"playlists"`
}

// Register creates a new listener account.
// @Summary Register a new account
// @Description Creates a listener account from an email and password.
// @Tags accounts
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Email and password"
// @Success 201 {object} models.Account
// @Failure 400 {object} ErrorResponse "Invalid email or password"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /api/register [post]
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	account, err := h.Account.Register(req.Email, req.Password)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	h.Auditor.Log(r.Context(), "account.register", account.Email, fmt.Sprintf("Account:%d", account.ID), nil)
	respondWithJSON(w, http.StatusCreated, account)
}

// Login verifies listener credentials.
// @Summary Log in
// @Description Checks an email and password pair and returns the account.
// @Tags accounts
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Email and password"
// @Success 200 {object} models.Account
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /api/login [post]
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	account, err := h.Account.Authenticate(req.Email, req.Password)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	h.Auditor.Log(r.Context(), "account.login", account.Email, fmt.Sprintf("Account:%d", account.ID), nil)
	respondWithJSON(w, http.StatusOK, account)
}

// GetAccount returns a single account by ID.
// @Summary Get account
// @Description Fetches an account with its likes and playlists.
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} models.Account
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /api/account/{id} [get]
func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}

	account, err := h.Account.GetAccountByID(id)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, account)
}

// UpdateLikes replaces an account's liked tracks wholesale.
// @Summary Replace likes
// @Description Overwrites the account's full list of liked tracks.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param likes body LikesRequest true "Replacement likes list"
// @Success 200 {object} models.Account
// @Failure 400 {object} ErrorResponse "Empty like entry"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /api/account/{id}/likes [put]
func (h *Handlers) UpdateLikes(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}

	var req LikesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	account, err := h.Account.ReplaceLikes(id, req.Likes)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, account)
}

// UpdatePlaylists replaces an account's playlists wholesale.
// @Summary Replace playlists
// @Description Overwrites the account's full set of playlists.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param playlists body PlaylistsRequest true "Replacement playlists"
// @Success 200 {object} models.Account
// @Failure 400 {object} ErrorResponse "Playlist without a name"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /api/account/{id}/playlists [put]
func (h *Handlers) UpdatePlaylists(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}

	var req PlaylistsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	account, err := h.Account.ReplacePlaylists(id, req.Playlists)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, account)
}
