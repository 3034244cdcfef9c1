// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

import (
	"encoding/json"
	"time"
)

// Info represents general information about the service.
type Info struct {
	ServiceName   string    `json:"service_name"`
	Version       string    `json:"version"`
	UptimeSince   time.Time `json:"uptime_since"`
	RemoteStorage bool      `json:"remote_storage"`
}

// Account represents a registered listener.
// The password hash is internal state and never serialized to clients.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Likes        Likes     `json:"likes"`
	Playlists    Playlists `json:"playlists"`
}

// Likes is the ordered list of track references a listener has liked.
type Likes []string

// Playlist groups track references under a listener-chosen name.
type Playlist struct {
	Name   string   `json:"name"`
	Tracks []string `json:"tracks"`
}

// Playlists is the ordered list of a listener's playlists.
type Playlists []Playlist

// Track represents one catalog entry. The URL points either at the local
// /uploads/ path on this host or at a public object-storage URL, and is
// immutable after creation. OwnerEmail is advisory metadata only.
type Track struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist,omitempty"`
	URL        string `json:"url"`
	OwnerEmail string `json:"owner_email,omitempty"`
}

// Upload locations recorded in the pending_uploads ledger.
const (
	UploadLocationLocal  = "local"
	UploadLocationRemote = "remote"
)

// PendingUpload is one ledger row for an upload whose bytes are durably
// placed but whose track row has not been confirmed. Rows that outlive
// the grace period are resolved by the reconciliation sweep.
type PendingUpload struct {
	ID         int64     `json:"id"`
	ObjectKey  string    `json:"object_key"`
	Location   string    `json:"location"`
	URL        string    `json:"url"`
	StagedPath string    `json:"staged_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReconcileReport summarizes one pass of the pending-upload sweep.
type ReconcileReport struct {
	Scanned       int `json:"scanned"`
	Completed     int `json:"completed"`
	Orphans       int `json:"orphans"`
	Failures      int `json:"failures"`
	StagingPurged int `json:"staging_purged"`
}

// ToJSON converts the likes list to its JSON column representation.
// A nil slice stores the same as an empty one.
func (l Likes) ToJSON() (string, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToJSON converts the playlists list to its JSON column representation.
func (p Playlists) ToJSON() (string, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// LikesFromJSON decodes a users.likes column value. Empty text counts as
// an empty list so rows created before the column existed scan fine.
func LikesFromJSON(raw string) (Likes, error) {
	if raw == "" {
		return Likes{}, nil
	}
	var l Likes
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		return nil, err
	}
	if l == nil {
		l = Likes{}
	}
	return l, nil
}

// PlaylistsFromJSON decodes a users.playlists column value.
func PlaylistsFromJSON(raw string) (Playlists, error) {
	if raw == "" {
		return Playlists{}, nil
	}
	var p Playlists
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err
	}
	if p == nil {
		p = Playlists{}
	}
	return p, nil
}
