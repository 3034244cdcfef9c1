// filepath: internal/storage/paths.go
// Package storage manages the on-disk layout for staged and published
// upload files.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/Popap2/forymusic/internal/shared"
)

// maxBaseNameLen keeps generated names comfortably inside filesystem
// limits even after the ULID prefix and extension are added.
const maxBaseNameLen = 100

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// EnsureDirs creates every directory the service writes into.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SanitizeBaseName reduces a client-supplied file name to a safe base
// name: the extension is dropped and anything outside [a-zA-Z0-9_-]
// collapses to a single underscore.
func SanitizeBaseName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = unsafeNameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	if base == "" {
		base = "track"
	}
	if len(base) > maxBaseNameLen {
		base = base[:maxBaseNameLen]
	}
	return base
}

// StagedName builds a collision-free object name for an upload. The
// ULID prefix keeps names unique and roughly time-ordered; the
// sanitized base name keeps them recognizable to a human browsing the
// bucket.
func StagedName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".mp3"
	}
	return ulid.Make().String() + "_" + SanitizeBaseName(originalName) + ext
}

// SafeJoin joins a file name onto a root directory and rejects any
// name that would escape the root.
func SafeJoin(root, name string) (string, error) {
	cleanedRoot := filepath.Clean(root)
	joined := filepath.Clean(filepath.Join(cleanedRoot, name))
	if joined == cleanedRoot || !strings.HasPrefix(joined, cleanedRoot+string(filepath.Separator)) {
		return "", shared.ErrUnsafePath
	}
	return joined, nil
}
