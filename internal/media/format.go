// filepath: internal/media/format.go
// Package media knows about the audio formats the catalog accepts and
// reads metadata out of them.
package media

import (
	"path/filepath"
	"strings"
)

// contentTypes maps accepted audio file extensions to their MIME type.
var contentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".mp4":  "audio/mp4",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".flac": "audio/flac",
	".wav":  "audio/wav",
}

// IsAudioFileName reports whether the file name carries an accepted
// audio extension.
func IsAudioFileName(name string) bool {
	_, ok := contentTypes[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ContentTypeForName returns the MIME type for a file name, falling
// back to a generic binary type for unknown extensions.
func ContentTypeForName(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}
