// filepath: internal/media/tags.go
package media

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Tags holds the subset of embedded metadata the catalog cares about.
type Tags struct {
	Title  string
	Artist string
}

// ReadTags probes an MP3 file for its ID3 title and artist frames.
// Non-MP3 files and files without a tag yield empty Tags. Callers use
// the result as a fallback only, so they should treat errors as soft.
func ReadTags(path string) (Tags, error) {
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return Tags{}, nil
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Title", "Artist"}})
	if err != nil {
		return Tags{}, err
	}
	defer tag.Close()

	return Tags{
		Title:  strings.TrimSpace(tag.Title()),
		Artist: strings.TrimSpace(tag.Artist()),
	}, nil
}
