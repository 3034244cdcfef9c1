// filepath: internal/storage/file.go
package storage

import (
	"fmt"
	"io"
	"os"

	"github.com/Popap2/forymusic/internal/shared"
)

// SaveFile streams upload data to a new file at path. The file is
// created exclusively so a name collision surfaces as an error instead
// of silently overwriting another upload. Empty payloads are rejected
// and leave nothing behind.
func SaveFile(fileData io.Reader, path string) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return 0, fmt.Errorf("could not create file: %w", err)
	}

	fileSize, err := io.Copy(f, fileData)
	if err != nil {
		f.Close()
		os.Remove(path)
		return 0, fmt.Errorf("could not write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("could not finalize file: %w", err)
	}

	if fileSize == 0 {
		os.Remove(path)
		return 0, shared.ErrEmptyPayload
	}

	return fileSize, nil
}

// RemoveFile deletes a file and treats an already-missing file as
// success. Cleanup paths call it after partial failures, so the file
// may legitimately be gone.
func RemoveFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not remove file: %w", err)
	}
	return nil
}
