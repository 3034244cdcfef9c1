// filepath: internal/services/upload_service_test.go
package services

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"

	"github.com/Popap2/forymusic/internal/logging"
)

// fakeStore stands in for the remote object backend.
type fakeStore struct {
	objects    map[string][]byte
	removed    []string
	failUpload bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Upload(key string, body io.Reader, size int64, contentType string) (string, error) {
	if f.failUpload {
		return "", errors.New("backend rejected object")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.objects[key] = data
	return f.PublicURL(key), nil
}

func (f *fakeStore) Remove(key string) error {
	f.removed = append(f.removed, key)
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://store.test/storage/v1/object/public/songs/" + key
}

// makeUploadFile builds the multipart file pair a handler would pass in.
func makeUploadFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	assert.NoError(t, err)
	header := form.File["file"][0]
	file, err := header.Open()
	assert.NoError(t, err)
	return file, header
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestUploadLocalMode(t *testing.T) {
	repo, storageSvc, cfg, cleanup := setupIntegrationTest(t)
	defer cleanup()

	svc := NewUploadService(repo, storageSvc, nil, logging.NewLogger("error"))

	file, header := makeUploadFile(t, "Sommer Regen.mp3", []byte("ID3fake-audio-bytes"))
	track, err := svc.Upload(file, header, UploadMeta{Title: "Sommerregen", Artist: "Die Kapelle", OwnerEmail: "a@b.de"})

	assert.NoError(t, err)
	assert.NotZero(t, track.ID)
	assert.True(t, strings.HasPrefix(track.URL, "/uploads/"), "got %q", track.URL)
	assert.True(t, strings.HasSuffix(track.URL, "_Sommer_Regen.mp3"), "got %q", track.URL)

	// The published file holds the upload bytes, staging is empty again.
	published := filepath.Join(cfg.Storage.UploadsDir, strings.TrimPrefix(track.URL, "/uploads/"))
	data, err := os.ReadFile(published)
	assert.NoError(t, err)
	assert.Equal(t, "ID3fake-audio-bytes", string(data))
	assert.Empty(t, dirNames(t, cfg.Storage.StagingDir))

	// Settled uploads leave no ledger row behind.
	pending, err := repo.StalePendingUploads(time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.Empty(t, pending)
}

func TestUploadRemoteMode(t *testing.T) {
	repo, storageSvc, cfg, cleanup := setupIntegrationTest(t)
	defer cleanup()

	store := newFakeStore()
	svc := NewUploadService(repo, storageSvc, store, logging.NewLogger("error"))

	file, header := makeUploadFile(t, "take.mp3", []byte("remote-bytes"))
	track, err := svc.Upload(file, header, UploadMeta{Title: "Take One"})

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(track.URL, "https://store.test/"), "got %q", track.URL)

	assert.Len(t, store.objects, 1)
	for _, data := range store.objects {
		assert.Equal(t, "remote-bytes", string(data))
	}

	// Staged copy is gone, uploads dir never touched in remote mode.
	assert.Empty(t, dirNames(t, cfg.Storage.StagingDir))
	assert.Empty(t, dirNames(t, cfg.Storage.UploadsDir))

	pending, err := repo.StalePendingUploads(time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.Empty(t, pending)
}

func TestUploadRemoteFailureRejectsWithoutTrack(t *testing.T) {
	repo, storageSvc, cfg, cleanup := setupIntegrationTest(t)
	defer cleanup()

	store := newFakeStore()
	store.failUpload = true
	svc := NewUploadService(repo, storageSvc, store, logging.NewLogger("error"))

	file, header := makeUploadFile(t, "take.mp3", []byte("doomed-bytes"))
	_, err := svc.Upload(file, header, UploadMeta{Title: "Doomed"})

	assert.ErrorIs(t, err, ErrStorage)

	tracks, err := repo.ListTracks()
	assert.NoError(t, err)
	assert.Empty(t, tracks, "a rejected offload must not create a track")

	assert.Empty(t, dirNames(t, cfg.Storage.StagingDir), "staged temp file must be cleaned up")

	pending, err := repo.StalePendingUploads(time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.Empty(t, pending, "ledger row must be settled on a clean reject")
}

func TestUploadValidation(t *testing.T) {
	repo, storageSvc, cfg, cleanup := setupIntegrationTest(t)
	defer cleanup()

	svc := NewUploadService(repo, storageSvc, nil, logging.NewLogger("error"))

	file, header := makeUploadFile(t, "take.mp3", []byte("bytes"))
	_, err := svc.Upload(file, header, UploadMeta{Title: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Upload(nil, nil, UploadMeta{Title: "No File"})
	assert.ErrorIs(t, err, ErrValidation)

	emptyFile, emptyHeader := makeUploadFile(t, "empty.mp3", []byte{})
	_, err = svc.Upload(emptyFile, emptyHeader, UploadMeta{Title: "Empty"})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, dirNames(t, cfg.Storage.StagingDir))
	pending, err := repo.StalePendingUploads(time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.Empty(t, pending, "rejected requests must not open ledger rows")
}

func TestUploadArtistFallsBackToFileTags(t *testing.T) {
	repo, storageSvc, _, cleanup := setupIntegrationTest(t)
	defer cleanup()

	// Build a real tagged MP3 payload.
	tmp := filepath.Join(t.TempDir(), "tagged.mp3")
	assert.NoError(t, os.WriteFile(tmp, []byte{}, 0644))
	tag, err := id3v2.Open(tmp, id3v2.Options{Parse: true})
	assert.NoError(t, err)
	tag.SetArtist("Tagged Artist")
	assert.NoError(t, tag.Save())
	assert.NoError(t, tag.Close())
	content, err := os.ReadFile(tmp)
	assert.NoError(t, err)

	svc := NewUploadService(repo, storageSvc, nil, logging.NewLogger("error"))

	file, header := makeUploadFile(t, "tagged.mp3", content)
	track, err := svc.Upload(file, header, UploadMeta{Title: "Untitled Session"})

	assert.NoError(t, err)
	assert.Equal(t, "Tagged Artist", track.Artist)

	// An explicit artist always wins over the tag.
	file2, header2 := makeUploadFile(t, "tagged.mp3", content)
	track2, err := svc.Upload(file2, header2, UploadMeta{Title: "Named", Artist: "Explicit Artist"})
	assert.NoError(t, err)
	assert.Equal(t, "Explicit Artist", track2.Artist)
}

func TestUploadNormalizesUnknownExtensions(t *testing.T) {
	repo, storageSvc, _, cleanup := setupIntegrationTest(t)
	defer cleanup()

	svc := NewUploadService(repo, storageSvc, nil, logging.NewLogger("error"))

	file, header := makeUploadFile(t, "mystery.bin", []byte("bytes"))
	track, err := svc.Upload(file, header, UploadMeta{Title: "Mystery"})

	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(track.URL, "_mystery.mp3"), "got %q", track.URL)
}
