// internal/web/web.go
// Package web serves the public uploads directory over HTTP.
package web

import (
	"net/http"
	"os"
	"path"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Popap2/forymusic/internal/media"
	"github.com/Popap2/forymusic/internal/storage"
)

// uploadsHandler serves locally stored audio files from the uploads
// directory. Names are single path segments produced by the upload
// pipeline; anything that resolves outside the directory is a 404.
type uploadsHandler struct {
	root   string
	logger *logrus.Logger
}

// ServeHTTP resolves the requested name inside the uploads directory and
// streams the file. http.ServeContent gives us Range support, which audio
// players rely on for seeking.
func (h uploadsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := path.Clean(r.URL.Path)
	if name == "." || name == "/" {
		http.NotFound(w, r)
		return
	}

	filePath, err := storage.SafeJoin(h.root, name)
	if err != nil {
		h.logger.Warnf("Rejected uploads path %q: %v", r.URL.Path, err)
		http.NotFound(w, r)
		return
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		h.logger.Errorf("Failed to open upload %q: %v", filePath, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil || fileInfo.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", media.ContentTypeForName(name))
	http.ServeContent(w, r, name, fileInfo.ModTime(), file)
}

// AddRoutes mounts the uploads file server on the main router.
func AddRoutes(r *mux.Router, uploadsDir string, logger *logrus.Logger) {
	handler := uploadsHandler{root: uploadsDir, logger: logger}
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", handler)).Methods("GET", "HEAD")
}
