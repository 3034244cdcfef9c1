// filepath: internal/objectstore/client.go
// Package objectstore talks to the remote object-storage backend over
// its HTTP API. The service runs without it when no backend is
// configured; uploaded files are then served from local disk instead.
package objectstore

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Store is the capability the upload pipeline and the reconciliation
// sweep need from a remote backend. A nil Store means local mode.
type Store interface {
	// Upload puts an object under the bucket-scoped key with upsert
	// semantics and returns its public URL.
	Upload(key string, body io.Reader, size int64, contentType string) (string, error)
	// Remove deletes an object. Only the reconciliation sweep calls it.
	Remove(key string) error
	// PublicURL derives the public URL for a key without any request.
	PublicURL(key string) string
}

// Compile-time check to ensure interface compliance
var _ Store = (*Client)(nil)

// Client implements Store against a storage API of the
// /storage/v1/object/{bucket}/{key} shape.
type Client struct {
	baseURL string
	apiKey  string
	bucket  string
	httpc   *http.Client
	logger  *logrus.Logger
}

// New creates a Client for the given backend.
func New(baseURL, apiKey, bucket string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

// objectURL is the authenticated endpoint for one object.
func (c *Client) objectURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, key)
}

// PublicURL derives the public download URL for a key.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, key)
}

// Upload PUTs the object. The upsert header makes retried uploads
// overwrite the previous object under the same key instead of failing,
// so the operation stays idempotent.
func (c *Client) Upload(key string, body io.Reader, size int64, contentType string) (string, error) {
	req, err := http.NewRequest(http.MethodPut, c.objectURL(key), body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")
	if size > 0 {
		req.ContentLength = size
	}

	c.logger.Debugf("objectstore: uploading %s (%d bytes)", key, size)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("object upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("object upload failed: %s: %s", resp.Status, readBodySnippet(resp.Body))
	}

	return c.PublicURL(key), nil
}

// Remove deletes the object under the key. A missing object is treated
// as already removed.
func (c *Client) Remove(key string) error {
	req, err := http.NewRequest(http.MethodDelete, c.objectURL(key), nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("object delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("object delete failed: %s: %s", resp.Status, readBodySnippet(resp.Body))
	}
	return nil
}

// readBodySnippet pulls a short error detail out of a response body.
func readBodySnippet(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(b) == 0 {
		return "<no body>"
	}
	return strings.TrimSpace(string(b))
}
