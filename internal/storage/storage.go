// Package storage wraps the blob store behind a single upload
// operation. The rest of the system treats it as opaque: bytes go in
// under a path, a public URL comes out.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BlobStore uploads a document and returns its public URL.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// SupabaseStore implements BlobStore against the Supabase Storage REST
// API.
type SupabaseStore struct {
	baseURL    string
	serviceKey string
	bucket     string
	client     *http.Client
}

// NewSupabaseStore creates a store for the given project URL and
// bucket. The bucket is expected to be public-read.
func NewSupabaseStore(baseURL, serviceKey, bucket string) *SupabaseStore {
	return &SupabaseStore{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		bucket:     bucket,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores data under path in the bucket and returns the public
// object URL. Existing objects at the same path are overwritten.
func (s *SupabaseStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("upload %s: status %d: %s", path, resp.StatusCode, body)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path), nil
}
