package services

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// StorageService pushes attachment blobs to an S3-style HTTP endpoint and
// returns the public URL. Object keys are date-prefixed UUIDs so uploads
// never collide.
type StorageService struct {
	Endpoint string
	Bucket   string
	Secret   string
	Enabled  bool
	client   *http.Client
}

func NewStorageService() *StorageService {
	endpoint := os.Getenv("STORAGE_ENDPOINT")
	bucket := os.Getenv("STORAGE_BUCKET")
	secret := os.Getenv("STORAGE_SECRET")

	enabled := endpoint != "" && bucket != ""
	if !enabled {
		log.Println("StorageService disabled: missing STORAGE environment variables")
	}

	return &StorageService{
		Endpoint: endpoint,
		Bucket:   bucket,
		Secret:   secret,
		Enabled:  enabled,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Store uploads one blob and returns its public URL.
func (s *StorageService) Store(data []byte, filename, contentType string) (string, error) {
	if !s.Enabled {
		return "", fmt.Errorf("storage not configured")
	}

	ext := filepath.Ext(filename)
	key := fmt.Sprintf("file-%s-%s%s", time.Now().Format("2006-01-02"), uuid.NewString(), ext)
	url := fmt.Sprintf("%s/%s/%s", s.Endpoint, s.Bucket, key)

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.Secret != "" {
		req.Header.Set("Authorization", "Bearer "+s.Secret)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload failed: status %d", resp.StatusCode)
	}
	return url, nil
}
