// file: internals/features/uploads/service/storage.go
//
// Slip and sheet files live behind a backend selector: "oss" stores in an
// Aliyun OSS bucket, "project" beneath a local uploads dir.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"nitihub_backend/internals/configs"
)

type Storage interface {
	// Save stores data under the upload key and returns the persisted path.
	Save(ctx context.Context, uploadKey, fileName string, data []byte) (string, error)
	// Open streams a previously saved file by its persisted path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// NewStorageFromEnv picks the backend from UPLOAD_BACKEND.
func NewStorageFromEnv() (Storage, error) {
	switch strings.ToLower(configs.UploadBackend) {
	case "oss":
		return newOSSStorage()
	case "project", "":
		return &projectStorage{baseDir: configs.UploadBaseDir}, nil
	default:
		return nil, fmt.Errorf("unknown upload backend %q", configs.UploadBackend)
	}
}

/* ---------- project (local dir) ---------- */

type projectStorage struct {
	baseDir string
}

func (s *projectStorage) Save(_ context.Context, uploadKey, fileName string, data []byte) (string, error) {
	dir := filepath.Join(s.baseDir, uploadKey)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *projectStorage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	// refuse paths outside the upload dir
	clean := filepath.Clean(path)
	base := filepath.Clean(s.baseDir)
	if !strings.HasPrefix(clean, base+string(filepath.Separator)) {
		return nil, errors.New("path outside upload dir")
	}
	return os.Open(clean)
}

func (s *projectStorage) Delete(_ context.Context, path string) error {
	clean := filepath.Clean(path)
	base := filepath.Clean(s.baseDir)
	if !strings.HasPrefix(clean, base+string(filepath.Separator)) {
		return errors.New("path outside upload dir")
	}
	return os.Remove(clean)
}

/* ---------- aliyun oss ---------- */

type ossStorage struct {
	bucket *oss.Bucket
	prefix string
}

func newOSSStorage() (*ossStorage, error) {
	if configs.OSSEndpoint == "" || configs.OSSBucket == "" {
		return nil, errors.New("OSS_ENDPOINT / OSS_BUCKET not configured")
	}
	client, err := oss.New(configs.OSSEndpoint, configs.OSSKeyID, configs.OSSKeySecret)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(configs.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &ossStorage{bucket: bucket, prefix: "uploads/"}, nil
}

func (s *ossStorage) Save(_ context.Context, uploadKey, fileName string, data []byte) (string, error) {
	key := s.prefix + uploadKey + "/" + fileName
	if err := s.bucket.PutObject(key, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return key, nil
}

func (s *ossStorage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	return s.bucket.GetObject(path)
}

func (s *ossStorage) Delete(_ context.Context, path string) error {
	return s.bucket.DeleteObject(path)
}
