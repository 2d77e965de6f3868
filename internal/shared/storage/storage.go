package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sarakts28/febric-flow-backend/internal/config"
	"go.uber.org/zap"
)

// MinIOStore keeps objects in one bucket and serves them from PublicURL.
type MinIOStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &MinIOStore{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

func (s *MinIOStore) Save(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectName, err)
	}
	return s.publicURL + "/" + objectName, nil
}

// LocalStore writes files under Dir and serves them under URLPrefix.
type LocalStore struct {
	Dir       string
	URLPrefix string
}

func NewLocalStore(cfg config.UploadConfig) *LocalStore {
	prefix := "/" + strings.Trim(cfg.URLPrefix, "/")
	if prefix == "/" {
		prefix = "/uploads"
	}
	return &LocalStore{Dir: cfg.Dir, URLPrefix: prefix}
}

func (s *LocalStore) Save(_ context.Context, objectName string, r io.Reader, _ int64, _ string) (string, error) {
	clean := path.Clean("/" + objectName)
	target := filepath.Join(s.Dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", target, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	return s.URLPrefix + clean, nil
}

// Store is implemented by both backends.
type Store interface {
	Save(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
}

// New picks MinIO when an endpoint is configured and falls back to local disk
// when it is absent or unreachable.
func New(ctx context.Context, minioCfg config.MinIOConfig, uploadCfg config.UploadConfig, logger *zap.Logger) Store {
	if minioCfg.Endpoint != "" {
		store, err := NewMinIOStore(ctx, minioCfg)
		if err == nil {
			logger.Info("image storage: minio", zap.String("endpoint", minioCfg.Endpoint), zap.String("bucket", minioCfg.Bucket))
			return store
		}
		logger.Warn("minio unavailable, falling back to local uploads", zap.Error(err))
	}
	logger.Info("image storage: local", zap.String("dir", uploadCfg.Dir))
	return NewLocalStore(uploadCfg)
}
