package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/lfpcrew/lfp-admin/internal/observability"
)

var (
	ErrStorageDisabled   = errors.New("photo storage is not configured")
	ErrPhotoRequired     = invalid("file is required")
	ErrPhotoNotImage     = invalid("file must be an image")
	ErrPhotoMalformed    = invalid("invalid file format")
	ErrPhotoTooLarge     = invalid("file exceeds the upload size limit")
	ErrPhotoURLRequired  = invalid("url is required")
	ErrBucketUnavailable = errors.New("storage bucket unavailable")

	allowedPhotoTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
	}

	// Folder names sent by the admin UI, mapped to object prefixes.
	photoFolders = map[string]string{
		"lfp/crew":   "crew",
		"lfp/cars":   "cars",
		"lfp/events": "events",
		"lfp":        "uploads",
		"crew":       "crew",
		"cars":       "cars",
		"events":     "events",
		"uploads":    "uploads",
	}
)

// PhotoStorage stores admin uploaded pictures and hands back public URLs.
type PhotoStorage interface {
	Upload(ctx context.Context, dataURL, folder string) (string, error)
	// Delete removes the object behind rawURL. URLs outside the bucket are
	// ignored and report false.
	Delete(ctx context.Context, rawURL string) (bool, error)
	Ping(ctx context.Context) error
}

type DisabledPhotoStorage struct{}

func (DisabledPhotoStorage) Upload(context.Context, string, string) (string, error) {
	return "", ErrStorageDisabled
}

func (DisabledPhotoStorage) Delete(context.Context, string) (bool, error) {
	return false, ErrStorageDisabled
}

func (DisabledPhotoStorage) Ping(context.Context) error { return nil }

type MinIOPhotoStorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
	MaxBytes      int64
}

type MinIOPhotoStorage struct {
	client   *minio.Client
	bucket   string
	baseURL  string
	maxBytes int64
	now      func() time.Time
	initOnce sync.Once
	initErr  error
}

// NewMinIOPhotoStorage builds the client only. The bucket is created on
// first use so that startup never waits on object storage.
func NewMinIOPhotoStorage(cfg MinIOPhotoStorageConfig) (*MinIOPhotoStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &MinIOPhotoStorage{client: client, bucket: cfg.Bucket, baseURL: base, maxBytes: maxBytes, now: time.Now}, nil
}

func (s *MinIOPhotoStorage) Upload(ctx context.Context, dataURL, folder string) (publicURL string, err error) {
	defer func() { observability.RecordStorageOperation(ctx, "upload", storageOutcome(err)) }()

	data, contentType, err := DecodePhotoDataURL(dataURL, s.maxBytes)
	if err != nil {
		return "", err
	}
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}
	key := PhotoObjectKey(folder, contentType, s.now(), uuid.NewString())
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *MinIOPhotoStorage) Delete(ctx context.Context, rawURL string) (deleted bool, err error) {
	defer func() { observability.RecordStorageOperation(ctx, "delete", storageOutcome(err)) }()

	key, ok, err := objectKeyFromURL(s.baseURL, rawURL)
	if err != nil || !ok {
		return false, err
	}
	if err := s.ensureBucket(ctx); err != nil {
		return false, err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return false, fmt.Errorf("delete photo: %w", err)
	}
	return true, nil
}

func (s *MinIOPhotoStorage) Ping(ctx context.Context) error {
	// A missing bucket is healthy: the first upload creates it.
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("%w: %v", ErrBucketUnavailable, err)
	}
	return nil
}

func (s *MinIOPhotoStorage) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = fmt.Errorf("%w: %v", ErrBucketUnavailable, err)
			return
		}
		if exists {
			return
		}
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			s.initErr = fmt.Errorf("%w: %v", ErrBucketUnavailable, err)
			return
		}
		policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, s.bucket)
		if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
			s.initErr = fmt.Errorf("%w: set read policy: %v", ErrBucketUnavailable, err)
		}
	})
	return s.initErr
}

// DecodePhotoDataURL parses "data:image/<ext>;base64,<payload>". The
// declared type is only a format check: the stored content type comes
// from sniffing the decoded bytes.
func DecodePhotoDataURL(raw string, maxBytes int64) ([]byte, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, "", ErrPhotoRequired
	}
	if !strings.HasPrefix(raw, "data:image/") {
		return nil, "", ErrPhotoNotImage
	}
	header, payload, ok := strings.Cut(raw, ",")
	if !ok || !strings.HasSuffix(header, ";base64") || payload == "" {
		return nil, "", ErrPhotoMalformed
	}
	if int64(base64.StdEncoding.DecodedLen(len(payload))) > maxBytes+2 {
		return nil, "", ErrPhotoTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrPhotoMalformed
	}
	if int64(len(data)) > maxBytes {
		return nil, "", ErrPhotoTooLarge
	}
	contentType := http.DetectContentType(data)
	if _, ok := allowedPhotoTypes[contentType]; !ok {
		return nil, "", ErrPhotoNotImage
	}
	return data, contentType, nil
}

// PhotoObjectKey places the object under one of the known folders; any
// other folder name falls back to "uploads".
func PhotoObjectKey(folder, contentType string, now time.Time, id string) string {
	prefix, ok := photoFolders[strings.Trim(strings.TrimSpace(folder), "/")]
	if !ok {
		prefix = "uploads"
	}
	return fmt.Sprintf("%s/%d-%s%s", prefix, now.UnixMilli(), id, allowedPhotoTypes[contentType])
}

func objectKeyFromURL(baseURL, rawURL string) (string, bool, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false, ErrPhotoURLRequired
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false, nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", false, nil
	}
	if !strings.EqualFold(u.Host, base.Host) {
		return "", false, nil
	}
	basePath := strings.TrimRight(base.Path, "/") + "/"
	if !strings.HasPrefix(u.Path, basePath) {
		return "", false, nil
	}
	key := strings.TrimPrefix(u.Path, basePath)
	if key == "" || strings.Contains(key, "..") {
		return "", false, nil
	}
	return key, true, nil
}

func storageOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsValidation(err):
		return "rejected"
	default:
		return "error"
	}
}
