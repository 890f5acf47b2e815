package integration

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/lfpcrew/lfp-admin/internal/service"
)

// 1x1 transparent PNG.
var tinyPNG, _ = base64.StdEncoding.DecodeString("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

func TestPhotoStorageUploadAndDelete(t *testing.T) {
	bucket := startPhotoBucket(t)
	ctx := context.Background()

	if err := bucket.storage.Ping(ctx); err != nil {
		t.Fatalf("ping before bucket exists: %v", err)
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(tinyPNG)
	url, err := bucket.storage.Upload(ctx, dataURL, "lfp/cars")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	key := bucket.keyOf(t, url)
	if !strings.HasPrefix(key, "cars/") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected object key %q", key)
	}
	if !bucket.exists(t, key) {
		t.Fatalf("object %q missing after upload", key)
	}

	deleted, err := bucket.storage.Delete(ctx, url)
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	if bucket.exists(t, key) {
		t.Fatalf("object %q still present after delete", key)
	}

	deleted, err = bucket.storage.Delete(ctx, "https://cdn.example.test/cars/other.png")
	if err != nil || deleted {
		t.Fatalf("foreign url must be ignored: deleted=%v err=%v", deleted, err)
	}
}

func TestPhotoStorageRejectsNonImages(t *testing.T) {
	bucket := startPhotoBucket(t)
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("definitely not a picture"))
	if _, err := bucket.storage.Upload(context.Background(), dataURL, "lfp"); !errors.Is(err, service.ErrPhotoNotImage) {
		t.Fatalf("expected ErrPhotoNotImage, got %v", err)
	}
}
