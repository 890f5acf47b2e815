package integration

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/lfpcrew/lfp-admin/internal/service"
)

const (
	minioImage    = "docker.io/minio/minio:RELEASE.2025-09-07T16-13-09Z"
	minioRootUser = "lfp-minio"
	minioRootPass = "lfp-minio-secret"
)

// photoBucket is a throwaway MinIO server with the photo storage pointed at
// a fresh bucket, plus a raw client for checking what landed in it.
type photoBucket struct {
	endpoint string
	name     string
	storage  *service.MinIOPhotoStorage
	raw      *minio.Client
}

// startPhotoBucket needs Docker, so it skips unless LFP_TESTCONTAINERS=1.
func startPhotoBucket(t *testing.T) *photoBucket {
	t.Helper()
	if os.Getenv("LFP_TESTCONTAINERS") != "1" {
		t.Skip("set LFP_TESTCONTAINERS=1 to run MinIO container tests")
	}
	image := strings.TrimSpace(os.Getenv("MINIO_TEST_IMAGE"))
	if image == "" {
		image = minioImage
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			Env:          map[string]string{"MINIO_ROOT_USER": minioRootUser, "MINIO_ROOT_PASSWORD": minioRootPass},
			ExposedPorts: []string{"9000/tcp"},
			Cmd:          []string{"server", "/data", "--address", ":9000"},
			WaitingFor: wait.ForHTTP("/minio/health/ready").
				WithPort("9000/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start minio: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("minio host: %v", err)
	}
	port, err := container.MappedPort(ctx, "9000/tcp")
	if err != nil {
		t.Fatalf("minio port: %v", err)
	}
	b := &photoBucket{
		endpoint: net.JoinHostPort(host, port.Port()),
		name:     fmt.Sprintf("lfp-photos-%d", time.Now().UnixNano()),
	}
	b.storage, err = service.NewMinIOPhotoStorage(service.MinIOPhotoStorageConfig{
		Endpoint:  b.endpoint,
		AccessKey: minioRootUser,
		SecretKey: minioRootPass,
		Bucket:    b.name,
		MaxBytes:  1 << 20,
	})
	if err != nil {
		t.Fatalf("photo storage: %v", err)
	}
	b.raw, err = minio.New(b.endpoint, &minio.Options{Creds: credentials.NewStaticV4(minioRootUser, minioRootPass, "")})
	if err != nil {
		t.Fatalf("minio client: %v", err)
	}
	return b
}

// keyOf maps a public URL returned by Upload back to its object key.
func (b *photoBucket) keyOf(t *testing.T, publicURL string) string {
	t.Helper()
	prefix := "http://" + b.endpoint + "/" + b.name + "/"
	key, ok := strings.CutPrefix(publicURL, prefix)
	if !ok {
		t.Fatalf("url %q is not under %q", publicURL, prefix)
	}
	return key
}

func (b *photoBucket) exists(t *testing.T, key string) bool {
	t.Helper()
	_, err := b.raw.StatObject(context.Background(), b.name, key, minio.StatObjectOptions{})
	if err == nil {
		return true
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false
	}
	t.Fatalf("stat %q: %v", key, err)
	return false
}
