package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/irsalhamdi/art-market/config"
	"github.com/irsalhamdi/art-market/random"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Uploader stores a blob and returns a URL it can later be fetched from.
// Listing creation treats upload failures as best-effort: they are logged
// and the listing stays without an image.
type Uploader interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// Bucket is the S3-compatible implementation used in production.
type Bucket struct {
	client *minio.Client
	bucket string
	base   string
}

func New(cfg config.Storage) (*Bucket, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("constructing storage client: %w", err)
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return &Bucket{
		client: client,
		bucket: cfg.Bucket,
		base:   fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket),
	}, nil
}

func (b *Bucket) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := b.client.PutObject(ctx, b.bucket, key, r, size, opts); err != nil {
		return "", fmt.Errorf("putting object %q: %w", key, err)
	}

	return b.base + "/" + key, nil
}

// ObjectKey derives a collision-free object name from the original filename,
// keeping the extension so the bucket serves the right content type.
func ObjectKey(artID string, filename string) string {
	return artID + "-" + random.String(8) + path.Ext(filename)
}
