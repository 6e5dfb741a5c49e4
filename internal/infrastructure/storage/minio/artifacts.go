package minio

import (
	"bytes"
	"context"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/stilbar/pkg/errors"
)

const defaultPresignExpiry = 24 * time.Hour

// ArtifactStore persists batch result CSVs and hands out download links.
// It implements conversion.ArtifactStore.
type ArtifactStore struct {
	client        *Client
	presignExpiry time.Duration
}

// NewArtifactStore constructs an ArtifactStore.  expiry <= 0 falls back to
// 24h.
func NewArtifactStore(client *Client, presignExpiry time.Duration) *ArtifactStore {
	if presignExpiry <= 0 {
		presignExpiry = defaultPresignExpiry
	}
	return &ArtifactStore{client: client, presignExpiry: presignExpiry}
}

// PutCSV uploads a CSV artifact and returns a presigned download URL.
func (s *ArtifactStore) PutCSV(ctx context.Context, name string, data []byte) (string, error) {
	_, err := s.client.api.PutObject(ctx, s.client.bucket, name,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/csv"},
	)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to upload artifact")
	}

	u, err := s.client.api.PresignedGetObject(ctx, s.client.bucket, name, s.presignExpiry, url.Values{})
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to presign artifact URL")
	}
	return u.String(), nil
}
