// Package media stores coach-recorded drill demo videos in S3-compatible
// object storage. Uploads go straight from the browser to the bucket via
// presigned URLs; the server never proxies video bytes.
package media

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry bounds how long a presigned URL stays usable.
const DefaultPresignedURLExpiry = 15 * time.Minute

// VideoStorage is the object-storage surface for drill videos.
type VideoStorage interface {
	// PresignUpload creates a temporary PUT URL for uploading a drill video.
	// The client must send the same Content-Type it presigned with.
	PresignUpload(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error)

	// PresignDownload creates a temporary GET URL for viewing a video.
	PresignDownload(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// Delete removes a video object from the bucket.
	Delete(ctx context.Context, objectKey string) error
}
