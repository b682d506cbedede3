//go:generate go run go.uber.org/mock/mockgen -source=objectClient.go -destination=mocks/mock_object_client.go -package=mocks
package objectclient

import (
	"context"
	"errors"
	"time"

	"github.com/markdave123-py/s3-previewer/internal/models"
)

// ErrObjectNotFound is returned by HeadObject when the bucket has no such key.
var ErrObjectNotFound = errors.New("object not found")

// ObjectClient defines the read-only interactions with S3 or any
// S3-compatible object storage. The bucket is fixed at construction.
type ObjectClient interface {
	HeadObject(ctx context.Context, key models.ObjectKey) (*models.ObjectMetadata, error)
	PresignGetObject(ctx context.Context, key models.ObjectKey, ttl time.Duration) (*models.SignedAccessURL, error)
	ObjectURL(key models.ObjectKey) string
}
