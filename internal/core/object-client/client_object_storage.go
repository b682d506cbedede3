package objectclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/rs/zerolog"

	cfg "github.com/markdave123-py/s3-previewer/internal/config"
	"github.com/markdave123-py/s3-previewer/internal/core/preview"
	"github.com/markdave123-py/s3-previewer/internal/logger"
	"github.com/markdave123-py/s3-previewer/internal/models"
)

type S3Client struct {
	client    *s3.Client
	presign   *s3.PresignClient
	region    string
	bucket    string
	endpoint  string
	pathStyle bool
	log       zerolog.Logger
}

// NewS3Client builds the S3 client from the process config. Every call is a
// single attempt: the SDK retryer is disabled.
func NewS3Client(ctx context.Context, cfg *cfg.Config, log zerolog.Logger) (*S3Client, error) {
	if cfg.AwsRegion == "" {
		return nil, fmt.Errorf("AWS_REGION not set")
	}
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("S3 bucket name not set")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AwsRegion),
		awsconfig.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	}
	if cfg.AwsAccessKey != "" || cfg.AwsSecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AwsAccessKey, cfg.AwsSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
		if cfg.ForcePathStyle {
			o.UsePathStyle = true
		}
	})

	c := newS3Client(client, cfg.BucketName, log)
	c.log.Info().Str("bucket", c.bucket).Str("region", c.region).Msg("object client ready")
	return c, nil
}

func newS3Client(client *s3.Client, bucket string, log zerolog.Logger) *S3Client {
	opts := client.Options()
	return &S3Client{
		client:    client,
		presign:   s3.NewPresignClient(client),
		region:    opts.Region,
		bucket:    bucket,
		endpoint:  aws.ToString(opts.BaseEndpoint),
		pathStyle: opts.UsePathStyle,
		log:       logger.WithComponent(log, "object-client"),
	}
}

// HeadObject fetches the object's metadata without transferring its body.
func (c *S3Client) HeadObject(ctx context.Context, key models.ObjectKey) (*models.ObjectMetadata, error) {
	out, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key.String()),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("s3 head %q: %w", key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("s3 head failed: %w", err)
	}

	meta := &models.ObjectMetadata{
		ContentType:   aws.ToString(out.ContentType),
		ContentLength: aws.ToInt64(out.ContentLength),
		LastModified:  out.LastModified,
		ETag:          strings.ReplaceAll(aws.ToString(out.ETag), `"`, ""),
	}
	if meta.ContentType == "" {
		meta.ContentType = preview.DefaultContentType
	}
	if meta.ContentLength < 0 {
		meta.ContentLength = 0
	}

	c.log.Debug().Str(logger.FieldKey, key.String()).Str("content_type", meta.ContentType).Int64("size", meta.ContentLength).Msg("head object")
	return meta, nil
}

// PresignGetObject signs a GetObject request for key valid for ttl.
func (c *S3Client) PresignGetObject(ctx context.Context, key models.ObjectKey, ttl time.Duration) (*models.SignedAccessURL, error) {
	issuedAt := time.Now().UTC().Truncate(time.Second)

	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key.String()),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return nil, fmt.Errorf("s3 presign failed: %w", err)
	}

	return &models.SignedAccessURL{URL: req.URL, ExpiresAt: issuedAt.Add(ttl)}, nil
}

// ObjectURL returns the permanent, unsigned path of key. It only works for
// objects readable without credentials.
func (c *S3Client) ObjectURL(key models.ObjectKey) string {
	path := escapeKey(key)
	switch {
	case c.endpoint != "":
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.endpoint, "/"), c.bucket, path)
	case c.pathStyle:
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", c.region, c.bucket, path)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, path)
	}
}

func escapeKey(key models.ObjectKey) string {
	segments := strings.Split(key.String(), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey") {
		return true
	}
	var respErr *smithyhttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}

// compile-time check
var _ ObjectClient = (*S3Client)(nil)
