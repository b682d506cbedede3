package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	objectclient "github.com/markdave123-py/s3-previewer/internal/core/object-client"
	"github.com/markdave123-py/s3-previewer/internal/core/object-client/mocks"
	"github.com/markdave123-py/s3-previewer/internal/core/preview"
	"github.com/markdave123-py/s3-previewer/internal/metrics"
	"github.com/markdave123-py/s3-previewer/internal/models"
)

func newService(t *testing.T, objects objectclient.ObjectClient, opts PreviewOptions) *PreviewService {
	t.Helper()
	rec, err := metrics.NewRecorder(prometheus.NewRegistry())
	require.NoError(t, err)
	return NewPreviewService(objects, preview.NewKeyResolver("images", "f"), opts, rec, zerolog.Nop())
}

func TestPreviewService_Preview_Signed(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mocks.NewMockObjectClient(ctrl)

	modified := time.Date(2024, 10, 1, 10, 30, 0, 0, time.UTC)
	key := models.ObjectKey("images/report.pdf")

	objects.EXPECT().HeadObject(gomock.Any(), key).Return(&models.ObjectMetadata{
		ContentType:   "application/pdf",
		ContentLength: 2048,
		LastModified:  &modified,
		ETag:          "abc",
	}, nil)
	objects.EXPECT().PresignGetObject(gomock.Any(), key, 90*time.Second).Return(&models.SignedAccessURL{
		URL:       "https://signed.example/images/report.pdf?X-Amz-Signature=1",
		ExpiresAt: modified.Add(90 * time.Second),
	}, nil)

	s := newService(t, objects, PreviewOptions{PresignTTL: 90 * time.Second})

	p, err := s.Preview(context.Background(), "freport.pdf", models.URLModeSigned)
	require.NoError(t, err)

	assert.True(t, p.Available())
	assert.Equal(t, key, p.Key)
	assert.Equal(t, "report.pdf", p.Name)
	assert.Equal(t, "pdf", p.Extension)
	assert.Equal(t, models.StrategyPdf, p.Strategy)
	assert.Equal(t, models.URLModeSigned, p.Mode)
	assert.Equal(t, int64(2048), p.Metadata.ContentLength)
	assert.Contains(t, p.Access.URL, "X-Amz-Signature")
}

func TestPreviewService_Preview_Direct(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mocks.NewMockObjectClient(ctrl)

	key := models.ObjectKey("images/cat.png")
	objects.EXPECT().HeadObject(gomock.Any(), key).Return(&models.ObjectMetadata{ContentType: "image/png", ContentLength: 10}, nil)
	objects.EXPECT().ObjectURL(key).Return("https://soe-storage.s3.ap-southeast-1.amazonaws.com/images/cat.png")

	s := newService(t, objects, PreviewOptions{})

	p, err := s.Preview(context.Background(), "cat.png", models.URLModeDirect)
	require.NoError(t, err)

	assert.Equal(t, models.StrategyImage, p.Strategy)
	assert.Equal(t, "https://soe-storage.s3.ap-southeast-1.amazonaws.com/images/cat.png", p.Access.URL)
	assert.True(t, p.Access.ExpiresAt.IsZero())
}

func TestPreviewService_Preview_ContentTypeOverridesExtension(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mocks.NewMockObjectClient(ctrl)

	objects.EXPECT().HeadObject(gomock.Any(), gomock.Any()).Return(&models.ObjectMetadata{ContentType: "image/png"}, nil)
	objects.EXPECT().PresignGetObject(gomock.Any(), gomock.Any(), gomock.Any()).Return(&models.SignedAccessURL{URL: "u"}, nil)

	s := newService(t, objects, PreviewOptions{})

	p, err := s.Preview(context.Background(), "misnamed.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, models.StrategyImage, p.Strategy)
	assert.Equal(t, models.URLModeSigned, p.Mode)
}

func TestPreviewService_Preview_MetadataFailureIsUnavailable(t *testing.T) {
	cases := map[string]error{
		"not found": fmt.Errorf("s3 head: %w", objectclient.ErrObjectNotFound),
		"backend":   errors.New("s3 head failed: connection reset"),
	}

	for name, headErr := range cases {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			objects := mocks.NewMockObjectClient(ctrl)

			objects.EXPECT().HeadObject(gomock.Any(), gomock.Any()).Return(nil, headErr)
			objects.EXPECT().PresignGetObject(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(&models.SignedAccessURL{URL: "u"}, nil).MaxTimes(1)

			s := newService(t, objects, PreviewOptions{})

			p, err := s.Preview(context.Background(), "gone.txt", models.URLModeSigned)
			assert.Nil(t, p)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrPreviewUnavailable)
		})
	}
}

func TestPreviewService_Preview_SigningFailureIsUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mocks.NewMockObjectClient(ctrl)

	objects.EXPECT().HeadObject(gomock.Any(), gomock.Any()).
		Return(&models.ObjectMetadata{ContentType: "text/plain"}, nil).MaxTimes(1)
	objects.EXPECT().PresignGetObject(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("s3 presign failed: no credentials"))

	s := newService(t, objects, PreviewOptions{})

	p, err := s.Preview(context.Background(), "notes.txt", models.URLModeSigned)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrPreviewUnavailable)
}

func TestPreviewService_Preview_CachesMetadataNotURLs(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mocks.NewMockObjectClient(ctrl)

	key := models.ObjectKey("images/notes.md")
	objects.EXPECT().HeadObject(gomock.Any(), key).Return(&models.ObjectMetadata{ContentType: "text/markdown"}, nil).Times(1)
	objects.EXPECT().PresignGetObject(gomock.Any(), key, gomock.Any()).Return(&models.SignedAccessURL{URL: "first"}, nil)
	objects.EXPECT().PresignGetObject(gomock.Any(), key, gomock.Any()).Return(&models.SignedAccessURL{URL: "second"}, nil)

	s := newService(t, objects, PreviewOptions{CacheTTL: time.Minute, CacheSize: 8})

	first, err := s.Preview(context.Background(), "notes.md", models.URLModeSigned)
	require.NoError(t, err)
	second, err := s.Preview(context.Background(), "notes.md", models.URLModeSigned)
	require.NoError(t, err)

	assert.Equal(t, models.StrategyText, second.Strategy)
	assert.Equal(t, "first", first.Access.URL)
	assert.Equal(t, "second", second.Access.URL)
}

func TestPreviewService_Preview_FailuresAreNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mocks.NewMockObjectClient(ctrl)

	key := models.ObjectKey("images/flaky.png")
	gomock.InOrder(
		objects.EXPECT().HeadObject(gomock.Any(), key).Return(nil, errors.New("timeout")),
		objects.EXPECT().HeadObject(gomock.Any(), key).Return(&models.ObjectMetadata{ContentType: "image/png"}, nil),
	)
	objects.EXPECT().PresignGetObject(gomock.Any(), key, gomock.Any()).Return(&models.SignedAccessURL{URL: "u"}, nil).MinTimes(1).MaxTimes(2)

	s := newService(t, objects, PreviewOptions{CacheTTL: time.Minute})

	_, err := s.Preview(context.Background(), "fflaky.png", models.URLModeSigned)
	require.Error(t, err)

	p, err := s.Preview(context.Background(), "fflaky.png", models.URLModeSigned)
	require.NoError(t, err)
	assert.Equal(t, models.StrategyImage, p.Strategy)
}

func TestPreviewService_Preview_EmptyResultsAreUnavailable(t *testing.T) {
	tests := map[string]struct {
		meta   *models.ObjectMetadata
		access *models.SignedAccessURL
	}{
		"no metadata": {access: &models.SignedAccessURL{URL: "u"}},
		"no url":      {meta: &models.ObjectMetadata{ContentType: "image/png"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			objects := mocks.NewMockObjectClient(ctrl)
			key := models.ObjectKey("images/cat.png")
			objects.EXPECT().HeadObject(gomock.Any(), key).Return(tc.meta, nil)
			objects.EXPECT().PresignGetObject(gomock.Any(), key, gomock.Any()).Return(tc.access, nil)

			s := newService(t, objects, PreviewOptions{})

			p, err := s.Preview(context.Background(), "cat.png", models.URLModeSigned)
			require.ErrorIs(t, err, ErrPreviewUnavailable)
			assert.Nil(t, p)
		})
	}
}

func TestPreviewService_Describe(t *testing.T) {
	s := newService(t, nil, PreviewOptions{})

	p := s.Describe("fscan.JPG")
	assert.Equal(t, models.ObjectKey("images/scan.JPG"), p.Key)
	assert.Equal(t, "scan.JPG", p.Name)
	assert.Equal(t, "jpg", p.Extension)
	assert.Equal(t, models.StrategyImage, p.Strategy)
	assert.Nil(t, p.Metadata)
	assert.Nil(t, p.Access)
	assert.False(t, p.Available())
}

func TestPreviewService_Preview_UnknownMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mocks.NewMockObjectClient(ctrl)
	objects.EXPECT().HeadObject(gomock.Any(), gomock.Any()).Return(&models.ObjectMetadata{ContentType: "text/plain"}, nil).MaxTimes(1)

	s := newService(t, objects, PreviewOptions{})

	_, err := s.Preview(context.Background(), "a.txt", models.URLMode("public"))
	assert.ErrorIs(t, err, ErrPreviewUnavailable)
}
