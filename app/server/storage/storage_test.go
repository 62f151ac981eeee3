package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubObjectAPI struct {
	putBucket      string
	putKey         string
	putContentType string
	putSize        int64
	removedKey     string
	err            error
}

func (s *stubObjectAPI) PutObject(_ context.Context, bucketName, objectName string, _ io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	s.putBucket = bucketName
	s.putKey = objectName
	s.putContentType = opts.ContentType
	s.putSize = objectSize
	return minio.UploadInfo{}, s.err
}

func (s *stubObjectAPI) RemoveObject(_ context.Context, _, objectName string, _ minio.RemoveObjectOptions) error {
	s.removedKey = objectName
	return s.err
}

func TestClientUpload(t *testing.T) {
	api := &stubObjectAPI{}
	client := NewClient(api, "news")

	err := client.Upload(context.Background(), "uploads/1/alice/a.png", "image/png", strings.NewReader("data"), 4)
	require.NoError(t, err)

	assert.Equal(t, "news", api.putBucket)
	assert.Equal(t, "uploads/1/alice/a.png", api.putKey)
	assert.Equal(t, "image/png", api.putContentType)
	assert.Equal(t, int64(4), api.putSize)
}

func TestClientUploadError(t *testing.T) {
	api := &stubObjectAPI{err: errors.New("bucket missing")}
	client := NewClient(api, "news")

	err := client.Upload(context.Background(), "a", "text/plain", strings.NewReader(""), 0)
	assert.Error(t, err)
}

func TestClientDelete(t *testing.T) {
	api := &stubObjectAPI{}
	client := NewClient(api, "news")

	require.NoError(t, client.Delete(context.Background(), "uploads/1/alice/a.png"))
	assert.Equal(t, "uploads/1/alice/a.png", api.removedKey)
}
