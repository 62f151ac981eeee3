package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// 内部适配接口，测试时可以注入假实现，不必跑真实的 MinIO
type objectAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// Client 对象存储封装，负责用户上传文件的写入与删除
type Client struct {
	api    objectAPI
	bucket string
}

func NewClient(api objectAPI, bucket string) *Client {
	return &Client{api: api, bucket: bucket}
}

func (c *Client) Upload(ctx context.Context, key, contentType string, reader io.Reader, size int64) error {
	if _, err := c.api.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return fmt.Errorf("upload object: %w", err)
	}

	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.api.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	return nil
}
