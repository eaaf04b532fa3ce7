package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/medialog/service/internal/logger"
)

// MinioStorage implements Storage against a MinIO (or any S3-compatible)
// media host. The host assigns each upload an opaque identifier under a
// fixed logical folder; the returned location is the durable public URL.
type MinioStorage struct {
	client     *minio.Client
	bucket     string
	folder     string
	publicBase string
}

// NewMinioStorage creates a MinIO client, ensures the bucket exists with a
// public-read policy, and returns a ready-to-use MinioStorage.
func NewMinioStorage(endpoint, accessKey, secretKey, bucket, folder, publicBase string, useSSL bool) (*MinioStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
		}
		logger.Log.Info("storage: created bucket", zap.String("bucket", bucket))
	}

	if err := client.SetBucketPolicy(ctx, bucket, publicReadPolicy(bucket)); err != nil {
		return nil, fmt.Errorf("set bucket policy: %w", err)
	}

	return &MinioStorage{
		client:     client,
		bucket:     bucket,
		folder:     strings.Trim(folder, "/"),
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Save streams the bytes to the host under <folder>/<uuid><ext>. The uuid is
// the host-side opaque identifier; the original filename only contributes
// its extension. The call blocks until the host returns a result or an
// error; no retry is attempted.
func (s *MinioStorage) Save(ctx context.Context, obj Object) (string, error) {
	key := remoteKey(s.folder, obj.OriginalName)

	contentType := obj.ContentType
	if contentType == "" {
		// Resource kind follows the declared media type.
		if obj.MediaType == "video" {
			contentType = "video/mp4"
		} else {
			contentType = "image/jpeg"
		}
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(obj.Data), int64(len(obj.Data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}

	return s.publicBase + "/" + key, nil
}

// remoteKey derives the host-side object key: the fixed logical folder, an
// opaque uuid, and the original name's extension, lowercased. The rest of
// the original filename does not contribute.
func remoteKey(folder, originalName string) string {
	return folder + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
