package storage

import (
	"context"
	"errors"
	"fmt"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"servigo-backend/internal/logger"
)

// GCSStorage stores documents in a Google Cloud Storage bucket through the
// Firebase Admin SDK app handle. Uploaded objects are made publicly
// readable; the returned URL is persisted on the user row.
type GCSStorage struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewGCSStorage initializes the Firebase app and resolves the bucket.
// credentialsFile may be empty, in which case application default
// credentials are used.
func NewGCSStorage(ctx context.Context, bucketName, credentialsFile string) (*GCSStorage, error) {
	fbCfg := &firebase.Config{StorageBucket: bucketName}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bucket %q: %w", bucketName, err)
	}

	return &GCSStorage{bucket: bucket, bucketName: bucketName}, nil
}

func (s *GCSStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	logger.ExternalServiceCall("gcs", "upload", "key", key, "size", len(data))

	obj := s.bucket.Object(key)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		logger.ExternalServiceResult("gcs", "upload", err, "key", key)
		return "", fmt.Errorf("failed to write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		logger.ExternalServiceResult("gcs", "upload", err, "key", key)
		return "", fmt.Errorf("failed to finalize object %q: %w", key, err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		logger.ExternalServiceResult("gcs", "upload", err, "key", key)
		return "", fmt.Errorf("failed to make object %q public: %w", key, err)
	}

	logger.ExternalServiceResult("gcs", "upload", nil, "key", key)
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, key), nil
}

func (s *GCSStorage) Delete(ctx context.Context, key string) error {
	err := s.bucket.Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (s *GCSStorage) Exists(ctx context.Context, key string) (bool, int64, error) {
	attrs, err := s.bucket.Object(key).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, attrs.Size, nil
}
