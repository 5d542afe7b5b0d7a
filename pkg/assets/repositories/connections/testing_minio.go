package dbconnections

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

type MinioBlockStorageTestingConnection struct {
	*MinioBlockStorageProductionConnection
}

// NewMinioBlockStorageTestingConnection connects to the integration minio
// server in a fresh bucket, skipping the test when no server is configured.
func NewMinioBlockStorageTestingConnection(t *testing.T) *MinioBlockStorageTestingConnection {
	endpoint := os.Getenv("PICTECH_TESTING_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("PICTECH_TESTING_MINIO_ENDPOINT is not set")
	}

	conn, err := NewMinioBlockStorageProductionConnection(context.Background(), MinioBlockStorageProductionConnectionConfig{
		Endpoint:  endpoint,
		AccessKey: envOrDefault("PICTECH_TESTING_MINIO_ACCESS_KEY", "minio"),
		SecretKey: envOrDefault("PICTECH_TESTING_MINIO_SECRET_KEY", "minio123"),
		Bucket:    uuid.New().String() + "-testing-bucket",
		Location:  "us-east-1",
		UseSSL:    false,
	})
	if err != nil {
		t.Fatalf("Error when connecting to minio block storage: %s", err)
	}

	testingConn := &MinioBlockStorageTestingConnection{conn}
	t.Cleanup(testingConn.dropTestBucket)

	return testingConn
}

func (c *MinioBlockStorageTestingConnection) dropTestBucket() {
	ctx := context.Background()
	for object := range c.client.ListObjects(ctx, c.config.Bucket, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err == nil {
			c.client.RemoveObject(ctx, c.config.Bucket, object.Key, minio.RemoveObjectOptions{})
		}
	}

	if err := c.client.RemoveBucket(ctx, c.config.Bucket); err != nil {
		panic("Error when dropping test bucket: " + err.Error())
	}
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}

	return fallback
}
