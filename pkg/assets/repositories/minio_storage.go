package assetsrepositories

import (
	"bytes"
	"context"
	"errors"
	"io/ioutil"

	"github.com/minio/minio-go/v7"
	dbconnections "github.com/thebartekbanach/pictech/pkg/assets/repositories/connections"
)

type minioAssetsStorage struct {
	conn dbconnections.MinioBlockStorageConnection
}

var _ AssetsStorage = (*minioAssetsStorage)(nil)

func NewMinioAssetsStorage(conn dbconnections.MinioBlockStorageConnection) AssetsStorage {
	return &minioAssetsStorage{conn}
}

func (s *minioAssetsStorage) Name() string {
	return "minio"
}

func (s *minioAssetsStorage) Save(ctx context.Context, objectName, mimeType string, data []byte) (string, error) {
	if err := validateObjectName(objectName); err != nil {
		return "", err
	}

	if err := s.conn.PutObject(ctx, objectName, int64(len(data)), mimeType, bytes.NewReader(data)); err != nil {
		return "", err
	}

	return "s3://" + s.conn.Bucket() + "/" + objectName, nil
}

func (s *minioAssetsStorage) Get(ctx context.Context, objectName string) ([]byte, error) {
	object, err := s.conn.GetObject(ctx, objectName)
	if err != nil {
		return nil, s.convertToKnownError(err)
	}
	defer object.Close()

	data, err := ioutil.ReadAll(object)
	if err != nil {
		return nil, s.convertToKnownError(err)
	}

	return data, nil
}

func (s *minioAssetsStorage) Delete(ctx context.Context, objectName string) error {
	exists, err := s.conn.ObjectExists(ctx, objectName)
	if err != nil {
		return err
	}
	if !exists {
		return ErrAssetNotFound
	}

	return s.conn.DeleteObject(ctx, objectName)
}

func (s *minioAssetsStorage) convertToKnownError(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrAssetNotFound
	}

	return err
}

var (
	ErrAssetNotFound     = errors.New("asset not found")
	ErrInvalidObjectName = errors.New("asset object name must be a relative path of plain names")
)
