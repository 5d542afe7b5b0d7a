package assetsrepositories

import (
	"bytes"
	"context"
	"strings"
	"testing"

	dbconnections "github.com/thebartekbanach/pictech/pkg/assets/repositories/connections"
)

var testingImage = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

func TestMinioAssetsStorageIntegration_ShouldSaveAndGetAsset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping minioAssetsStorage integration tests")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconnections.NewMinioBlockStorageTestingConnection(t)
	storage := NewMinioAssetsStorage(conn)

	location, err := storage.Save(ctx, "out.png", "image/png", testingImage)
	if err != nil {
		t.Fatalf("Error ocurred while saving asset to block storage: %s", err)
	}

	if !strings.HasSuffix(location, "/out.png") {
		t.Errorf("Unexpected asset location: %s", location)
	}

	data, err := storage.Get(ctx, "out.png")
	if err != nil {
		t.Fatalf("Error ocurred while getting asset from block storage: %s", err)
	}

	if !bytes.Equal(data, testingImage) {
		t.Errorf("Asset from storage is not equal to the saved one")
	}
}

func TestMinioAssetsStorageIntegration_ShouldOverwriteExistingAsset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping minioAssetsStorage integration tests")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconnections.NewMinioBlockStorageTestingConnection(t)
	storage := NewMinioAssetsStorage(conn)

	storage.Save(ctx, "out.png", "image/png", []byte{1})
	if _, err := storage.Save(ctx, "out.png", "image/png", testingImage); err != nil {
		t.Fatalf("Expected overwrite to succeed, got: %s", err)
	}

	data, _ := storage.Get(ctx, "out.png")
	if !bytes.Equal(data, testingImage) {
		t.Errorf("Expected overwritten asset data")
	}
}

func TestMinioAssetsStorageIntegration_ShouldReturnErrAssetNotFoundOnMissingAsset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping minioAssetsStorage integration tests")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconnections.NewMinioBlockStorageTestingConnection(t)
	storage := NewMinioAssetsStorage(conn)

	if _, err := storage.Get(ctx, "missing.png"); err != ErrAssetNotFound {
		t.Errorf("Expected ErrAssetNotFound on get, got: %v", err)
	}

	if err := storage.Delete(ctx, "missing.png"); err != ErrAssetNotFound {
		t.Errorf("Expected ErrAssetNotFound on delete, got: %v", err)
	}
}

func TestMinioAssetsStorageIntegration_ShouldDeleteAsset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping minioAssetsStorage integration tests")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconnections.NewMinioBlockStorageTestingConnection(t)
	storage := NewMinioAssetsStorage(conn)

	storage.Save(ctx, "out.png", "image/png", testingImage)
	if err := storage.Delete(ctx, "out.png"); err != nil {
		t.Fatalf("Error ocurred while deleting asset: %s", err)
	}

	exists, err := conn.ObjectExists(ctx, "out.png")
	if err != nil || exists {
		t.Errorf("Expected asset to be deleted, exists: %v, err: %v", exists, err)
	}
}
