package assetsrepositories

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

type fsAssetsStorage struct {
	fs        afero.Fs
	directory string
}

var _ AssetsStorage = (*fsAssetsStorage)(nil)

// NewFsAssetsStorage keeps assets as files under directory. Slashes in the
// object name become subdirectories.
func NewFsAssetsStorage(fs afero.Fs, directory string) AssetsStorage {
	return &fsAssetsStorage{fs, directory}
}

func (s *fsAssetsStorage) Name() string {
	return "fs"
}

func (s *fsAssetsStorage) Save(ctx context.Context, objectName, mimeType string, data []byte) (string, error) {
	if err := validateObjectName(objectName); err != nil {
		return "", err
	}

	path := s.path(objectName)
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", err
	}

	return path, nil
}

func (s *fsAssetsStorage) Get(ctx context.Context, objectName string) ([]byte, error) {
	if err := validateObjectName(objectName); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, s.path(objectName))
	if os.IsNotExist(err) {
		return nil, ErrAssetNotFound
	}

	return data, err
}

func (s *fsAssetsStorage) Delete(ctx context.Context, objectName string) error {
	if err := validateObjectName(objectName); err != nil {
		return err
	}

	path := s.path(objectName)
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return err
	}
	if !exists {
		return ErrAssetNotFound
	}

	return s.fs.Remove(path)
}

func (s *fsAssetsStorage) path(objectName string) string {
	return filepath.Join(s.directory, filepath.FromSlash(objectName))
}

// validateObjectName accepts relative slash separated names that cannot
// leave the storage root.
func validateObjectName(objectName string) error {
	if strings.ContainsRune(objectName, '\\') {
		return ErrInvalidObjectName
	}

	for _, segment := range strings.Split(objectName, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return ErrInvalidObjectName
		}
	}

	return nil
}
