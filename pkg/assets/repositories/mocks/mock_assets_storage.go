package mock_assetsrepositories

import (
	"context"
	"sync"

	assetsrepositories "github.com/thebartekbanach/pictech/pkg/assets/repositories"
)

type MockAssetsStorage struct {
	assets map[string][]byte
	lock   sync.Mutex
	err    error
}

var _ assetsrepositories.AssetsStorage = (*MockAssetsStorage)(nil)

func NewMockAssetsStorage() *MockAssetsStorage {
	return &MockAssetsStorage{
		assets: make(map[string][]byte),
		lock:   sync.Mutex{},
	}
}

func (s *MockAssetsStorage) ReturnError(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.err = err
}

func (s *MockAssetsStorage) Contains(objectName string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, exists := s.assets[objectName]
	return exists
}

func (s *MockAssetsStorage) Name() string {
	return "mock"
}

func (s *MockAssetsStorage) Save(ctx context.Context, objectName, mimeType string, data []byte) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.err != nil {
		return "", s.err
	}

	s.assets[objectName] = append([]byte(nil), data...)
	return "mock://" + objectName, nil
}

func (s *MockAssetsStorage) Get(ctx context.Context, objectName string) ([]byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	data, exists := s.assets[objectName]
	if !exists {
		return nil, assetsrepositories.ErrAssetNotFound
	}

	return data, nil
}

func (s *MockAssetsStorage) Delete(ctx context.Context, objectName string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.assets[objectName]; !exists {
		return assetsrepositories.ErrAssetNotFound
	}

	delete(s.assets, objectName)
	return nil
}
