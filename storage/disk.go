package storage

import (
	"io"
	"os"
	"path/filepath"
	"sync"
)

type DiskStorage struct {
	// BasePath is a directory writable by the current process
	BasePath  string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(basePath string) *DiskStorage {
	return &DiskStorage{
		BasePath: basePath,
		dirs:     make(map[string]bool, 10),
	}
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	s.dirs[dir] = true
	return os.MkdirAll(dir, 0777)
}

func (s *DiskStorage) albumDir(slug string) string {
	return filepath.Join(s.BasePath, slug)
}

func (s *DiskStorage) InitAlbum(slug string) (string, error) {
	// No bucket name on disk - the slug is the namespace
	return "", s.createDir(s.albumDir(slug))
}

func (s *DiskStorage) Save(bucket, slug, name string, reader io.Reader) (string, error) {
	fileName := filepath.Join(s.albumDir(slug), name)
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return "", err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return "", err
	}
	_, err = io.Copy(file, reader)
	file.Close()
	if err != nil {
		_ = os.Remove(fileName)
		return "", err
	}
	return name, nil
}

func (s *DiskStorage) URL(slug, locator string) string {
	return "/static/uploads/" + slug + "/" + locator
}

func (s *DiskStorage) Delete(bucket, slug, locator string) error {
	return os.Remove(filepath.Join(s.albumDir(slug), locator))
}

func (s *DiskStorage) DeleteAlbum(bucket, slug string) error {
	s.dirsMutex.Lock()
	delete(s.dirs, s.albumDir(slug))
	s.dirsMutex.Unlock()
	return os.RemoveAll(s.albumDir(slug))
}
