package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"freight-booking-backend/internal/logger"
)

var ErrInvalidKey = errors.New("invalid storage key")

// LocalStorage stores files on the local filesystem under uploadsDir.
type LocalStorage struct {
	baseURL    string
	uploadsDir string
}

// NewLocalStorage creates the upload directory tree if needed.
func NewLocalStorage(baseURL, uploadsDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(filepath.Join(uploadsDir, ProofPrefix), 0755); err != nil {
		return nil, fmt.Errorf("failed to create proofs directory: %w", err)
	}
	return &LocalStorage{
		baseURL:    strings.TrimRight(baseURL, "/"),
		uploadsDir: uploadsDir,
	}, nil
}

// resolve maps a key to a path inside uploadsDir, rejecting traversal.
func (s *LocalStorage) resolve(key string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	if clean == "/" || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.uploadsDir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (s *LocalStorage) SaveFile(ctx context.Context, key string, reader io.Reader) error {
	logger.ExternalServiceCall("local-storage", "SaveFile", "key", key)
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(fullPath)
		logger.ExternalServiceResult("local-storage", "SaveFile", err, "key", key)
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.ExternalServiceResult("local-storage", "SaveFile", nil, "key", key)
	return nil
}

func (s *LocalStorage) ReadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (s *LocalStorage) DeleteFile(ctx context.Context, key string) error {
	logger.ExternalServiceCall("local-storage", "DeleteFile", "key", key)
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		logger.ExternalServiceResult("local-storage", "DeleteFile", err, "key", key)
		return fmt.Errorf("failed to delete file: %w", err)
	}
	logger.ExternalServiceResult("local-storage", "DeleteFile", nil, "key", key)
	return nil
}

func (s *LocalStorage) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.baseURL + "/" + strings.TrimPrefix(key, "/")
}
