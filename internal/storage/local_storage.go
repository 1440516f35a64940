package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidAssetName is returned for names that would escape the storage directory.
var ErrInvalidAssetName = errors.New("invalid asset name")

// LocalStorage stores assets in a directory served by the HTTP layer
type LocalStorage struct {
	basePath string
	baseURL  string
}

type LocalStorageConfig struct {
	BasePath string // ./static/images
	BaseURL  string // /assets
}

// NewLocalStorage creates the base directory when missing
func NewLocalStorage(config LocalStorageConfig) (*LocalStorage, error) {
	if err := os.MkdirAll(config.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: config.BasePath,
		baseURL:  strings.TrimSuffix(config.BaseURL, "/"),
	}, nil
}

// BasePath is the directory assets are written to
func (l *LocalStorage) BasePath() string {
	return l.basePath
}

// Save writes the asset to disk. The returned reference is the file name.
func (l *LocalStorage) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	fullPath, err := l.resolve(name)
	if err != nil {
		return "", err
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return name, nil
}

// Delete removes the asset file
func (l *LocalStorage) Delete(_ context.Context, ref string) error {
	fullPath, err := l.resolve(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL builds the public URL of an asset
func (l *LocalStorage) URL(ref string) string {
	return l.baseURL + "/" + ref
}

func (l *LocalStorage) Name() string {
	return "local"
}

func (l *LocalStorage) resolve(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	if name == "" || strings.Contains(name, "/") || name == "." || name == ".." {
		return "", ErrInvalidAssetName
	}
	return filepath.Join(l.basePath, name), nil
}
