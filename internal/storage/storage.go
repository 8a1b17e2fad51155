// Package storage provides the constructor for the local image storage backend
package storage

import (
	"fmt"
	"log"
	"os"

	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
	"github.com/UnendingLoop/FaviconNormalizer/internal/storage/filestorage"
)

// NewImgStorage проверяет базовую директорию и отдает файловое хранилище, ограниченное ею
func NewImgStorage(baseDir string) (*filestorage.FileImageStorage, error) {
	if baseDir == "" {
		return nil, model.ErrEmptyBaseDir
	}

	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: base directory %q: %w", model.ErrIO, baseDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", model.ErrIO, baseDir)
	}

	log.Printf("Using IMG-storage at %q", baseDir)
	return filestorage.NewFileStorage(baseDir), nil
}
