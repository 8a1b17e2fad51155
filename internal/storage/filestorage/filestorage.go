// Package filestorage provides structure to work with images on the local filesystem
package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
)

const defaultPerm fs.FileMode = 0o644

// FileImageStorage - ключи хранилища являются путями к файлам.
// Если задан root, ключи вне него отклоняются.
type FileImageStorage struct {
	root string
}

// NewFileStorage confines every key to root. An empty root disables the check.
func NewFileStorage(root string) *FileImageStorage {
	if root == "" {
		return &FileImageStorage{}
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &FileImageStorage{root: filepath.Clean(root)}
}

func (s *FileImageStorage) Stat(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key, err := s.resolve(key)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, classify(err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("%w: %q is a directory", model.ErrIO, key)
	}
	return true, nil
}

func (s *FileImageStorage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	key, err := s.resolve(key)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(key)
	if err != nil {
		return nil, "", classify(err)
	}

	// определяем content-type по первым 512 байтам и возвращаем курсор в начало
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		closeFile(f)
		return nil, "", classify(err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		closeFile(f)
		return nil, "", classify(err)
	}

	return f, http.DetectContentType(head[:n]), nil
}

// Put writes into a temp file next to key and renames it over key, so a failed
// write never leaves a truncated original. Permission bits of an existing file are kept.
func (s *FileImageStorage) Put(ctx context.Context, key string, size int64, contentType string, r io.Reader) error {
	if r == nil {
		return errors.New("nil reader passed to storage.Put")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := s.resolve(key)
	if err != nil {
		return err
	}

	perm := defaultPerm
	if info, err := os.Stat(key); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(key), "."+filepath.Base(key)+".tmp-*")
	if err != nil {
		return classify(err)
	}
	tmpName := tmp.Name()

	written, err := io.Copy(tmp, r)
	if err != nil {
		discardTemp(tmp)
		return classify(err)
	}
	if size >= 0 && written != size {
		discardTemp(tmp)
		return fmt.Errorf("%w: short write of %s content to %q: %d of %d bytes", model.ErrIO, contentType, key, written, size)
	}
	if err := tmp.Chmod(perm); err != nil {
		discardTemp(tmp)
		return classify(err)
	}
	if err := tmp.Close(); err != nil {
		removeFile(tmpName)
		return classify(err)
	}

	if err := os.Rename(tmpName, key); err != nil {
		removeFile(tmpName)
		return classify(err)
	}
	return nil
}

// resolve - абсолютный путь ключа, не выходящий за root
func (s *FileImageStorage) resolve(key string) (string, error) {
	if s.root == "" {
		return key, nil
	}

	abs, err := filepath.Abs(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrIO, err)
	}
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q is outside storage root %q", model.ErrIO, key, s.root)
	}
	return abs, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", model.ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", model.ErrIO, err)
	}
}

func closeFile(f *os.File) {
	if err := f.Close(); err != nil {
		log.Println("Storage failed to close file:", err)
	}
}

func discardTemp(f *os.File) {
	closeFile(f)
	removeFile(f.Name())
}

func removeFile(name string) {
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Println("Storage failed to remove temp file:", err)
	}
}
