package filestorage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n0000")

// brokenReader отдает часть данных и затем ошибку
type brokenReader struct {
	data []byte
	done bool
}

func (r *brokenReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errors.New("disk went away")
	}
	r.done = true
	return copy(p, r.data), nil
}

func requireNoTempFiles(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.NotContains(t, e.Name(), ".tmp-", "leftover temp file %q", e.Name())
	}
}

func TestFileImageStorage_Stat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "icon.png")
	require.NoError(t, os.WriteFile(file, pngMagic, 0o644))

	s := NewFileStorage(dir)
	ctx := context.Background()

	ok, err := s.Stat(ctx, file)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Stat(ctx, filepath.Join(dir, "missing.png"))
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.Stat(ctx, dir)
	require.ErrorIs(t, err, model.ErrIO)
}

func TestFileImageStorage_Get(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "icon.png")
	require.NoError(t, os.WriteFile(file, pngMagic, 0o644))

	s := NewFileStorage(dir)

	t.Run("OK", func(t *testing.T) {
		r, ctype, err := s.Get(context.Background(), file)
		require.NoError(t, err)
		defer r.Close()

		require.Equal(t, "image/png", ctype)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		require.Equal(t, pngMagic, data)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := s.Get(context.Background(), filepath.Join(dir, "nope.png"))
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := s.Get(ctx, file)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestFileImageStorage_OutsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "icons")
	require.NoError(t, os.Mkdir(root, 0o755))
	outside := filepath.Join(parent, "other.png")
	require.NoError(t, os.WriteFile(outside, pngMagic, 0o644))

	s := NewFileStorage(root)
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
	}{
		{"sibling file", outside},
		{"dot-dot inside key", filepath.Join(root, "..", "other.png")},
		{"prefix lookalike", filepath.Join(parent, "icons-old", "a.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Stat(ctx, tt.key)
			require.ErrorIs(t, err, model.ErrIO)

			_, _, err = s.Get(ctx, tt.key)
			require.ErrorIs(t, err, model.ErrIO)

			err = s.Put(ctx, tt.key, 3, "image/png", bytes.NewReader([]byte("abc")))
			require.ErrorIs(t, err, model.ErrIO)
		})
	}

	// исходный файл вне root не тронут
	data, err := os.ReadFile(outside)
	require.NoError(t, err)
	require.Equal(t, pngMagic, data)

	t.Run("unconfined storage accepts any path", func(t *testing.T) {
		ok, err := NewFileStorage("").Stat(ctx, outside)
		require.NoError(t, err)
		require.True(t, ok)
	})
}

func TestFileImageStorage_Put(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStorage(dir)
	ctx := context.Background()

	t.Run("overwrite keeps permissions", func(t *testing.T) {
		file := filepath.Join(dir, "keep.png")
		require.NoError(t, os.WriteFile(file, []byte("old content that is longer"), 0o600))

		payload := []byte("new")
		require.NoError(t, s.Put(ctx, file, int64(len(payload)), "image/png", bytes.NewReader(payload)))

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		require.Equal(t, payload, data)

		info, err := os.Stat(file)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
		requireNoTempFiles(t, dir)
	})

	t.Run("new file gets default permissions", func(t *testing.T) {
		file := filepath.Join(dir, "fresh.png")
		require.NoError(t, s.Put(ctx, file, 3, "image/png", bytes.NewReader([]byte("abc"))))

		info, err := os.Stat(file)
		require.NoError(t, err)
		require.Equal(t, defaultPerm, info.Mode().Perm())
	})

	t.Run("failed write keeps original", func(t *testing.T) {
		file := filepath.Join(dir, "intact.png")
		original := []byte("original favicon bytes")
		require.NoError(t, os.WriteFile(file, original, 0o644))

		err := s.Put(ctx, file, 100, "image/png", &brokenReader{data: []byte("partial")})
		require.ErrorIs(t, err, model.ErrIO)

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		require.Equal(t, original, data)
		requireNoTempFiles(t, dir)
	})

	t.Run("nil reader", func(t *testing.T) {
		require.Error(t, s.Put(ctx, filepath.Join(dir, "x.png"), 0, "image/png", nil))
	})

	t.Run("size mismatch keeps original", func(t *testing.T) {
		file := filepath.Join(dir, "short.png")
		require.NoError(t, os.WriteFile(file, []byte("before"), 0o644))

		err := s.Put(ctx, file, 10, "image/png", bytes.NewReader([]byte("abc")))
		require.ErrorIs(t, err, model.ErrIO)

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		require.Equal(t, []byte("before"), data)
		requireNoTempFiles(t, dir)
	})

	t.Run("missing directory", func(t *testing.T) {
		err := s.Put(ctx, filepath.Join(dir, "no", "such", "dir.png"), 3, "image/png", bytes.NewReader([]byte("abc")))
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("read-only directory", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root ignores file permissions")
		}
		roDir := filepath.Join(dir, "ro")
		require.NoError(t, os.Mkdir(roDir, 0o755))
		file := filepath.Join(roDir, "ro.png")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		require.NoError(t, os.Chmod(roDir, 0o555))
		t.Cleanup(func() { _ = os.Chmod(roDir, 0o755) })

		err := s.Put(ctx, file, 3, "image/png", bytes.NewReader([]byte("abc")))
		require.ErrorIs(t, err, model.ErrIO)

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		require.Equal(t, []byte("x"), data)
	})
}
