package service

import (
	"context"
	"io"
)

type mockStorage struct {
	statFn func(ctx context.Context, key string) (bool, error)
	getFn  func(ctx context.Context, key string) (io.ReadCloser, string, error)
	putFn  func(ctx context.Context, key string, size int64, ct string, r io.Reader) error
}

func (m *mockStorage) Stat(ctx context.Context, key string) (bool, error) {
	return m.statFn(ctx, key)
}

func (m *mockStorage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return m.getFn(ctx, key)
}

func (m *mockStorage) Put(ctx context.Context, key string, size int64, ct string, r io.Reader) error {
	return m.putFn(ctx, key, size, ct, r)
}
