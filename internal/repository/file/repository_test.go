package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/pc-builder/internal/model"
)

func TestRepository(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		act    func(ctx context.Context, r *repository) error
		assert func(t *testing.T, r *repository, err error)
	}

	payload := `{"cpu":{"name":"` + gofakeit.ProductName() + `"}}`

	tests := []testCase{
		{
			name: "missing key is not found",
			act:  func(context.Context, *repository) error { return nil },
			assert: func(t *testing.T, r *repository, err error) {
				require.NoError(t, err)
				_, found, gerr := r.Get(context.Background(), model.BuildStorageKey)
				require.NoError(t, gerr)
				assert.False(t, found)
			},
		},
		{
			name: "set then get",
			act: func(ctx context.Context, r *repository) error {
				return r.Set(ctx, model.BuildStorageKey, payload)
			},
			assert: func(t *testing.T, r *repository, err error) {
				require.NoError(t, err)
				got, found, gerr := r.Get(context.Background(), model.BuildStorageKey)
				require.NoError(t, gerr)
				assert.True(t, found)
				assert.Equal(t, payload, got)

				entries, derr := os.ReadDir(r.dir)
				require.NoError(t, derr)
				require.Len(t, entries, 1, "no temp files left behind")
				assert.Equal(t, model.BuildStorageKey+fileExt, entries[0].Name())
			},
		},
		{
			name: "overwrite keeps the latest value",
			act: func(ctx context.Context, r *repository) error {
				if err := r.Set(ctx, model.CompareStorageKey, "[1]"); err != nil {
					return err
				}
				return r.Set(ctx, model.CompareStorageKey, "[2]")
			},
			assert: func(t *testing.T, r *repository, err error) {
				require.NoError(t, err)
				got, _, gerr := r.Get(context.Background(), model.CompareStorageKey)
				require.NoError(t, gerr)
				assert.Equal(t, "[2]", got)
			},
		},
		{
			name: "remove is idempotent",
			act: func(ctx context.Context, r *repository) error {
				if err := r.Set(ctx, model.BuildStorageKey, payload); err != nil {
					return err
				}
				if err := r.Remove(ctx, model.BuildStorageKey); err != nil {
					return err
				}
				return r.Remove(ctx, model.BuildStorageKey)
			},
			assert: func(t *testing.T, r *repository, err error) {
				require.NoError(t, err)
				_, found, gerr := r.Get(context.Background(), model.BuildStorageKey)
				require.NoError(t, gerr)
				assert.False(t, found)
			},
		},
		{
			name: "path traversal key is rejected",
			act: func(ctx context.Context, r *repository) error {
				return r.Set(ctx, "../escape", "x")
			},
			assert: func(t *testing.T, r *repository, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrInvalidArgument)
				_, statErr := os.Stat(filepath.Join(filepath.Dir(r.dir), "escape"+fileExt))
				assert.True(t, os.IsNotExist(statErr))
			},
		},
		{
			name: "cancelled context",
			act: func(_ context.Context, r *repository) error {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return r.Set(ctx, model.BuildStorageKey, payload)
			},
			assert: func(t *testing.T, r *repository, err error) {
				assert.ErrorIs(t, err, context.Canceled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewKVRepository(filepath.Join(t.TempDir(), "state"))
			require.NoError(t, err)

			err = tt.act(context.Background(), r)
			tt.assert(t, r, err)
		})
	}
}
