package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/pc-builder/internal/model"
	"github.com/you-humble/pc-builder/platform/logger"
)

func init() {
	logger.SetNopLogger()
}

// recordingStore keeps every value written per key and can hold writes
// until released.
type recordingStore struct {
	mu      sync.Mutex
	data    map[string]string
	history map[string][]string
	gate    chan struct{}
	failSet error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		data:    make(map[string]string),
		history: make(map[string][]string),
	}
}

func (s *recordingStore) Set(ctx context.Context, key, value string) error {
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failSet != nil {
		return s.failSet
	}
	s.data[key] = value
	s.history[key] = append(s.history[key], value)
	return nil
}

func (s *recordingStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	s.history[key] = append(s.history[key], "<removed>")
	return nil
}

func (s *recordingStore) get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *recordingStore) writes(key string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history[key]...)
}

func TestWriterLatestWins(t *testing.T) {
	t.Parallel()

	store := newRecordingStore()
	store.gate = make(chan struct{})

	w := NewWriter(store, time.Second)
	ctx := context.Background()

	require.NoError(t, w.Save("k", "v0"))
	for i := 1; i <= 10; i++ {
		require.NoError(t, w.Save("k", fmt.Sprintf("v%d", i)))
	}
	close(store.gate)

	require.NoError(t, w.Flush(ctx))

	v, ok := store.get("k")
	require.True(t, ok)
	assert.Equal(t, "v10", v)

	writes := store.writes("k")
	assert.LessOrEqual(t, len(writes), 11)
	assert.Equal(t, "v10", writes[len(writes)-1])
}

func TestWriterDeleteAfterSave(t *testing.T) {
	t.Parallel()

	store := newRecordingStore()
	w := NewWriter(store, time.Second)
	ctx := context.Background()

	require.NoError(t, w.Save("k", "v"))
	require.NoError(t, w.Delete("k"))
	require.NoError(t, w.Flush(ctx))

	_, ok := store.get("k")
	assert.False(t, ok)
}

func TestWriterKeysAreIndependent(t *testing.T) {
	t.Parallel()

	store := newRecordingStore()
	w := NewWriter(store, time.Second)

	require.NoError(t, w.Save(model.BuildStorageKey, "build"))
	require.NoError(t, w.Save(model.CompareStorageKey, "compare"))
	require.NoError(t, w.Flush(context.Background()))

	b, ok := store.get(model.BuildStorageKey)
	require.True(t, ok)
	assert.Equal(t, "build", b)

	c, ok := store.get(model.CompareStorageKey)
	require.True(t, ok)
	assert.Equal(t, "compare", c)
}

func TestWriterFlushRespectsContext(t *testing.T) {
	t.Parallel()

	store := newRecordingStore()
	store.gate = make(chan struct{})
	defer close(store.gate)

	w := NewWriter(store, time.Minute)
	require.NoError(t, w.Save("k", "v"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, w.Flush(ctx), context.DeadlineExceeded)
}

func TestWriterFlushWhenIdle(t *testing.T) {
	t.Parallel()

	w := NewWriter(newRecordingStore(), 0)
	assert.NoError(t, w.Flush(context.Background()))
}

func TestWriterFailedWriteIsDropped(t *testing.T) {
	t.Parallel()

	store := newRecordingStore()
	store.failSet = errors.New("read-only file system")

	w := NewWriter(store, time.Second)
	require.NoError(t, w.Save("k", "v"))
	require.NoError(t, w.Flush(context.Background()))

	_, ok := store.get("k")
	assert.False(t, ok)
	assert.Empty(t, store.writes("k"))
}

func TestWriterClose(t *testing.T) {
	t.Parallel()

	store := newRecordingStore()
	w := NewWriter(store, time.Second)
	ctx := context.Background()

	require.NoError(t, w.Save("k", "v"))
	require.NoError(t, w.Close(ctx))

	v, ok := store.get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	assert.ErrorIs(t, w.Save("k", "late"), model.ErrWriterClosed)
	assert.ErrorIs(t, w.Delete("k"), model.ErrWriterClosed)
}
