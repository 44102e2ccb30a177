package redisadapter

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "doodle/contexts/community-scheduling/doodle-poll/domain/errors"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	values map[string][]byte
	getErr error
	setErr error
}

func (f *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(value), nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.values[key] = append([]byte(nil), value.([]byte)...)
	return redis.NewStatusResult("OK", nil)
}

func TestStoreUsesPrefixedKeys(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{values: map[string][]byte{}}
	store := NewStore(client, "", nil)

	_, found, err := store.Get(ctx, "retro")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Put(ctx, "retro", []byte(`{"records":[]}`)))
	assert.Contains(t, client.values, DefaultKeyPrefix+"retro")

	blob, found, err := store.Get(ctx, "retro")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"records":[]}`, string(blob))
}

func TestStoreWrapsRedisFailures(t *testing.T) {
	boom := errors.New("connection refused")
	store := NewStore(&fakeClient{values: map[string][]byte{}, getErr: boom, setErr: boom}, "test:", nil)

	_, _, err := store.Get(context.Background(), "retro")
	assert.ErrorIs(t, err, domainerrors.ErrStorage)
	assert.ErrorIs(t, err, boom)

	err = store.Put(context.Background(), "retro", []byte("x"))
	assert.ErrorIs(t, err, domainerrors.ErrStorage)
}
