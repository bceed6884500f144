package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	redisLib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/hms-console/internal/model"
)

// fakeRedis implements redisAPI over a map.
type fakeRedis struct {
	data    map[string]string
	pingErr error
	opErr   error
	lastTTL time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redisLib.StringCmd {
	if f.opErr != nil {
		return redisLib.NewStringResult("", f.opErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redisLib.NewStringResult("", redisLib.Nil)
	}
	return redisLib.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redisLib.StatusCmd {
	if f.opErr != nil {
		return redisLib.NewStatusResult("", f.opErr)
	}
	f.data[key] = string(value.([]byte))
	f.lastTTL = ttl
	return redisLib.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redisLib.IntCmd {
	if f.opErr != nil {
		return redisLib.NewIntResult(0, f.opErr)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redisLib.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(_ context.Context) *redisLib.StatusCmd {
	return redisLib.NewStatusResult("PONG", f.pingErr)
}

func TestNewStoreWithAPI_PingFails(t *testing.T) {
	api := newFakeRedis()
	api.pingErr = errors.New("connection refused")

	_, err := NewStoreWithAPI(context.Background(), api, "p:")
	require.ErrorContains(t, err, "failed to connect to redis")
}

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	api := newFakeRedis()
	s, err := NewStoreWithAPI(ctx, api, "hms:")
	require.NoError(t, err)

	_, err = s.Get(ctx, "hms_users")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.Put(ctx, "hms_users", []byte("[]")))
	assert.Equal(t, "[]", api.data["hms:hms_users"])
	assert.Zero(t, api.lastTTL)

	got, err := s.Get(ctx, "hms_users")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, s.Delete(ctx, "hms_users"))
	require.NoError(t, s.Delete(ctx, "hms_users"))

	_, err = s.Get(ctx, "hms_users")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestStore_ErrorsWrapped(t *testing.T) {
	ctx := context.Background()
	api := newFakeRedis()
	s, err := NewStoreWithAPI(ctx, api, "")
	require.NoError(t, err)

	api.opErr = errors.New("READONLY")

	_, err = s.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get k")
	require.NotErrorIs(t, err, model.ErrNotFound)
	require.ErrorContains(t, s.Put(ctx, "k", []byte("v")), "failed to set k")
	require.ErrorContains(t, s.Delete(ctx, "k"), "failed to delete k")
}
