package storage

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/config"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client)
	return store, mr
}

func TestRedisStore_GuestName(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	name, err := store.LoadGuestName(ctx, "local")
	require.NoError(t, err)
	assert.Empty(t, name)

	require.NoError(t, store.SaveGuestName(ctx, "local", "  Thandi "))
	assert.True(t, mr.Exists("guest:local"))
	assert.Equal(t, guestExpiration, mr.TTL("guest:local"))

	name, err = store.LoadGuestName(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, "Thandi", name)

	assert.ErrorIs(t, store.SaveGuestName(ctx, "local", "   "), ErrEmptyName)
}

func TestRedisStore_RenameKeepsCreatedAt(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }
	require.NoError(t, store.SaveGuestName(ctx, "local", "Thandi"))

	now = now.Add(time.Hour)
	require.NoError(t, store.SaveGuestName(ctx, "local", "Sipho"))

	p, err := store.LoadProfile(ctx, "local")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Sipho", p.Name)
	assert.Equal(t, int64(1_700_000_000), p.CreatedAt)
	assert.Equal(t, int64(1_700_003_600), p.LastSeenAt)
}

func TestRedisStore_SeparateKeys(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveGuestName(ctx, "laptop", "Thandi"))
	require.NoError(t, store.SaveGuestName(ctx, "desktop", "Sipho"))

	name, err := store.LoadGuestName(ctx, "laptop")
	require.NoError(t, err)
	assert.Equal(t, "Thandi", name)

	require.NoError(t, store.DeleteProfile(ctx, "laptop"))
	name, err = store.LoadGuestName(ctx, "laptop")
	require.NoError(t, err)
	assert.Empty(t, name)

	name, err = store.LoadGuestName(ctx, "desktop")
	require.NoError(t, err)
	assert.Equal(t, "Sipho", name)
}

func TestRedisStore_CorruptProfile(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	require.NoError(t, mr.Set("guest:local", "{not json"))

	_, err := store.LoadProfile(context.Background(), "local")
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb, err := Connect(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	_ = rdb.Close()

	mr.Close()
	_, err = Connect(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	assert.Error(t, err)
}

func TestGenerateNickname(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		name := GenerateNickname(rng)
		assert.NotEmpty(t, name)
		assert.True(t, strings.Contains(name, "的"), name)
	}
}
