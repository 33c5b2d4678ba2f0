package repository

import (
	"context"
	"sort"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/kanbanflow/internal/models"
)

func newRedisBlobStore(t *testing.T) (BlobStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisBlobStore(client), mr
}

func TestRedisBlobStore_Lifecycle(t *testing.T) {
	store, mr := newRedisBlobStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, models.BlobVoiceNotes, "v1", []byte("OggS")))
	require.NoError(t, store.Put(ctx, models.BlobVoiceNotes, "v2", []byte("OggS2")))
	require.NoError(t, store.Put(ctx, models.BlobAttachments, "a1", []byte("file")))

	got, err := store.Get(ctx, models.BlobVoiceNotes, "v1")
	require.NoError(t, err)
	assert.Equal(t, []byte("OggS"), got)
	assert.Zero(t, mr.TTL(redisBlobKey(models.BlobVoiceNotes, "v1")))

	keys, err := store.Keys(ctx, models.BlobVoiceNotes)
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"v1", "v2"}, keys)

	require.NoError(t, store.Delete(ctx, models.BlobVoiceNotes, "v1"))
	require.NoError(t, store.Delete(ctx, models.BlobVoiceNotes, "v1"))

	_, err = store.Get(ctx, models.BlobVoiceNotes, "v1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisBlobStore_ServerDownIsStorageUnavailable(t *testing.T) {
	store, mr := newRedisBlobStore(t)
	mr.Close()

	_, err := store.Get(context.Background(), models.BlobAvatars, "av1")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestRedisBlobStore_UnknownCollection(t *testing.T) {
	store, _ := newRedisBlobStore(t)

	_, err := store.Keys(context.Background(), models.BlobCollection("other"))
	assert.ErrorIs(t, err, ErrUnknownCollection)
}
