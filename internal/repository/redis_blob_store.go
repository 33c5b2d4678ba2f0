package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/yukikurage/kanbanflow/internal/models"
)

const redisBlobPrefix = "kanbanflow:blob:"

// RedisBlobStore keeps blobs as plain redis strings without expiry
type RedisBlobStore struct {
	client *redis.Client
}

// NewRedisBlobStore creates a redis-backed BlobStore
func NewRedisBlobStore(client *redis.Client) BlobStore {
	if client == nil {
		panic("repository.NewRedisBlobStore: redis client is nil")
	}
	return &RedisBlobStore{client: client}
}

func redisBlobKey(collection models.BlobCollection, key string) string {
	return redisBlobPrefix + string(collection) + ":" + key
}

func (s *RedisBlobStore) Put(ctx context.Context, collection models.BlobCollection, key string, data []byte) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisBlobKey(collection, key), data, 0).Err(); err != nil {
		return unavailable("put blob "+string(collection), err)
	}
	return nil
}

func (s *RedisBlobStore) Get(ctx context.Context, collection models.BlobCollection, key string) ([]byte, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, redisBlobKey(collection, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, unavailable("get blob "+string(collection), err)
	}
	return data, nil
}

func (s *RedisBlobStore) Delete(ctx context.Context, collection models.BlobCollection, key string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	if err := s.client.Del(ctx, redisBlobKey(collection, key)).Err(); err != nil {
		return unavailable("delete blob "+string(collection), err)
	}
	return nil
}

func (s *RedisBlobStore) Keys(ctx context.Context, collection models.BlobCollection) ([]string, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	prefix := redisBlobKey(collection, "")
	keys := []string{}
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, unavailable("list blobs "+string(collection), err)
	}
	return keys, nil
}
