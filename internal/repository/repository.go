package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/kanbanflow/internal/models"
)

var (
	// ErrStorageUnavailable wraps every failure of the underlying storage engine.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotFound is returned when the requested record or blob is absent.
	ErrNotFound = errors.New("record not found")
	// ErrUnknownCollection is returned for blob collections outside the schema.
	ErrUnknownCollection = errors.New("unknown blob collection")
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}

// TaskRepository stores whole task records keyed by id
type TaskRepository interface {
	// GetAll returns every task in storage order
	GetAll(ctx context.Context) ([]models.Task, error)

	// Get returns one task or ErrNotFound
	Get(ctx context.Context, id string) (*models.Task, error)

	// Put creates the task or fully replaces the stored one
	Put(ctx context.Context, task *models.Task) error

	// Delete removes a task; deleting a missing id is not an error
	Delete(ctx context.Context, id string) error

	// Clear removes all tasks
	Clear(ctx context.Context) error
}

// MemberRepository stores whole member records keyed by id
type MemberRepository interface {
	GetAll(ctx context.Context) ([]models.Member, error)
	Get(ctx context.Context, id string) (*models.Member, error)
	Put(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// ConfigRepository stores board configuration records
type ConfigRepository interface {
	Get(ctx context.Context, id string) (*models.BoardConfig, error)
	Put(ctx context.Context, cfg *models.BoardConfig) error
}

// BlobStore keeps opaque payloads in named collections
type BlobStore interface {
	// Put stores data under key, replacing any previous payload
	Put(ctx context.Context, collection models.BlobCollection, key string, data []byte) error

	// Get reads a payload or returns ErrNotFound
	Get(ctx context.Context, collection models.BlobCollection, key string) ([]byte, error)

	// Delete removes a payload; deleting a missing key is not an error
	Delete(ctx context.Context, collection models.BlobCollection, key string) error

	// Keys lists every key in a collection
	Keys(ctx context.Context, collection models.BlobCollection) ([]string, error)
}

func checkCollection(c models.BlobCollection) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	return nil
}
