package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/kanbanflow/internal/database"
	"github.com/yukikurage/kanbanflow/internal/models"
)

// GormBlobStore keeps blobs in one table per collection of the shared database
type GormBlobStore struct {
	gw *database.Gateway
}

// NewBlobStore creates a database-backed BlobStore
func NewBlobStore(gw *database.Gateway) BlobStore {
	return &GormBlobStore{gw: gw}
}

func (s *GormBlobStore) table(ctx context.Context, collection models.BlobCollection) (*gorm.DB, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	db, err := s.gw.DB(ctx)
	if err != nil {
		return nil, unavailable("open "+string(collection), err)
	}
	return db.Table(string(collection)), nil
}

func (s *GormBlobStore) Put(ctx context.Context, collection models.BlobCollection, key string, data []byte) error {
	db, err := s.table(ctx, collection)
	if err != nil {
		return err
	}
	blob := models.Blob{ID: key, Data: data, CreatedAt: time.Now().UTC()}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&blob).Error
	if err != nil {
		return unavailable("put blob "+string(collection), err)
	}
	return nil
}

func (s *GormBlobStore) Get(ctx context.Context, collection models.BlobCollection, key string) ([]byte, error) {
	db, err := s.table(ctx, collection)
	if err != nil {
		return nil, err
	}
	var blob models.Blob
	if err := db.Where("id = ?", key).Take(&blob).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable("get blob "+string(collection), err)
	}
	return blob.Data, nil
}

func (s *GormBlobStore) Delete(ctx context.Context, collection models.BlobCollection, key string) error {
	db, err := s.table(ctx, collection)
	if err != nil {
		return err
	}
	if err := db.Where("id = ?", key).Delete(&models.Blob{}).Error; err != nil {
		return unavailable("delete blob "+string(collection), err)
	}
	return nil
}

func (s *GormBlobStore) Keys(ctx context.Context, collection models.BlobCollection) ([]string, error) {
	db, err := s.table(ctx, collection)
	if err != nil {
		return nil, err
	}
	keys := []string{}
	if err := db.Pluck("id", &keys).Error; err != nil {
		return nil, unavailable("list blobs "+string(collection), err)
	}
	return keys, nil
}
