package repository

import (
	"context"

	"github.com/yukikurage/kanbanflow/internal/database"
	"github.com/yukikurage/kanbanflow/internal/models"
)

// GormConfigRepository is a GORM implementation of ConfigRepository
type GormConfigRepository struct {
	records gormCollection[models.BoardConfig]
}

// NewConfigRepository creates a new ConfigRepository
func NewConfigRepository(gw *database.Gateway) ConfigRepository {
	return &GormConfigRepository{records: gormCollection[models.BoardConfig]{gw: gw, name: "config"}}
}

func (r *GormConfigRepository) Get(ctx context.Context, id string) (*models.BoardConfig, error) {
	return r.records.get(ctx, id)
}

func (r *GormConfigRepository) Put(ctx context.Context, cfg *models.BoardConfig) error {
	return r.records.put(ctx, cfg)
}
