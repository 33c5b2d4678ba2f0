package repository

import (
	"context"

	"github.com/yukikurage/kanbanflow/internal/database"
	"github.com/yukikurage/kanbanflow/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	records gormCollection[models.Task]
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(gw *database.Gateway) TaskRepository {
	return &GormTaskRepository{records: gormCollection[models.Task]{gw: gw, name: "tasks"}}
}

func (r *GormTaskRepository) GetAll(ctx context.Context) ([]models.Task, error) {
	return r.records.getAll(ctx)
}

func (r *GormTaskRepository) Get(ctx context.Context, id string) (*models.Task, error) {
	return r.records.get(ctx, id)
}

func (r *GormTaskRepository) Put(ctx context.Context, task *models.Task) error {
	return r.records.put(ctx, task)
}

func (r *GormTaskRepository) Delete(ctx context.Context, id string) error {
	return r.records.delete(ctx, id)
}

func (r *GormTaskRepository) Clear(ctx context.Context) error {
	return r.records.clear(ctx)
}
