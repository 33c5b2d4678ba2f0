package repository

import (
	"context"

	"github.com/yukikurage/kanbanflow/internal/database"
	"github.com/yukikurage/kanbanflow/internal/models"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	records gormCollection[models.Member]
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(gw *database.Gateway) MemberRepository {
	return &GormMemberRepository{records: gormCollection[models.Member]{gw: gw, name: "members"}}
}

func (r *GormMemberRepository) GetAll(ctx context.Context) ([]models.Member, error) {
	return r.records.getAll(ctx)
}

func (r *GormMemberRepository) Get(ctx context.Context, id string) (*models.Member, error) {
	return r.records.get(ctx, id)
}

func (r *GormMemberRepository) Put(ctx context.Context, member *models.Member) error {
	return r.records.put(ctx, member)
}

func (r *GormMemberRepository) Delete(ctx context.Context, id string) error {
	return r.records.delete(ctx, id)
}

func (r *GormMemberRepository) Clear(ctx context.Context) error {
	return r.records.clear(ctx)
}
