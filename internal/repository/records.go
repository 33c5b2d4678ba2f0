package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/kanbanflow/internal/database"
)

// gormCollection implements the record-store contract for one model type
type gormCollection[T any] struct {
	gw   *database.Gateway
	name string
}

func (c gormCollection[T]) db(ctx context.Context) (*gorm.DB, error) {
	db, err := c.gw.DB(ctx)
	if err != nil {
		return nil, unavailable("open "+c.name, err)
	}
	return db, nil
}

func (c gormCollection[T]) getAll(ctx context.Context) ([]T, error) {
	db, err := c.db(ctx)
	if err != nil {
		return nil, err
	}
	records := []T{}
	if err := db.Find(&records).Error; err != nil {
		return nil, unavailable("list "+c.name, err)
	}
	return records, nil
}

func (c gormCollection[T]) get(ctx context.Context, id string) (*T, error) {
	db, err := c.db(ctx)
	if err != nil {
		return nil, err
	}
	var record T
	if err := db.Where("id = ?", id).Take(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable("get "+c.name, err)
	}
	return &record, nil
}

func (c gormCollection[T]) put(ctx context.Context, record *T) error {
	db, err := c.db(ctx)
	if err != nil {
		return err
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(record).Error
	if err != nil {
		return unavailable("put "+c.name, err)
	}
	return nil
}

func (c gormCollection[T]) delete(ctx context.Context, id string) error {
	db, err := c.db(ctx)
	if err != nil {
		return err
	}
	if err := db.Where("id = ?", id).Delete(new(T)).Error; err != nil {
		return unavailable("delete "+c.name, err)
	}
	return nil
}

func (c gormCollection[T]) clear(ctx context.Context) error {
	db, err := c.db(ctx)
	if err != nil {
		return err
	}
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error; err != nil {
		return unavailable("clear "+c.name, err)
	}
	return nil
}
