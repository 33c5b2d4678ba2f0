package database

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yukikurage/kanbanflow/internal/models"
)

// CurrentSchemaVersion is the schema version this build creates and understands
const CurrentSchemaVersion = 2

type migration struct {
	version int
	name    string
	apply   func(db *gorm.DB, log logrus.FieldLogger) error
}

// Migrations only ever add tables or columns; existing record shapes are left alone.
var migrations = []migration{
	{
		version: 1,
		name:    "initial collections",
		apply: func(db *gorm.DB, log logrus.FieldLogger) error {
			if err := createTable(db, log, "tasks", &models.Task{}); err != nil {
				return err
			}
			if err := createTable(db, log, "members", &models.Member{}); err != nil {
				return err
			}
			if err := createTable(db, log, "config", &models.BoardConfig{}); err != nil {
				return err
			}
			if err := createTable(db, log, string(models.BlobAttachments), &models.Blob{}); err != nil {
				return err
			}
			return createTable(db, log, string(models.BlobVoiceNotes), &models.Blob{})
		},
	},
	{
		version: 2,
		name:    "avatars and member email",
		apply: func(db *gorm.DB, log logrus.FieldLogger) error {
			if err := createTable(db, log, string(models.BlobAvatars), &models.Blob{}); err != nil {
				return err
			}
			if !db.Migrator().HasColumn(&models.Member{}, "Email") {
				if err := db.Migrator().AddColumn(&models.Member{}, "Email"); err != nil {
					return fmt.Errorf("failed to add members.email: %w", err)
				}
			}
			return nil
		},
	},
}

func createTable(db *gorm.DB, log logrus.FieldLogger, table string, model interface{}) error {
	if db.Migrator().HasTable(table) {
		return nil
	}
	if err := db.Table(table).Migrator().CreateTable(model); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	log.WithField("table", table).Info("Created table")
	return nil
}

// SchemaVersion reports the version recorded in the database, 0 for a fresh store
func SchemaVersion(db *gorm.DB) (int, error) {
	if !db.Migrator().HasTable(&models.SchemaMeta{}) {
		return 0, nil
	}
	var meta models.SchemaMeta
	if err := db.First(&meta, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return meta.Version, nil
}

// Migrate applies every migration above the stored version up to target
func Migrate(db *gorm.DB, target int, log logrus.FieldLogger) error {
	if err := db.AutoMigrate(&models.SchemaMeta{}); err != nil {
		return fmt.Errorf("failed to prepare schema_meta: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	if current > target {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, target)
	}

	for _, m := range migrations {
		if m.version <= current || m.version > target {
			continue
		}
		log.WithFields(logrus.Fields{"version": m.version, "name": m.name}).Info("Running database migration")
		if err := m.apply(db, log); err != nil {
			return fmt.Errorf("failed to run migration %d (%s): %w", m.version, m.name, err)
		}
		if err := db.Save(&models.SchemaMeta{ID: 1, Version: m.version}).Error; err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", m.version, err)
		}
	}
	return nil
}
