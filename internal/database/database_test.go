package database

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/kanbanflow/internal/config"
	"github.com/yukikurage/kanbanflow/internal/logging"
	"github.com/yukikurage/kanbanflow/internal/models"
)

func openRaw(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestMigrate_FreshStoreCreatesAllCollections(t *testing.T) {
	db := openRaw(t)

	require.NoError(t, Migrate(db, CurrentSchemaVersion, logging.Discard()))

	for _, table := range []string{"tasks", "members", "config", "attachments", "voice_notes", "avatars"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	version, err := SchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := openRaw(t)

	require.NoError(t, Migrate(db, CurrentSchemaVersion, logging.Discard()))
	require.NoError(t, db.Create(&models.Member{ID: "m1", Name: "Alice", Role: models.RoleAdmin}).Error)
	require.NoError(t, Migrate(db, CurrentSchemaVersion, logging.Discard()))

	var count int64
	require.NoError(t, db.Model(&models.Member{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMigrate_UpgradeFromVersionOneKeepsExistingMembers(t *testing.T) {
	db := openRaw(t)

	// members as written before the email column existed
	require.NoError(t, db.Exec(`CREATE TABLE members (
		id text PRIMARY KEY,
		name text NOT NULL,
		role text NOT NULL,
		avatar_url text,
		avatar_blob_key text,
		created_at datetime,
		updated_at datetime
	)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO members (id, name, role, avatar_url, avatar_blob_key, created_at, updated_at)
		VALUES ('m1', 'Old Timer', 'Member', 'https://example.com/a.png', '', '2024-01-01 00:00:00+00:00', '2024-01-01 00:00:00+00:00')`).Error)

	require.NoError(t, Migrate(db, 1, logging.Discard()))
	assert.False(t, db.Migrator().HasTable("avatars"))
	assert.False(t, db.Migrator().HasColumn(&models.Member{}, "Email"))

	require.NoError(t, Migrate(db, 2, logging.Discard()))
	assert.True(t, db.Migrator().HasTable("avatars"))
	assert.True(t, db.Migrator().HasColumn(&models.Member{}, "Email"))

	var member models.Member
	require.NoError(t, db.First(&member, "id = ?", "m1").Error)
	assert.Equal(t, "Old Timer", member.Name)
	assert.Nil(t, member.Email)
	assert.Equal(t, "https://example.com/a.png", member.AvatarURL)
}

func TestMigrate_RejectsNewerSchema(t *testing.T) {
	db := openRaw(t)
	require.NoError(t, Migrate(db, CurrentSchemaVersion, logging.Discard()))
	require.NoError(t, db.Save(&models.SchemaMeta{ID: 1, Version: CurrentSchemaVersion + 1}).Error)

	assert.Error(t, Migrate(db, CurrentSchemaVersion, logging.Discard()))
}

func TestGateway_OpensOnce(t *testing.T) {
	calls := 0
	gw := NewGateway(func() (*gorm.DB, error) {
		calls++
		return Connect(sqlite.Open(":memory:"), logger.Silent, logging.Discard())
	})
	t.Cleanup(func() { gw.Close() })

	assert.Equal(t, 0, calls)
	_, err := gw.DB(context.Background())
	require.NoError(t, err)
	_, err = gw.DB(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestConnect_LogsToGivenLogger(t *testing.T) {
	std := logtest.NewLocal(logrus.StandardLogger())
	log, hook := logtest.NewNullLogger()

	db, err := Connect(sqlite.Open(":memory:"), logger.Silent, log)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "Database connection established")
	assert.Contains(t, messages, "Created table")
	assert.Empty(t, std.AllEntries())
}

func TestGateway_OpenFailureIsSticky(t *testing.T) {
	boom := errors.New("disk full")
	calls := 0
	gw := NewGateway(func() (*gorm.DB, error) {
		calls++
		return nil, boom
	})

	_, err := gw.DB(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = gw.DB(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.NoError(t, gw.Close())
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"sqlite", "postgres", "mysql"} {
		d, err := Dialector(&config.Config{DBDriver: driver, DBPath: "x.db"})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
