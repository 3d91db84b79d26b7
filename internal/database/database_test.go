package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/models"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "app.db")}

	db, err := database.Open(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.RunMigrations(db, "does-not-matter", zap.NewNop()))
	assert.NoError(t, database.HealthCheck(context.Background(), db))

	for _, m := range models.AllModels() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestSQLiteEnforcesForeignKeys(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	err = db.Create(&models.SavedRecipe{UserID: 42, RecipeID: 42}).Error
	assert.Error(t, err)
}

func TestSQLiteTranslatesDuplicateKey(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "dup.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	u := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", FirstName: "A", LastName: "L"}
	require.NoError(t, db.Create(&u).Error)

	dup := models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x", FirstName: "A", LastName: "L"}
	assert.ErrorIs(t, db.Create(&dup).Error, gorm.ErrDuplicatedKey)
}

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"000002_add.sql", "000001_init.sql", "000001_init_rollback.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600))
	}

	files, err := database.MigrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init.sql", "000002_add.sql"}, files)
	assert.Equal(t, "000002", database.MigrationVersion(files[1]))

	_, err = database.MigrationFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRepoMigrationsHaveRollbacks(t *testing.T) {
	dir := filepath.Join("..", "..", "migrations")
	files, err := database.MigrationFiles(dir)
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		rollback := filepath.Join(dir, f[:len(f)-len(".sql")]+database.RollbackSuffix)
		_, err := os.Stat(rollback)
		assert.NoError(t, err, "missing rollback for %s", f)
	}
}

func TestNewRedisClientDisabledWithoutURL(t *testing.T) {
	client, err := database.NewRedisClient(&config.Config{}, zap.NewNop())
	assert.NoError(t, err)
	assert.Nil(t, client)
}
