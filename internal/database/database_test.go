package database

import (
	"testing"

	"aebox-api/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// setupTestDB points the package at an in-memory SQLite database.
// Connections are capped at one so concurrent writes serialize instead of
// hitting SQLite's write lock.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Application{},
		&models.Subscription{},
		&models.PaymentHistory{},
	))

	DB = db
	t.Cleanup(func() {
		DB = nil
		_ = sqlDB.Close()
	})
}
