package database_test

import (
	"testing"

	"catalog/internal/database"
	"catalog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	db, err := database.Open(database.Config{
		Driver:       "sqlite",
		DSN:          "file:database_open?mode=memory&cache=shared",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	defer database.Close(db)

	assert.True(t, db.Migrator().HasTable(&models.Product{}))
	assert.True(t, db.Migrator().HasTable(&models.User{}))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := database.Open(database.Config{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
