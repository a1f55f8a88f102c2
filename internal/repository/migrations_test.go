package repository

import (
	"context"
	"testing"

	"supermarket/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrations_ResetAndReapply(t *testing.T) {
	resetTables(t)
	seedProduct(t, "Milk", "Dairy", "1.50", 10)
	logger := zap.NewNop()

	require.NoError(t, database.GetMigrationStatus(testDB, logger))
	require.NoError(t, database.ResetMigrations(testDB, logger))

	var exists bool
	require.NoError(t, testDB.QueryRow(`SELECT to_regclass('public.products') IS NOT NULL`).Scan(&exists))
	assert.False(t, exists)

	require.NoError(t, database.RunMigrations(testDB, logger))
	require.NoError(t, testDB.QueryRow(`SELECT to_regclass('public.products') IS NOT NULL`).Scan(&exists))
	assert.True(t, exists)

	// applying again is a no-op
	require.NoError(t, database.RunMigrations(testDB, logger))
}

func TestDatabaseHealth_Up(t *testing.T) {
	health := database.Wrap(testDB).Health(context.Background())

	assert.Equal(t, "up", health["status"])
	assert.Contains(t, health, "open_connections")
}
