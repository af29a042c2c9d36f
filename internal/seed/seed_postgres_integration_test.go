//go:build integration

package seed

import (
	"context"
	"testing"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/database"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("contoso_pizza"),
		postgres.WithUsername("pizza"),
		postgres.WithPassword("pizza"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func openPostgres(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "postgres", URL: dsn})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestPostgresSeedReseedsSequences(t *testing.T) {
	dsn := startPostgres(t)
	db := openPostgres(t, dsn)
	require.NoError(t, database.Migrate(db))

	result, err := newTestInitializer(t, db).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Seeded)

	// explicit fixture ids must not collide with generated ones
	pizza := models.Pizza{Name: "Quattro Formaggi"}
	require.NoError(t, db.Create(&pizza).Error)
	assert.Equal(t, uint(4), pizza.ID)

	sauce := models.Sauce{Name: "Alfredo"}
	require.NoError(t, db.Create(&sauce).Error)
	assert.Equal(t, uint(3), sauce.ID)
}

func TestPostgresSeedFromTwoPoolsSeedsOnce(t *testing.T) {
	dsn := startPostgres(t)
	first, second := openPostgres(t, dsn), openPostgres(t, dsn)
	require.NoError(t, database.Migrate(first))

	done := make(chan Result, 2)
	for _, db := range []*gorm.DB{first, second} {
		initializer := newTestInitializer(t, db)
		go func() {
			result, err := initializer.Run(context.Background())
			assert.NoError(t, err)
			done <- result
		}()
	}

	seeded := 0
	for i := 0; i < 2; i++ {
		if (<-done).Seeded {
			seeded++
		}
	}
	assert.Equal(t, 1, seeded)
	assert.Equal(t, rowCounts{pizzas: 3, toppings: 5, sauces: 2, joins: 6}, countRows(t, first))
}
