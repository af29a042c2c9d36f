package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.sqlite")})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestInitDatabaseSQLite(t *testing.T) {
	db := openTestDB(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	assert.Equal(t, "sqlite", db.Dialector.Name())
}

func TestInitDatabaseUnsupportedDriver(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: "oracle"})

	assert.Nil(t, db)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrateCreatesTables(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, MigratePromotions(db))

	for _, table := range []string{"pizzas", "toppings", "sauces", "pizza_toppings", "users", "oauth_clients", "oauth_tokens", "coupons"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestResetSequenceIsNoopOnSQLite(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	require.NoError(t, db.Create(&models.Sauce{ID: 10, Name: "Tomato"}).Error)
	require.NoError(t, ResetSequence(db, "sauces"))

	next := models.Sauce{Name: "Pesto"}
	require.NoError(t, db.Create(&next).Error)
	assert.Equal(t, uint(11), next.ID)
}

func TestTableName(t *testing.T) {
	db := openTestDB(t)

	name, err := TableName(db, &models.Topping{})
	require.NoError(t, err)
	assert.Equal(t, "toppings", name)
}

func TestIsUniqueViolation(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	topping := models.Topping{ID: 1, Name: "Ham", Calories: decimal.NewFromInt(70)}
	require.NoError(t, db.Create(&topping).Error)
	err := db.Create(&models.Topping{ID: 1, Name: "Ham again", Calories: decimal.NewFromInt(70)}).Error

	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(gorm.ErrRecordNotFound))
}

func TestInitDatabaseGivesUpAfterRetries(t *testing.T) {
	saved := retryDelays
	retryDelays = []time.Duration{time.Millisecond, time.Millisecond}
	t.Cleanup(func() { retryDelays = saved })

	// the parent directory does not exist, so sqlite cannot create the file
	db, err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "missing", "pizza.db")})
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "after 3 attempts")
}
