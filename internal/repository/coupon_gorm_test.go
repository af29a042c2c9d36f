package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/database"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var now = time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)

func setupPromotionsDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "promotions.sqlite")})
	require.NoError(t, err)
	require.NoError(t, database.MigratePromotions(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func testCoupons() []models.Coupon {
	return []models.Coupon{
		{ID: 1, Expiration: now.Add(-24 * time.Hour), Description: "Expired spring deal"},
		{ID: 2, Expiration: now.Add(7 * 24 * time.Hour), Description: "Two for one Tuesdays"},
		{ID: 3, Expiration: now, Description: "Ends right now"},
	}
}

func TestGormCouponRepositoryList(t *testing.T) {
	db := setupPromotionsDB(t)
	require.NoError(t, db.Create(testCoupons()).Error)
	repo := NewGormCouponRepository(db)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, uint(1), all[0].ID)

	active, err := repo.ListActive(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Two for one Tuesdays", active[0].Description)
}

func TestGormCouponRepositoryListActiveAcrossOffsets(t *testing.T) {
	db := setupPromotionsDB(t)
	// rows written by another tool with local offsets rather than UTC
	require.NoError(t, db.Exec(`INSERT INTO coupons (id, expiration, description) VALUES
		(1, '2025-03-06 13:30:00+02:00', 'Ended in Athens'),
		(2, '2025-03-06 08:30:00-05:00', 'Ends in New York'),
		(3, '2025-03-06 12:00:00.5+00:00', 'Half a second left')`).Error)
	repo := NewGormCouponRepository(db)

	active, err := repo.ListActive(context.Background(), now.In(time.FixedZone("CET", 3600)))
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Ends in New York", active[0].Description)
	assert.Equal(t, "Half a second left", active[1].Description)
	assert.True(t, active[0].Expiration.Equal(now.Add(90*time.Minute)))
}

func TestGormCouponRepositoryGetByID(t *testing.T) {
	db := setupPromotionsDB(t)
	require.NoError(t, db.Create(testCoupons()).Error)
	repo := NewGormCouponRepository(db)

	coupon, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Two for one Tuesdays", coupon.Description)
	assert.True(t, coupon.Expiration.Equal(now.Add(7*24*time.Hour)))

	_, err = repo.GetByID(context.Background(), 42)
	assert.True(t, errors.Is(err, ErrCouponNotFound))
}

func TestGormCouponRepositoryEmptyStore(t *testing.T) {
	repo := NewGormCouponRepository(setupPromotionsDB(t))

	coupons, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, coupons)
}
