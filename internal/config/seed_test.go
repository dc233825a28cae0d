package config

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dsmolkov/ecommerce_backend/internal/hash"
	"github.com/dsmolkov/ecommerce_backend/internal/models"
)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestSeedAdminOnEmptyTable(t *testing.T) {
	db := newSeedDB(t)

	require.NoError(t, SeedAdmin(db, "root", "s3cret"))

	var admin models.User
	require.NoError(t, db.Where("username = ?", "root").First(&admin).Error)
	require.Equal(t, models.RoleAdmin, admin.Role)
	require.True(t, hash.CheckPassword(admin.PasswordHash, "s3cret"))

	// Seeding again is a no-op: the table is no longer empty.
	require.NoError(t, SeedAdmin(db, "root", "s3cret"))
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSeedAdminSkipsWhenUsersExist(t *testing.T) {
	db := newSeedDB(t)

	require.NoError(t, db.Create(&models.User{
		Username:     "someone",
		PasswordHash: "x",
		Role:         models.RoleUser,
	}).Error)

	require.NoError(t, SeedAdmin(db, "root", "s3cret"))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestSeedAdminDefaultsUsernameAndRequiresPassword(t *testing.T) {
	db := newSeedDB(t)

	// No password configured: refuse to boot an admin-less deployment
	// silently.
	require.Error(t, SeedAdmin(db, "", ""))

	require.NoError(t, SeedAdmin(db, "", "s3cret"))
	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	require.Equal(t, models.RoleAdmin, admin.Role)
}