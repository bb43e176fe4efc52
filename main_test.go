package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vols_gis/backend/config"
	"vols_gis/backend/store"
)

func seedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "seed.db")}
	db, err := store.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	return db
}

func TestSeedAdmin(t *testing.T) {
	db := seedTestDB(t)

	seedAdmin(db)
	count, err := store.CountUsers(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	admin, err := store.GetUserByUsername(db, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role)
	assert.True(t, admin.IsActive)
	assert.NotEmpty(t, admin.PasswordHash)

	// a second start must not create another account
	seedAdmin(db)
	count, err = store.CountUsers(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGenerateRandomPassword(t *testing.T) {
	p1 := generateRandomPassword(12)
	p2 := generateRandomPassword(12)
	assert.Len(t, p1, 12)
	assert.NotEqual(t, p1, p2)
	for _, r := range p1 {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, ok, "unexpected character %q", r)
	}
}
