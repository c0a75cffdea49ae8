package migration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_SortsAndChecksums(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__second.sql": {Data: []byte("SELECT 2;\n")},
		"V1__first.sql":  {Data: []byte("  SELECT 1;  ")},
		"README.md":      {Data: []byte("ignored")},
	}

	migs, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	require.Equal(t, int64(1), migs[0].Version)
	require.Equal(t, "first", migs[0].Name)
	require.Equal(t, "SELECT 1;", migs[0].SQL)
	require.Len(t, migs[0].Checksum, 64)
	require.Equal(t, int64(2), migs[1].Version)
}

func TestLoadMigrations_RejectsDuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 1;")},
	}
	_, err := loadMigrations(fsys)
	require.ErrorContains(t, err, "duplicate migration version")
}

func TestLoadMigrations_RejectsEmptyFile(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{"V1__empty.sql": {Data: []byte("  \n")}})
	require.ErrorContains(t, err, "empty migration file")
}

func TestEmbeddedMigrations(t *testing.T) {
	fsys, err := Runner{}.source()
	require.NoError(t, err)

	migs, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	require.Equal(t, int64(1), migs[0].Version)
	require.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS recommendations")
}
