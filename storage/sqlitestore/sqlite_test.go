package sqlitestore_test

import (
	"path/filepath"
	"testing"

	"github.com/cunservicios/portal/storage"
	"github.com/cunservicios/portal/storage/sqlitestore"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *sqlitestore.Store {
	t.Helper()
	s, err := sqlitestore.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_CRUD(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Get("token")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set("token", "abc"))
	require.NoError(t, s.Set("token", "def"))
	v, err := s.Get("token")
	require.NoError(t, err)
	require.Equal(t, "def", v)

	require.NoError(t, s.Delete("token"))
	require.NoError(t, s.Delete("token"))
	_, err = s.Get("token")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_Persistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.db")

	s, err := sqlitestore.New(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("portal.active_tenant", "muni-x"))
	require.NoError(t, s.Close())

	reopened, err := sqlitestore.New(path)
	require.NoError(t, err)
	defer reopened.Close()
	v, err := reopened.Get("portal.active_tenant")
	require.NoError(t, err)
	require.Equal(t, "muni-x", v)
}

func TestStore_Closed(t *testing.T) {
	s, err := sqlitestore.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Get("token")
	require.ErrorIs(t, err, storage.ErrUnavailable)
	require.ErrorIs(t, s.Set("token", "x"), storage.ErrUnavailable)
}
