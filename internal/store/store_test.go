package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atriumhq/atrium/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), testutil.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenSeedsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atrium.db")

	s, err := Open(path, testutil.DiscardLogger())
	require.NoError(t, err)
	employees, err := s.SearchEmployees(t.Context(), "", "", "")
	require.NoError(t, err)
	require.Len(t, employees, 12)
	require.NoError(t, s.Close())

	// Reopening must not duplicate the demo dataset.
	s, err = Open(path, testutil.DiscardLogger())
	require.NoError(t, err)
	defer s.Close()
	employees, err = s.SearchEmployees(t.Context(), "", "", "")
	require.NoError(t, err)
	require.Len(t, employees, 12)
}
