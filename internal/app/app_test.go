package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atriumhq/atrium/internal/store"
	"github.com/atriumhq/atrium/internal/testutil"
)

func TestAppCloseEmpty(t *testing.T) {
	a := &App{}
	assert.NoError(t, a.Close())
}

func TestAppCloseReleasesStore(t *testing.T) {
	logger := testutil.DiscardLogger()
	st, err := store.Open(filepath.Join(t.TempDir(), "atrium.db"), logger)
	require.NoError(t, err)

	a := &App{Store: st}
	assert.NoError(t, a.Close())
	assert.Nil(t, a.Store)

	// Idempotent
	assert.NoError(t, a.Close())
}
