package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atriumhq/atrium/internal/testutil"
)

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "knowledge.idx")
	storage := NewFileStorage(path)

	snap := &Snapshot{
		Chunks: []Chunk{
			{Text: "one", Metadata: map[string]string{MetaSource: "a", MetaType: "hr_policy"}},
			{Text: "two", Metadata: map[string]string{MetaSource: "b"}},
		},
		Vectors: [][]float32{{0.1, 0.2}, {0.3, 0.4}},
	}
	require.NoError(t, storage.Save(snap))

	loaded, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, snap.Chunks, loaded.Chunks)
	assert.Equal(t, snap.Vectors, loaded.Vectors)
}

func TestFileStorageLoadMissing(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "absent.idx"))
	_, err := storage.Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileStorageLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge.idx")
	require.NoError(t, os.WriteFile(path, []byte("not a snapshot"), 0o600))

	_, err := NewFileStorage(path).Load()
	assert.ErrorIs(t, err, ErrCorrupt)
}

// A corrupt snapshot on disk must trigger a reseed, not a crash, and the
// reseeded snapshot must replace the corrupt file.
func TestNewReseedsCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge.idx")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	storage := NewFileStorage(path)
	idx := New(context.Background(), testutil.NewMockEmbedder(), storage,
		testutil.DiscardLogger(), Options{})

	assert.Equal(t, 10, idx.Len())

	loaded, err := storage.Load()
	require.NoError(t, err)
	assert.Len(t, loaded.Chunks, 10)
}
