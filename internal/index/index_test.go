package index

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atriumhq/atrium/internal/testutil"
)

// memStorage implements Storage in memory.
type memStorage struct {
	snap    *Snapshot
	loadErr error
	saveErr error
	saves   int
}

func (s *memStorage) Load() (*Snapshot, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.snap == nil {
		return nil, os.ErrNotExist
	}
	return s.snap, nil
}

func (s *memStorage) Save(snap *Snapshot) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snap = snap
	return nil
}

// doc builds a document long enough to survive the minimum chunk length,
// already whitespace-normalized so its chunk text is predictable.
func doc(topic string) string {
	return strings.TrimSpace(strings.Repeat(topic+" applies to all employees of the company. ", 3))
}

func newTestIndex(t *testing.T, emb *testutil.MockEmbedder, storage Storage) *Index {
	t.Helper()
	return New(context.Background(), emb, storage, testutil.DiscardLogger(), Options{})
}

func TestNewSeedsWhenSnapshotMissing(t *testing.T) {
	storage := &memStorage{}
	idx := newTestIndex(t, testutil.NewMockEmbedder(), storage)

	assert.Equal(t, 10, idx.Len())
	require.NotNil(t, storage.snap)
	assert.Len(t, storage.snap.Chunks, 10)
	assert.Len(t, storage.snap.Vectors, 10)
}

func TestNewLoadsExistingSnapshot(t *testing.T) {
	storage := &memStorage{snap: &Snapshot{
		Chunks:  []Chunk{{Text: "cached", Metadata: map[string]string{MetaSource: "cache"}}},
		Vectors: [][]float32{{1, 0}},
	}}
	emb := testutil.NewMockEmbedder()

	idx := newTestIndex(t, emb, storage)

	assert.Equal(t, 1, idx.Len())
	assert.Zero(t, emb.CallCount, "a clean snapshot must not trigger re-embedding")
}

func TestNewStartsEmptyWhenEmbedderDown(t *testing.T) {
	emb := testutil.NewMockEmbedder()
	emb.Err = errors.New("quota exhausted")

	idx := newTestIndex(t, emb, &memStorage{})

	assert.Zero(t, idx.Len())
	results, err := idx.Retrieve(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestIngestAndRetrieve(t *testing.T) {
	emb := testutil.NewMockEmbedder()
	storage := &memStorage{}
	idx := newTestIndex(t, emb, storage)

	text := doc("remote work equipment allowance")
	emb.SetVector(text, []float32{1, 0, 0})
	emb.SetVector("what is the equipment allowance?", []float32{1, 0, 0})

	n, err := idx.Ingest(context.Background(), []byte(text), "allowance.txt", "Benefits")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 11, idx.Len())

	results, err := idx.Retrieve(context.Background(), "what is the equipment allowance?")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, text, results[0].Text)
	assert.Equal(t, "allowance.txt", results[0].Metadata[MetaSource])
	assert.Equal(t, "Benefits", results[0].Metadata[MetaLabel])
	assert.InDelta(t, 0, results[0].Distance, 1e-6)
}

func TestIngestFailures(t *testing.T) {
	t.Run("embedder failure", func(t *testing.T) {
		emb := testutil.NewMockEmbedder()
		idx := newTestIndex(t, emb, &memStorage{})

		emb.Err = errors.New("boom")
		n, err := idx.Ingest(context.Background(), []byte(doc("expense policy")), "a.txt", "")
		assert.Zero(t, n)
		assert.ErrorIs(t, err, ErrEmbedding)
		assert.Equal(t, 10, idx.Len(), "failed ingest must not commit")
	})

	t.Run("persist failure", func(t *testing.T) {
		storage := &memStorage{}
		idx := newTestIndex(t, testutil.NewMockEmbedder(), storage)

		storage.saveErr = ErrPersist
		n, err := idx.Ingest(context.Background(), []byte(doc("expense policy")), "a.txt", "")
		assert.Zero(t, n)
		assert.ErrorIs(t, err, ErrPersist)
		assert.Equal(t, 10, idx.Len())
	})

	t.Run("empty document", func(t *testing.T) {
		idx := newTestIndex(t, testutil.NewMockEmbedder(), &memStorage{})

		n, err := idx.Ingest(context.Background(), []byte("  \n "), "empty.txt", "")
		assert.Zero(t, n)
		assert.ErrorIs(t, err, ErrDecode)
	})
}

func TestRetrieveRelevanceFloor(t *testing.T) {
	emb := testutil.NewMockEmbedder()
	storage := &memStorage{snap: &Snapshot{
		Chunks: []Chunk{
			{Text: "vpn troubleshooting guide", Metadata: map[string]string{MetaSource: "vpn.txt"}},
			{Text: "cafeteria menu rotation", Metadata: map[string]string{MetaSource: "menu.txt"}},
		},
		Vectors: [][]float32{{1, 0, 0}, {0, 1, 0}},
	}}
	emb.SetVector("vpn help", []float32{1, 0, 0})

	idx := newTestIndex(t, emb, storage)

	// The orthogonal chunk sits at distance 1.0, beyond the 0.85 floor,
	// so it stays out even though topK has room.
	results, err := idx.Retrieve(context.Background(), "vpn help", WithTopK(50))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "vpn troubleshooting guide", results[0].Text)
}

func TestRetrieveOrderingAndTopK(t *testing.T) {
	emb := testutil.NewMockEmbedder()
	storage := &memStorage{snap: &Snapshot{
		Chunks: []Chunk{
			{Text: "gamma", Metadata: map[string]string{MetaSource: "c.txt"}},
			{Text: "alpha", Metadata: map[string]string{MetaSource: "a.txt"}},
			{Text: "beta", Metadata: map[string]string{MetaSource: "b.txt"}},
		},
		Vectors: [][]float32{
			{0.8, 0.6, 0},
			{1, 0, 0},
			{0.95, 0.3122499, 0},
		},
	}}
	emb.SetVector("query", []float32{1, 0, 0})

	idx := newTestIndex(t, emb, storage)

	results, err := idx.Retrieve(context.Background(), "query", WithTopK(2))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "alpha", results[0].Text)
	assert.Equal(t, "beta", results[1].Text)
	assert.Less(t, results[0].Distance, results[1].Distance)
}

func TestRetrieveTypeFilter(t *testing.T) {
	emb := testutil.NewMockEmbedder()
	storage := &memStorage{snap: &Snapshot{
		Chunks: []Chunk{
			{Text: "hr text", Metadata: map[string]string{MetaType: "hr_policy", MetaSource: "hr"}},
			{Text: "warehouse text", Metadata: map[string]string{MetaType: "table_schema", MetaSource: "wh"}},
		},
		Vectors: [][]float32{{1, 0}, {1, 0}},
	}}
	emb.SetVector("q", []float32{1, 0})

	idx := newTestIndex(t, emb, storage)

	results, err := idx.Retrieve(context.Background(), "q", WithTypeFilter("table_schema"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "warehouse text", results[0].Text)
}

func TestSourcesAndDeleteSource(t *testing.T) {
	emb := testutil.NewMockEmbedder()
	storage := &memStorage{}
	idx := newTestIndex(t, emb, storage)

	// Two sources carrying identical chunk text.
	text := doc("duplicate policy text")
	for _, name := range []string{"one.txt", "two.txt"} {
		_, err := idx.Ingest(context.Background(), []byte(text), name, "")
		require.NoError(t, err)
	}

	sources := idx.Sources()
	counts := make(map[string]int)
	for _, s := range sources {
		counts[s.Source] = s.Chunks
	}
	assert.Equal(t, 1, counts["one.txt"])
	assert.Equal(t, 1, counts["two.txt"])

	removed, err := idx.DeleteSource("one.txt")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 11, idx.Len())

	// Identical text under the other source survives.
	counts = make(map[string]int)
	for _, s := range idx.Sources() {
		counts[s.Source] = s.Chunks
	}
	assert.Zero(t, counts["one.txt"])
	assert.Equal(t, 1, counts["two.txt"])

	// Second delete is a no-op.
	savesBefore := storage.saves
	removed, err = idx.DeleteSource("one.txt")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 11, idx.Len())
	assert.Equal(t, savesBefore, storage.saves)
}

func TestFormatContext(t *testing.T) {
	assert.Empty(t, FormatContext(nil))

	got := FormatContext([]Result{
		{Text: "chunk one", Metadata: map[string]string{MetaSource: "HR Policy Manual"}},
		{Text: "chunk two", Metadata: map[string]string{MetaType: "hr_policy"}},
	})
	assert.Contains(t, got, "=== CONTEXT FROM KNOWLEDGE BASE ===")
	assert.Contains(t, got, "[1] Source: HR Policy Manual")
	assert.Contains(t, got, "[2] Source: hr_policy")
	assert.Contains(t, got, "=== END ===")
}
