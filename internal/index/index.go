package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/firebase/genkit/go/ai"

	"github.com/atriumhq/atrium/internal/config"
)

// Index holds indexed chunks and their embeddings in two parallel slices.
// The slices are always the same length and order; every mutation updates
// both under the write lock and persists a snapshot before committing, so
// memory and disk never disagree.
type Index struct {
	mu      sync.RWMutex
	chunks  []Chunk
	vectors [][]float32

	embedder ai.Embedder
	storage  Storage
	logger   *slog.Logger

	chunker Chunker
	topK    int
	floor   float64
}

// Options tunes retrieval and chunking. Zero values fall back to the
// package defaults in internal/config.
type Options struct {
	TopK           int
	RelevanceFloor float64
	Chunker        Chunker
}

// New builds the index and bootstraps its contents: the snapshot on disk
// when one loads cleanly, otherwise the embedded seed corpus. Bootstrap
// problems are logged, never fatal; worst case the index starts empty and
// retrieval returns nothing.
func New(ctx context.Context, embedder ai.Embedder, storage Storage, logger *slog.Logger, opts Options) *Index {
	if opts.TopK <= 0 {
		opts.TopK = config.DefaultTopK
	}
	if opts.RelevanceFloor <= 0 {
		opts.RelevanceFloor = config.DefaultRelevanceFloor
	}
	if opts.Chunker.Words <= 0 {
		opts.Chunker = Chunker{
			Words:    config.DefaultChunkWords,
			Overlap:  config.DefaultChunkOverlap,
			MinChars: config.DefaultMinChunkChars,
		}
	}

	i := &Index{
		embedder: embedder,
		storage:  storage,
		logger:   logger.With("component", "index"),
		chunker:  opts.Chunker,
		topK:     opts.TopK,
		floor:    opts.RelevanceFloor,
	}
	i.bootstrap(ctx)
	return i
}

func (i *Index) bootstrap(ctx context.Context) {
	snap, err := i.storage.Load()
	switch {
	case err == nil && len(snap.Chunks) > 0:
		i.chunks = snap.Chunks
		i.vectors = snap.Vectors
		i.logger.Info("loaded snapshot", "chunks", len(i.chunks))
		return
	case err == nil:
		// Empty snapshot, treat like a fresh start.
	case errors.Is(err, os.ErrNotExist):
		i.logger.Debug("no snapshot on disk, seeding base corpus")
	default:
		i.logger.Warn("snapshot unusable, reseeding base corpus", "error", err)
	}

	chunks, err := seedChunks()
	if err != nil {
		i.logger.Warn("seed corpus unavailable, starting empty", "error", err)
		return
	}
	texts := make([]string, len(chunks))
	for j, c := range chunks {
		texts[j] = c.Text
	}
	vectors, err := i.embedAll(ctx, texts)
	if err != nil {
		i.logger.Warn("seed embedding failed, starting empty", "error", err)
		return
	}

	i.chunks = chunks
	i.vectors = vectors
	if err := i.storage.Save(&Snapshot{Chunks: chunks, Vectors: vectors}); err != nil {
		i.logger.Warn("could not persist seeded snapshot", "error", err)
	}
	i.logger.Info("seeded base corpus", "chunks", len(chunks))
}

// Ingest decodes a document, chunks it, embeds the chunks, and commits
// them to the index and the snapshot. Returns the number of chunks added.
// All failure modes return 0 and a wrapped sentinel; nothing is committed
// partially.
func (i *Index) Ingest(ctx context.Context, raw []byte, filename, label string) (int, error) {
	if label == "" {
		label = "HR Policy"
	}

	text, err := decodeDocument(raw, filename)
	if err != nil {
		return 0, err
	}

	pieces := i.chunker.Split(text)
	if len(pieces) == 0 {
		return 0, nil
	}

	vectors, err := i.embedAll(ctx, pieces)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	chunks := make([]Chunk, len(pieces))
	for j, p := range pieces {
		chunks[j] = Chunk{
			Text: p,
			Metadata: map[string]string{
				MetaType:   "hr_policy",
				MetaSource: filename,
				MetaLabel:  label,
			},
		}
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	newChunks := append(append([]Chunk{}, i.chunks...), chunks...)
	newVectors := append(append([][]float32{}, i.vectors...), vectors...)
	if err := i.storage.Save(&Snapshot{Chunks: newChunks, Vectors: newVectors}); err != nil {
		return 0, err
	}
	i.chunks = newChunks
	i.vectors = newVectors

	i.logger.Info("indexed document", "source", filename, "chunks", len(chunks))
	return len(chunks), nil
}

// Retrieve returns up to topK chunks most similar to the query, ascending
// by cosine distance. Chunks at or beyond the relevance floor are never
// returned, even when fewer than topK made the cut. An empty index or an
// embedder failure yields no results rather than an error; the caller's
// answer just goes ungrounded.
func (i *Index) Retrieve(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	cfg := i.buildSearchConfig(opts)

	i.mu.RLock()
	chunks, vectors := i.chunks, i.vectors
	i.mu.RUnlock()

	if len(chunks) == 0 {
		return nil, nil
	}

	qv, err := i.embedAll(ctx, []string{query})
	if err != nil {
		i.logger.Warn("query embedding failed", "error", err)
		return nil, nil
	}

	order := make([]int, len(chunks))
	dists := make([]float64, len(chunks))
	for j := range chunks {
		order[j] = j
		dists[j] = cosineDistance(qv[0], vectors[j])
	}
	sort.Slice(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })

	var results []Result
	for _, j := range order {
		if dists[j] >= i.floor {
			break
		}
		if cfg.typeFilter != "" && chunks[j].Metadata[MetaType] != cfg.typeFilter {
			continue
		}
		results = append(results, Result{
			Text:     chunks[j].Text,
			Metadata: chunks[j].Metadata,
			Distance: dists[j],
		})
		if len(results) >= cfg.topK {
			break
		}
	}
	return results, nil
}

// Sources reports chunk counts grouped by source, sorted by source name.
func (i *Index) Sources() []SourceCount {
	i.mu.RLock()
	defer i.mu.RUnlock()

	counts := make(map[string]int)
	for _, c := range i.chunks {
		s := c.Metadata[MetaSource]
		if s == "" {
			s = "internal"
		}
		counts[s]++
	}

	out := make([]SourceCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, SourceCount{Source: s, Chunks: n})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Source < out[b].Source })
	return out
}

// Len reports the number of indexed chunks.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.chunks)
}

// DeleteSource removes every chunk whose source metadata equals name and
// reports whether anything was removed. Removal is positional, so
// duplicate chunk texts under different sources are unaffected. Deleting
// an absent source is a no-op.
func (i *Index) DeleteSource(name string) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	keepChunks := make([]Chunk, 0, len(i.chunks))
	keepVectors := make([][]float32, 0, len(i.vectors))
	for j, c := range i.chunks {
		if c.Metadata[MetaSource] == name {
			continue
		}
		keepChunks = append(keepChunks, c)
		keepVectors = append(keepVectors, i.vectors[j])
	}

	if len(keepChunks) == len(i.chunks) {
		return false, nil
	}

	if err := i.storage.Save(&Snapshot{Chunks: keepChunks, Vectors: keepVectors}); err != nil {
		return false, err
	}
	i.chunks = keepChunks
	i.vectors = keepVectors

	i.logger.Info("deleted source", "source", name, "remaining", len(keepChunks))
	return true, nil
}

func (i *Index) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	docs := make([]*ai.Document, len(texts))
	for j, t := range texts {
		docs[j] = ai.DocumentFromText(t, nil)
	}

	resp, err := i.embedder.Embed(ctx, &ai.EmbedRequest{Input: docs})
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts",
			len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for j, e := range resp.Embeddings {
		if len(e.Embedding) == 0 {
			return nil, fmt.Errorf("empty embedding at position %d", j)
		}
		vectors[j] = e.Embedding
	}
	return vectors, nil
}

// cosineDistance computes 1 minus the cosine similarity of a and b. The
// epsilon keeps zero vectors from dividing by zero.
func cosineDistance(a, b []float32) float64 {
	const eps = 1e-10

	n := min(len(a), len(b))
	var dot, na, nb float64
	for j := 0; j < n; j++ {
		dot += float64(a[j]) * float64(b[j])
		na += float64(a[j]) * float64(a[j])
		nb += float64(b[j]) * float64(b[j])
	}
	sim := dot / ((math.Sqrt(na) + eps) * (math.Sqrt(nb) + eps))
	return 1 - sim
}

// FormatContext renders retrieved chunks as a context block for grounded
// generation, numbering each chunk with its source.
func FormatContext(results []Result) string {
	if len(results) == 0 {
		return ""
	}
	out := "=== CONTEXT FROM KNOWLEDGE BASE ==="
	for n, r := range results {
		src := r.Metadata[MetaSource]
		if src == "" {
			src = r.Metadata[MetaType]
		}
		out += fmt.Sprintf("\n\n[%d] Source: %s\n%s", n+1, src, r.Text)
	}
	out += "\n=== END ==="
	return out
}
