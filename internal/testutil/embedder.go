// Package testutil provides shared test doubles: a deterministic embedder
// and a scriptable generator, plus quiet loggers.
package testutil

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"sync"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
)

// MockEmbedderDim is the dimensionality of vectors produced by MockEmbedder.
const MockEmbedderDim = 8

// MockEmbedder implements ai.Embedder without any network access. By
// default every text maps to a deterministic unit vector derived from its
// SHA-256 hash, so identical texts always embed identically and distinct
// texts almost never collide. Individual texts can be pinned to explicit
// vectors with SetVector to make similarity relationships exact in tests.
type MockEmbedder struct {
	mu        sync.Mutex
	overrides map[string][]float32

	Err       error // returned by Embed when set
	CallCount int
}

func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{overrides: make(map[string][]float32)}
}

// SetVector pins text to an explicit embedding.
func (m *MockEmbedder) SetVector(text string, vec []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[text] = vec
}

func (m *MockEmbedder) Name() string { return "mock-embedder" }

func (m *MockEmbedder) Register(_ api.Registry) {}

func (m *MockEmbedder) Embed(ctx context.Context, req *ai.EmbedRequest) (*ai.EmbedResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++

	if m.Err != nil {
		return nil, m.Err
	}

	resp := &ai.EmbedResponse{}
	for _, doc := range req.Input {
		text := ""
		if len(doc.Content) > 0 {
			text = doc.Content[0].Text
		}
		vec, ok := m.overrides[text]
		if !ok {
			vec = hashVector(text)
		}
		resp.Embeddings = append(resp.Embeddings, &ai.Embedding{Embedding: vec})
	}
	return resp, nil
}

// hashVector maps text to a unit vector on the MockEmbedderDim-sphere.
func hashVector(text string) []float32 {
	sum := sha256.Sum256([]byte(text))
	vec := make([]float32, MockEmbedderDim)
	var norm float64
	for i := range vec {
		bits := binary.BigEndian.Uint32(sum[i*4 : i*4+4])
		// Map to (-1, 1).
		vec[i] = float32(int32(bits)) / float32(math.MaxInt32)
		norm += float64(vec[i]) * float64(vec[i])
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		vec[0] = 1
		return vec
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}
