// Package index implements the in-memory retrieval index that grounds
// generated answers. Chunks and their embeddings live in two parallel
// slices kept in lockstep; search is an exact cosine scan, which is
// plenty for a corpus of policy documents.
package index

import "errors"

var (
	// ErrDecode indicates the uploaded document could not be decoded to text.
	ErrDecode = errors.New("document decode failed")

	// ErrEmbedding indicates the embedder rejected or failed the request.
	ErrEmbedding = errors.New("embedding failed")

	// ErrPersist indicates the snapshot could not be written to disk.
	ErrPersist = errors.New("snapshot persist failed")

	// ErrCorrupt indicates an on-disk snapshot that cannot be trusted:
	// undecodable, or with chunks and vectors out of lockstep.
	ErrCorrupt = errors.New("snapshot corrupt")
)

// Metadata keys every chunk carries.
const (
	MetaType   = "type"
	MetaSource = "source"
	MetaLabel  = "label"
)

// Chunk is one indexed unit of text with its descriptive metadata.
type Chunk struct {
	Text     string
	Metadata map[string]string
}

// Result is a retrieved chunk with its cosine distance from the query
// (0 identical, 2 opposite). Results are returned ascending by distance.
type Result struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
	Distance float64           `json:"distance"`
}

// SourceCount reports how many chunks a single source contributed.
type SourceCount struct {
	Source string `json:"source"`
	Chunks int    `json:"chunks"`
}

// Snapshot is the persisted form of the index.
type Snapshot struct {
	Chunks  []Chunk
	Vectors [][]float32
}

// Storage loads and saves index snapshots.
type Storage interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
}
