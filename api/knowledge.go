package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/atriumhq/atrium/internal/index"
)

// MaxUploadBytes caps a single document upload at 10 MiB.
const MaxUploadBytes = 10 << 20

// KnowledgeHandler handles knowledge base endpoints.
type KnowledgeHandler struct {
	idx    *index.Index
	logger *slog.Logger
}

// NewKnowledgeHandler creates a knowledge handler over the given index.
func NewKnowledgeHandler(idx *index.Index, logger *slog.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{idx: idx, logger: logger}
}

// RegisterRoutes registers knowledge routes on the given mux.
func (h *KnowledgeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/knowledge", h.upload)
	mux.HandleFunc("GET /api/knowledge/sources", h.sources)
	mux.HandleFunc("DELETE /api/knowledge/sources/{name}", h.deleteSource)
}

// UploadResponse is the reply for a successful document upload.
type UploadResponse struct {
	Source string `json:"source"`
	Label  string `json:"label"`
	Chunks int    `json:"chunks"`
}

// upload ingests one document sent as multipart/form-data. The document
// goes in the "file" field; an optional "label" field names the document
// category shown in citations.
func (h *KnowledgeHandler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_UPLOAD", "expected multipart/form-data with a file field")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("upload read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "READ_FAILED", "could not read upload")
		return
	}

	label := r.FormValue("label")
	added, err := h.idx.Ingest(r.Context(), raw, header.Filename, label)
	if err != nil {
		switch {
		case errors.Is(err, index.ErrDecode):
			writeError(w, http.StatusBadRequest, "UNSUPPORTED_DOCUMENT", err.Error())
		case errors.Is(err, index.ErrEmbedding):
			h.logger.Error("embedding failed during upload", "source", header.Filename, "error", err)
			writeError(w, http.StatusBadGateway, "EMBEDDING_FAILED", "embedding provider unavailable")
		default:
			h.logger.Error("upload failed", "source", header.Filename, "error", err)
			writeError(w, http.StatusInternalServerError, "INGEST_FAILED", "could not index document")
		}
		return
	}
	if added == 0 {
		writeError(w, http.StatusBadRequest, "EMPTY_DOCUMENT", "document produced no indexable text")
		return
	}

	if label == "" {
		label = "HR Policy"
	}
	writeJSON(w, http.StatusCreated, UploadResponse{
		Source: header.Filename,
		Label:  label,
		Chunks: added,
	})
}

// sources lists every indexed source with its chunk count.
func (h *KnowledgeHandler) sources(w http.ResponseWriter, _ *http.Request) {
	counts := h.idx.Sources()
	writeJSON(w, http.StatusOK, map[string]any{
		"sources": counts,
		"total":   len(counts),
		"chunks":  h.idx.Len(),
	})
}

// deleteSource removes every chunk a source contributed.
func (h *KnowledgeHandler) deleteSource(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	removed, err := h.idx.DeleteSource(name)
	if err != nil {
		h.logger.Error("source delete failed", "source", name, "error", err)
		writeError(w, http.StatusInternalServerError, "DELETE_FAILED", "could not persist index after delete")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "SOURCE_NOT_FOUND", "no indexed source named "+name)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": name})
}
