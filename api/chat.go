package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/atriumhq/atrium/internal/dispatch"
	"github.com/atriumhq/atrium/internal/llm"
)

// Chat request limits.
const (
	MaxQueryLength   = 4000
	MaxHistoryTurns  = 50
	MaxUserNameChars = 100
)

// ChatHandler handles the chat endpoint.
type ChatHandler struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// NewChatHandler creates a chat handler over the given dispatcher.
func NewChatHandler(d *dispatch.Dispatcher, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{dispatcher: d, logger: logger}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat", h.chat)
}

// ChatRequest is the request body for POST /api/chat.
type ChatRequest struct {
	Query   string        `json:"query"`
	User    string        `json:"user,omitempty"`
	History []llm.Message `json:"history,omitempty"`
}

// chat answers one query and replies with the dispatch envelope.
func (h *ChatHandler) chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "MISSING_QUERY", "query is required")
		return
	}
	if len(req.Query) > MaxQueryLength {
		writeError(w, http.StatusBadRequest, "QUERY_TOO_LONG", "query exceeds 4000 characters")
		return
	}
	if len(req.User) > MaxUserNameChars {
		writeError(w, http.StatusBadRequest, "USER_TOO_LONG", "user exceeds 100 characters")
		return
	}
	if len(req.History) > MaxHistoryTurns {
		req.History = req.History[len(req.History)-MaxHistoryTurns:]
	}

	env := h.dispatcher.Process(r.Context(), req.Query, req.History, req.User)
	writeJSON(w, http.StatusOK, env)
}
