package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atriumhq/atrium/internal/dispatch"
	"github.com/atriumhq/atrium/internal/route"
	"github.com/atriumhq/atrium/internal/testutil"
)

func postChat(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestChatAnswersQuery(t *testing.T) {
	srv, _ := newTestServer(t, testutil.NewMockGenerator("unused"))
	handler := srv.Handler()

	w := postChat(t, handler, `{"query": "Show ticket ACME-106"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var env dispatch.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, route.IntentTicketView, env.Intent)
	assert.Contains(t, env.Answer, "ACME-106")
	assert.Equal(t, "Ticket Tracker", env.Label)
}

func TestChatPersonalizesWithUser(t *testing.T) {
	srv, _ := newTestServer(t, testutil.NewMockGenerator("unused"))
	handler := srv.Handler()

	w := postChat(t, handler, `{"query": "show my open tickets", "user": "arjun"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var env dispatch.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Contains(t, env.Answer, "Issues for Arjun")
}

func TestChatValidation(t *testing.T) {
	srv, _ := newTestServer(t, testutil.NewMockGenerator("unused"))
	handler := srv.Handler()

	tests := []struct {
		name    string
		body    string
		errCode string
	}{
		{"empty body", ``, "INVALID_REQUEST"},
		{"malformed json", `{"query": `, "INVALID_REQUEST"},
		{"missing query", `{"user": "arjun"}`, "MISSING_QUERY"},
		{"query too long", `{"query": "` + strings.Repeat("a", MaxQueryLength+1) + `"}`, "QUERY_TOO_LONG"},
		{"user too long", `{"query": "hi", "user": "` + strings.Repeat("u", MaxUserNameChars+1) + `"}`, "USER_TOO_LONG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postChat(t, handler, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.errCode, resp.Error)
		})
	}
}
