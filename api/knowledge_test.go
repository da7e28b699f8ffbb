package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atriumhq/atrium/internal/index"
	"github.com/atriumhq/atrium/internal/testutil"
)

const uploadBody = `Remote work is permitted up to three days per week.
Employees must be reachable during core hours, 10:00 to 16:00 local time,
and attend the weekly team sync in person unless travelling.`

func uploadFile(t *testing.T, handler http.Handler, filename, label, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	if label != "" {
		require.NoError(t, mw.WriteField("label", label))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/knowledge", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestKnowledgeUpload(t *testing.T) {
	srv, idx := newTestServer(t, testutil.NewMockGenerator("unused"))
	handler := srv.Handler()

	before := idx.Len()
	w := uploadFile(t, handler, "remote_work.md", "Remote Work Policy", uploadBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "remote_work.md", resp.Source)
	assert.Equal(t, "Remote Work Policy", resp.Label)
	assert.Equal(t, 1, resp.Chunks)
	assert.Equal(t, before+1, idx.Len())
}

func TestKnowledgeUploadDefaultsLabel(t *testing.T) {
	srv, _ := newTestServer(t, testutil.NewMockGenerator("unused"))

	w := uploadFile(t, srv.Handler(), "note.txt", "", uploadBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "HR Policy", resp.Label)
}

func TestKnowledgeUploadRejectsBadRequests(t *testing.T) {
	srv, _ := newTestServer(t, testutil.NewMockGenerator("unused"))
	handler := srv.Handler()

	t.Run("not multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/knowledge", strings.NewReader("plain body"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing file field", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("label", "nothing"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/knowledge", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "MISSING_FILE", resp.Error)
	})

	t.Run("empty document", func(t *testing.T) {
		w := uploadFile(t, handler, "blank.txt", "", "   \n\t  ")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "UNSUPPORTED_DOCUMENT", resp.Error)
	})
}

func TestKnowledgeSources(t *testing.T) {
	srv, idx := newTestServer(t, testutil.NewMockGenerator("unused"))
	handler := srv.Handler()

	w := uploadFile(t, handler, "remote_work.md", "Remote Work Policy", uploadBody)
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/knowledge/sources", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Sources []index.SourceCount `json:"sources"`
		Total   int                 `json:"total"`
		Chunks  int                 `json:"chunks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Sources), resp.Total)
	assert.Equal(t, idx.Len(), resp.Chunks)

	names := make([]string, 0, len(resp.Sources))
	for _, s := range resp.Sources {
		names = append(names, s.Source)
	}
	assert.Contains(t, names, "remote_work.md")
}

func TestKnowledgeDeleteSource(t *testing.T) {
	srv, idx := newTestServer(t, testutil.NewMockGenerator("unused"))
	handler := srv.Handler()

	w := uploadFile(t, handler, "remote_work.md", "Remote Work Policy", uploadBody)
	require.Equal(t, http.StatusCreated, w.Code)
	before := idx.Len()

	req := httptest.NewRequest(http.MethodDelete, "/api/knowledge/sources/remote_work.md", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, before-1, idx.Len())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/knowledge/sources/remote_work.md", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
