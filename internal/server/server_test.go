package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternscope/patternscope/internal/store"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "profiles.db")
	st, err := store.Open(store.DefaultConfig(dbPath))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return New(st)
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	bin, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(bin))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// profileRequestBody builds a POST /profile body from plain Go values,
// since ProfileRequest.Values is raw JSON on the wire.
func profileRequestBody(values []string) map[string]any {
	return map[string]any{"values": values}
}

func TestHealthEndpointReportsOK(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileEndpointCreatesAndPersistsAProfile(t *testing.T) {
	s := setupTestServer(t)

	rec := postJSON(t, s, "/api/v1/profile", profileRequestBody([]string{"red", "green", "blue"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var exported map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exported))
	id, ok := exported["id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/profile/"+id, nil)
	getRec := httptest.NewRecorder()
	s.router.ServeHTTP(getRec, getReq)
	assert.Equal(t, http.StatusOK, getRec.Code)
}

func TestProfileEndpointRejectsNonArrayValues(t *testing.T) {
	s := setupTestServer(t)

	rec := postJSON(t, s, "/api/v1/profile", map[string]any{"values": "not-an-array"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Contains(t, result["error"], "list")
}

func TestProfileEndpointRejectsNonStringElements(t *testing.T) {
	s := setupTestServer(t)

	rec := postJSON(t, s, "/api/v1/profile", map[string]any{"values": []any{"red", 1, "blue"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEmpty(t, result["error"])
}

func TestGetProfileMissingReturns404(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/does-not-exist", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidateEndpointMatchesAgainstStoredProfile(t *testing.T) {
	s := setupTestServer(t)

	createRec := postJSON(t, s, "/api/v1/profile", profileRequestBody([]string{"red", "green", "blue"}))
	require.Equal(t, http.StatusCreated, createRec.Code)
	var exported map[string]any
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &exported))
	id := exported["id"].(string)

	rec := postJSON(t, s, "/api/v1/validate", ValidateRequest{ProfileID: id, Value: "red"})
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, true, result["matched"])
}

func TestMergeEndpointUnionsTwoStoredProfiles(t *testing.T) {
	s := setupTestServer(t)

	recA := postJSON(t, s, "/api/v1/profile", profileRequestBody([]string{"red", "green"}))
	require.Equal(t, http.StatusCreated, recA.Code)
	var a map[string]any
	require.NoError(t, json.Unmarshal(recA.Body.Bytes(), &a))

	recB := postJSON(t, s, "/api/v1/profile", profileRequestBody([]string{"blue", "red"}))
	require.Equal(t, http.StatusCreated, recB.Code)
	var b map[string]any
	require.NoError(t, json.Unmarshal(recB.Body.Bytes(), &b))

	mergeRec := postJSON(t, s, "/api/v1/merge", MergeRequest{
		ProfileIDA: a["id"].(string),
		ProfileIDB: b["id"].(string),
	})
	require.Equal(t, http.StatusCreated, mergeRec.Code)

	var merged map[string]any
	require.NoError(t, json.Unmarshal(mergeRec.Body.Bytes(), &merged))
	stats := merged["stats"].(map[string]any)
	assert.Equal(t, float64(3), stats["distinct_values"])
}
