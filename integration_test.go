// integration_test.go contains an end-to-end integration test suite for the items API.
package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testServerURL string

// TestMain starts an HTTP server backed by a fresh store, then runs the tests.
func TestMain(m *testing.M) {
	logger := newTestLogger()
	handler := NewHandler(NewMemoryStore(), logger, version)
	srv := httptest.NewServer(newRouter(handler, logger))
	testServerURL = srv.URL

	code := m.Run()
	srv.Close()
	_ = logger.Sync()
	os.Exit(code)
}

// TestCRUDIntegration exercises Create, Read, Update, List, and Delete over HTTP.
func TestCRUDIntegration(t *testing.T) {
	createFiles := []string{
		"create_item_request.json",
		"create_gadget_request.json",
		"create_gizmo_request.json",
	}
	type createCase struct {
		file string
		req  CreateItemRequest
		itm  Item
	}
	var cases []createCase
	for _, fn := range createFiles {
		data := readFixture(t, fn)
		var req CreateItemRequest
		require.NoError(t, json.Unmarshal(data, &req), fn)
		cases = append(cases, createCase{file: fn, req: req})
	}

	client := &http.Client{}

	// CREATE
	seen := map[string]bool{}
	for i := range cases {
		resp := doJSON(t, client, http.MethodPost, "/api/v1/items", readFixture(t, cases[i].file))
		require.Equal(t, http.StatusCreated, resp.StatusCode, cases[i].file)
		env := decodeResponse[Item](t, resp)
		out := env.Data
		assert.Equal(t, cases[i].req.Name, out.Name)
		assert.Equal(t, cases[i].req.Description, out.Description)
		assert.Equal(t, out.CreatedAt, out.UpdatedAt)
		assert.False(t, seen[out.ID.String()], "duplicate id %s", out.ID)
		seen[out.ID.String()] = true
		cases[i].itm = out
	}

	// READ each
	for _, c := range cases {
		resp := doJSON(t, client, http.MethodGet, "/api/v1/items/"+c.itm.ID.String(), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, c.itm, decodeResponse[Item](t, resp).Data)
	}

	// UPDATE first item
	updData := readFixture(t, "update_item_request.json")
	var updReq UpdateItemRequest
	require.NoError(t, json.Unmarshal(updData, &updReq))
	target := cases[0].itm

	resp := doJSON(t, client, http.MethodPut, "/api/v1/items/"+target.ID.String(), updData)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeResponse[Item](t, resp).Data
	assert.Equal(t, target.ID, updated.ID)
	assert.Equal(t, *updReq.Name, updated.Name)
	assert.Equal(t, target.Description, updated.Description)

	// VERIFY update via GET
	resp = doJSON(t, client, http.MethodGet, "/api/v1/items/"+target.ID.String(), nil)
	after := decodeResponse[Item](t, resp).Data
	assert.Equal(t, updated, after)
	assert.True(t, after.UpdatedAt.After(after.CreatedAt),
		"updated_at not refreshed: created %s, updated %s", after.CreatedAt, after.UpdatedAt)

	// LIST all
	resp = doJSON(t, client, http.MethodGet, "/api/v1/items", nil)
	list := decodeResponse[[]Item](t, resp).Data
	assert.Len(t, list, len(cases))

	// DELETE all
	for _, c := range cases {
		resp := doJSON(t, client, http.MethodDelete, "/api/v1/items/"+c.itm.ID.String(), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		env := decodeResponse[*Item](t, resp)
		assert.True(t, env.Success)
		assert.Nil(t, env.Data)
	}

	// deleted ids stay gone
	resp = doJSON(t, client, http.MethodGet, "/api/v1/items/"+target.ID.String(), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	env := decodeResponse[*Item](t, resp)
	require.NotNil(t, env.Message)
	assert.Contains(t, *env.Message, target.ID.String())

	resp = doJSON(t, client, http.MethodDelete, "/api/v1/items/"+target.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// FINAL LIST (should be empty)
	resp = doJSON(t, client, http.MethodGet, "/api/v1/items", nil)
	assert.Empty(t, decodeResponse[[]Item](t, resp).Data)

	// HEALTH
	resp = doJSON(t, client, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.NotEmpty(t, health.Version)
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("mockdata", name))
	require.NoError(t, err)
	return data
}

func doJSON(t *testing.T, client *http.Client, method, path string, body []byte) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, testServerURL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	require.NoError(t, err, "%s %s", method, path)
	return resp
}

func decodeResponse[T any](t *testing.T, resp *http.Response) envelope[T] {
	t.Helper()
	defer resp.Body.Close()
	var env envelope[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// newTestLogger returns a logger that outputs to stdout for test visibility.
func newTestLogger() *zap.Logger {
	return zap.NewExample()
}
