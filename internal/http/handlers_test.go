package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminekebichi/MyDay/internal/models"
	"github.com/aminekebichi/MyDay/internal/repository"
	"github.com/aminekebichi/MyDay/internal/service"
)

const (
	aliceToken = "test-session-uuid-123"
	bobToken   = "test-session-uuid-456"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	repo := repository.NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Users().Create(ctx, &models.User{ID: "alice", DisplayName: "Alice", SessionToken: aliceToken}))
	require.NoError(t, repo.Users().Create(ctx, &models.User{ID: "bob", DisplayName: "Bob", SessionToken: bobToken}))

	svc := service.NewItemService(repo, repo.Users(), log)
	srv := httptest.NewServer(NewRouter(NewItemHandler(svc, log), log))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, token, body string) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set(SessionHeader, token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeItems(t *testing.T, data []byte) []models.Item {
	t.Helper()
	var items []models.Item
	require.NoError(t, json.Unmarshal(data, &items))
	return items
}

func decodeError(t *testing.T, data []byte) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func TestEndToEndScenario(t *testing.T) {
	srv := newTestServer(t)
	now := time.Now().UTC()
	today := now.Format("2006-01-02")

	resp, data := do(t, srv, http.MethodPost, "/api/items", aliceToken,
		`{"title":"Test","type":"TASK","priority":"IMPORTANT","date":"`+now.Format(time.RFC3339Nano)+`"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var created models.Item
	require.NoError(t, json.Unmarshal(data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.RecurrenceNone, created.Recurrence)
	assert.Nil(t, created.CompletedAt)

	resp, data = do(t, srv, http.MethodGet, "/api/items?date="+today, aliceToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decodeItems(t, data)
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)

	resp, data = do(t, srv, http.MethodPatch, "/api/items/"+created.ID, aliceToken,
		`{"completedAt":"`+time.Now().UTC().Format(time.RFC3339)+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	_, data = do(t, srv, http.MethodGet, "/api/items?date="+today, aliceToken, "")
	items = decodeItems(t, data)
	require.Len(t, items, 1)
	assert.NotNil(t, items[0].CompletedAt)

	resp, data = do(t, srv, http.MethodDelete, "/api/items/"+created.ID, aliceToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true}`, string(data))

	_, data = do(t, srv, http.MethodGet, "/api/items?date="+today, aliceToken, "")
	assert.Empty(t, decodeItems(t, data))

	resp, data = do(t, srv, http.MethodGet, "/api/items?date="+today, "bad-token", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", string(decodeError(t, data).Code))

	resp, _ = do(t, srv, http.MethodGet, "/api/items?date="+today, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListEndpointsRejectBadParameters(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/items", "/api/items?date=", "/api/items?date=garbage", "/api/items/week", "/api/items/week?start=31-12-2026"} {
		resp, data := do(t, srv, http.MethodGet, path, aliceToken, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		assert.Equal(t, "BAD_REQUEST", string(decodeError(t, data).Code), path)
	}
}

func TestListReturnsJSONArray(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/api/items?date=2026-10-19", "/api/items/week?start=2026-10-19"} {
		resp, data := do(t, srv, http.MethodGet, path, aliceToken, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.JSONEq(t, `[]`, string(data))
	}
}

func TestWeekEndpoint(t *testing.T) {
	srv := newTestServer(t)
	for _, body := range []string{
		`{"title":"d6","type":"DEADLINE","priority":"ROUTINE","date":"2026-10-25T23:00:00Z"}`,
		`{"title":"d0","type":"EVENT","priority":"ROUTINE","date":"2026-10-19"}`,
		`{"title":"outside","type":"EVENT","priority":"CRITICAL","date":"2026-10-26"}`,
		`{"title":"d0-critical","type":"MEETING","priority":"CRITICAL","date":"2026-10-19","attendeeName":"Sam"}`,
	} {
		resp, data := do(t, srv, http.MethodPost, "/api/items", aliceToken, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	}

	resp, data := do(t, srv, http.MethodGet, "/api/items/week?start=2026-10-19", aliceToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got []string
	for _, it := range decodeItems(t, data) {
		got = append(got, it.Title)
	}
	assert.Equal(t, []string{"d0-critical", "d0", "d6"}, got)

	resp, data = do(t, srv, http.MethodGet, "/api/items/week?start=2026-10-19", bobToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(data))
}

func TestCreateValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, data := do(t, srv, http.MethodPost, "/api/items", aliceToken,
		`{"title":"","type":"CHORE","priority":"IMPORTANT","date":"2026-10-19"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, data)
	assert.Equal(t, "VALIDATION_ERROR", string(e.Code))
	assert.Contains(t, e.Details, "title")
	assert.Contains(t, e.Details, "type")

	resp, data = do(t, srv, http.MethodPost, "/api/items", aliceToken, `{"title":5}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e = decodeError(t, data)
	assert.Equal(t, "VALIDATION_ERROR", string(e.Code))
	assert.Contains(t, e.Details, "title")

	resp, data = do(t, srv, http.MethodPost, "/api/items", aliceToken, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BAD_REQUEST", string(decodeError(t, data).Code))

	_, data = do(t, srv, http.MethodGet, "/api/items?date=2026-10-19", aliceToken, "")
	assert.JSONEq(t, `[]`, string(data))

	resp, _ = do(t, srv, http.MethodPost, "/api/items", "", `{"title":"x","type":"TASK","priority":"ROUTINE","date":"2026-10-19"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMutationOwnership(t *testing.T) {
	srv := newTestServer(t)
	_, data := do(t, srv, http.MethodPost, "/api/items", aliceToken,
		`{"title":"private","type":"TASK","priority":"ROUTINE","date":"2026-10-19"}`)
	var created models.Item
	require.NoError(t, json.Unmarshal(data, &created))

	resp, data := do(t, srv, http.MethodPatch, "/api/items/"+created.ID, bobToken, `{"title":"mine now"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", string(decodeError(t, data).Code))

	resp, _ = do(t, srv, http.MethodDelete, "/api/items/"+created.ID, bobToken, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, data = do(t, srv, http.MethodPatch, "/api/items/does-not-exist", bobToken, `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", string(decodeError(t, data).Code))

	resp, _ = do(t, srv, http.MethodDelete, "/api/items/does-not-exist", bobToken, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = do(t, srv, http.MethodDelete, "/api/items/", aliceToken, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BAD_REQUEST", string(decodeError(t, data).Code))

	_, data = do(t, srv, http.MethodGet, "/api/items?date=2026-10-19", aliceToken, "")
	items := decodeItems(t, data)
	require.Len(t, items, 1)
	assert.Equal(t, "private", items[0].Title)
}

func TestPatchCompletionTriState(t *testing.T) {
	srv := newTestServer(t)
	_, data := do(t, srv, http.MethodPost, "/api/items", aliceToken,
		`{"title":"essay","type":"ASSIGNMENT","priority":"CRITICAL","date":"2026-10-19"}`)
	var created models.Item
	require.NoError(t, json.Unmarshal(data, &created))
	path := "/api/items/" + created.ID

	patch := func(body string) models.Item {
		t.Helper()
		resp, data := do(t, srv, http.MethodPatch, path, aliceToken, body)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
		var it models.Item
		require.NoError(t, json.Unmarshal(data, &it))
		return it
	}

	it := patch(`{"completedAt":"2026-10-19T20:00:00Z"}`)
	require.NotNil(t, it.CompletedAt)
	it = patch(`{"notes":"submitted"}`)
	require.NotNil(t, it.CompletedAt)
	assert.Equal(t, "submitted", *it.Notes)
	it = patch(`{"completedAt":null}`)
	assert.Nil(t, it.CompletedAt)
}

func TestHealthAndHeaders(t *testing.T) {
	srv := newTestServer(t)
	resp, data := do(t, srv, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(data))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	resp, _ = do(t, srv, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
