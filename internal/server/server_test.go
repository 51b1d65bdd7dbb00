package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/hiredesk/internal/auth"
	"github.com/sakif/hiredesk/internal/model"
	"github.com/sakif/hiredesk/internal/server"
)

const testSecret = "test-secret-at-least-16-chars!!"

// newTestServer builds a full server on the in-memory backend plus a session
// cookie for an admitted identity. Requests go straight into the router —
// no network listener needed.
func newTestServer(t *testing.T) (http.Handler, *http.Cookie) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	srv, err := server.New(server.Config{
		Port:         0,
		StoreBackend: server.BackendMemory,
		JWTSecret:    testSecret,
	}, logger)
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)
	token, err := tokens.Generate("github:12345")
	require.NoError(t, err)

	return srv.Router(), &http.Cookie{Name: auth.SessionCookie, Value: token}
}

// doJSON performs a request with an optional session cookie and JSON body.
func doJSON(t *testing.T, router http.Handler, method, path string, cookie *http.Cookie, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeInto(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(dst))
}

// =========================================================================
// AUTH GATE
// =========================================================================

// TestProtectedRoutesRequire401 verifies every data route rejects anonymous
// requests with 401 before touching the store.
func TestProtectedRoutesReject401(t *testing.T) {
	router, _ := newTestServer(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/user"},
		{http.MethodGet, "/dashboard/stats"},
		{http.MethodGet, "/positions"},
		{http.MethodPost, "/positions"},
		{http.MethodPut, "/positions/1"},
		{http.MethodDelete, "/positions/1"},
		{http.MethodGet, "/candidates"},
		{http.MethodPost, "/candidates"},
		{http.MethodPut, "/candidates/1"},
		{http.MethodDelete, "/candidates/1"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rr := doJSON(t, router, rt.method, rt.path, nil, "")
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}

func TestHealthIsPublic(t *testing.T) {
	router, _ := newTestServer(t)

	rr := doJSON(t, router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	router, cookie := newTestServer(t)

	rr := doJSON(t, router, http.MethodPost, "/auth/logout", cookie, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var cleared bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.SessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout should expire the session cookie")
}

// =========================================================================
// POSITIONS
// =========================================================================

func TestPositionLifecycle(t *testing.T) {
	router, cookie := newTestServer(t)

	// Create
	rr := doJSON(t, router, http.MethodPost, "/positions", cookie,
		`{"title":"Backend Engineer","department":"Engineering","location":"Berlin","description":"Go and SQL"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created model.Position
	decodeInto(t, rr, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Active", created.Status, "omitted status defaults to Active")

	// List
	rr = doJSON(t, router, http.MethodGet, "/positions", cookie, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var listed []model.Position
	decodeInto(t, rr, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Backend Engineer", listed[0].Title)

	// Partial update: only the status changes
	rr = doJSON(t, router, http.MethodPut, "/positions/1", cookie, `{"status":"Closed"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var updated model.Position
	decodeInto(t, rr, &updated)
	assert.Equal(t, "Closed", updated.Status)
	assert.Equal(t, "Backend Engineer", updated.Title, "unsupplied fields survive")

	// Delete
	rr = doJSON(t, router, http.MethodDelete, "/positions/1", cookie, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Gone
	rr = doJSON(t, router, http.MethodDelete, "/positions/1", cookie, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreatePosition_MissingTitleNamesField(t *testing.T) {
	router, cookie := newTestServer(t)

	rr := doJSON(t, router, http.MethodPost, "/positions", cookie,
		`{"department":"Engineering","location":"Berlin"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Field   string `json:"field"`
	}
	decodeInto(t, rr, &errResp)
	assert.Equal(t, "validation_error", errResp.Error)
	assert.Equal(t, "title", errResp.Field)
}

func TestUpdatePosition_NotFound(t *testing.T) {
	router, cookie := newTestServer(t)

	rr := doJSON(t, router, http.MethodPut, "/positions/999", cookie, `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdatePosition_BadRequests(t *testing.T) {
	router, cookie := newTestServer(t)

	t.Run("malformed JSON", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPut, "/positions/1", cookie, `{"title":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPut, "/positions/1", cookie, `{"titel":"typo"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPut, "/positions/abc", cookie, `{"title":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

// =========================================================================
// CANDIDATES
// =========================================================================

func seedCandidates(t *testing.T, router http.Handler, cookie *http.Cookie) {
	t.Helper()

	bodies := []string{
		`{"name":"John Doe","email":"john@example.com","phone":"1","positionApplied":"Backend Engineer"}`,
		`{"name":"Jane Smith","email":"jdoe@corp.com","phone":"2","positionApplied":"Backend Engineer","status":"In Review"}`,
		`{"name":"Grace Hopper","email":"grace@navy.mil","phone":"3","positionApplied":"Compiler Engineer","status":"Shortlisted"}`,
	}
	for _, body := range bodies {
		rr := doJSON(t, router, http.MethodPost, "/candidates", cookie, body)
		require.Equal(t, http.StatusCreated, rr.Code, "seeding candidate: %s", rr.Body.String())
	}
}

func TestCreateCandidate_DefaultsStatus(t *testing.T) {
	router, cookie := newTestServer(t)

	rr := doJSON(t, router, http.MethodPost, "/candidates", cookie,
		`{"name":"Ada","email":"ada@example.com","phone":"555","positionApplied":"Backend Engineer"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created model.Candidate
	decodeInto(t, rr, &created)
	assert.Equal(t, model.CandidateStatusNew, created.Status)
	assert.Nil(t, created.PositionID)
}

func TestCreateCandidate_RejectsUnknownStatus(t *testing.T) {
	router, cookie := newTestServer(t)

	rr := doJSON(t, router, http.MethodPost, "/candidates", cookie,
		`{"name":"Ada","email":"ada@example.com","phone":"555","positionApplied":"x","status":"Hired"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListCandidates_Filters(t *testing.T) {
	router, cookie := newTestServer(t)
	seedCandidates(t, router, cookie)

	t.Run("no filter returns all newest first", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/candidates", cookie, "")
		require.Equal(t, http.StatusOK, rr.Code)

		var got []model.Candidate
		decodeInto(t, rr, &got)
		require.Len(t, got, 3)
		assert.Equal(t, "Grace Hopper", got[0].Name)
	})

	t.Run("search matches name or email", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/candidates?search=doe", cookie, "")
		require.Equal(t, http.StatusOK, rr.Code)

		var got []model.Candidate
		decodeInto(t, rr, &got)
		assert.Len(t, got, 2) // John Doe by name, Jane Smith by jdoe@ email
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		path := "/candidates?position=Backend+Engineer&status=In+Review&search=doe"
		rr := doJSON(t, router, http.MethodGet, path, cookie, "")
		require.Equal(t, http.StatusOK, rr.Code)

		var got []model.Candidate
		decodeInto(t, rr, &got)
		require.Len(t, got, 1)
		assert.Equal(t, "Jane Smith", got[0].Name)
	})

	t.Run("no matches is an empty array, not an error", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/candidates?status=Rejected", cookie, "")
		require.Equal(t, http.StatusOK, rr.Code)

		var got []model.Candidate
		decodeInto(t, rr, &got)
		assert.Len(t, got, 0)
	})
}

func TestUpdateCandidate_StatusTransition(t *testing.T) {
	router, cookie := newTestServer(t)
	seedCandidates(t, router, cookie)

	rr := doJSON(t, router, http.MethodPut, "/candidates/1", cookie, `{"status":"Shortlisted"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var updated model.Candidate
	decodeInto(t, rr, &updated)
	assert.Equal(t, model.CandidateStatusShortlisted, updated.Status)
	assert.Equal(t, "John Doe", updated.Name)
}

// =========================================================================
// DASHBOARD
// =========================================================================

func TestDashboardStats(t *testing.T) {
	router, cookie := newTestServer(t)

	// Two positions
	for i := 0; i < 2; i++ {
		rr := doJSON(t, router, http.MethodPost, "/positions", cookie,
			fmt.Sprintf(`{"title":"Opening %d","department":"Eng","location":"Remote"}`, i))
		require.Equal(t, http.StatusCreated, rr.Code)
	}
	seedCandidates(t, router, cookie) // 1 New, 1 In Review, 1 Shortlisted

	rr := doJSON(t, router, http.MethodGet, "/dashboard/stats", cookie, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var stats model.DashboardStats
	decodeInto(t, rr, &stats)
	assert.Equal(t, 2, stats.TotalPositions)
	assert.Equal(t, 3, stats.TotalCandidates)
	assert.Equal(t, 1, stats.InReview)
	assert.Equal(t, 1, stats.Shortlisted)

	// Stats are recomputed per request: deleting a candidate shows up
	// immediately.
	rr = doJSON(t, router, http.MethodDelete, "/candidates/3", cookie, "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/dashboard/stats", cookie, "")
	require.Equal(t, http.StatusOK, rr.Code)
	decodeInto(t, rr, &stats)
	assert.Equal(t, 2, stats.TotalCandidates)
	assert.Equal(t, 0, stats.Shortlisted)
}

// =========================================================================
// SESSION USER
// =========================================================================

// A valid token whose user never logged in: the gate admits the request,
// but the lookup comes back 404.
func TestAuthUser_NoRecord(t *testing.T) {
	router, cookie := newTestServer(t)

	rr := doJSON(t, router, http.MethodGet, "/auth/user", cookie, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// =========================================================================
// BACKEND SELECTION
// =========================================================================

func TestNew_RejectsUnknownBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	_, err := server.New(server.Config{
		StoreBackend: "postgres",
		JWTSecret:    testSecret,
	}, logger)
	assert.Error(t, err)
}

func TestNew_RejectsShortSecret(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	_, err := server.New(server.Config{
		StoreBackend: server.BackendMemory,
		JWTSecret:    "short",
	}, logger)
	assert.Error(t, err)
}

// TestSQLiteBackend runs one create/list round trip against the sqlite
// backend to prove the two stores are interchangeable behind the router.
func TestSQLiteBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	srv, err := server.New(server.Config{
		StoreBackend: server.BackendSQLite,
		DBPath:       ":memory:",
		JWTSecret:    testSecret,
	}, logger)
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)
	token, err := tokens.Generate("github:12345")
	require.NoError(t, err)
	cookie := &http.Cookie{Name: auth.SessionCookie, Value: token}
	router := srv.Router()

	rr := doJSON(t, router, http.MethodPost, "/positions", cookie,
		`{"title":"Backend Engineer","department":"Engineering","location":"Berlin"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/positions", cookie, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var listed []model.Position
	decodeInto(t, rr, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Backend Engineer", listed[0].Title)
}
