package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sar-mission-planner/internal/domain"
	"github.com/couchcryptid/sar-mission-planner/internal/planner"
)

type stubHandler struct {
	result planner.Result
	err    error
	seen   []planner.Request
}

func (s *stubHandler) Handle(_ context.Context, req planner.Request) (planner.Result, error) {
	s.seen = append(s.seen, req)
	return s.result, s.err
}

type stubReadiness struct {
	err error
}

func (s *stubReadiness) CheckReadiness(_ context.Context) error {
	return s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(handler *stubHandler, ready *stubReadiness) *Server {
	if ready == nil {
		ready = &stubReadiness{}
	}
	return NewServer(":0", handler, ready, testLogger())
}

func postPlan(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/plan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandlePlan_Success(t *testing.T) {
	handler := &stubHandler{result: planner.Result{
		Plan: &domain.MissionPlan{ID: "plan-abc", Name: "SAR Mission - missing person - Crystal Cove State Park, CA"},
	}}
	server := newTestServer(handler, nil)

	rec := postPlan(t, server, `{
		"action": "create_mission_plan",
		"incident": {"id": "inc-1", "type": "missing person", "location": "Crystal Cove State Park, CA"}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result planner.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.Plan)
	assert.Equal(t, "plan-abc", result.Plan.ID)

	require.Len(t, handler.seen, 1)
	assert.Equal(t, "create_mission_plan", handler.seen[0].Action)
	assert.Equal(t, "inc-1", handler.seen[0].Incident.ID)
}

func TestHandlePlan_MalformedBody(t *testing.T) {
	handler := &stubHandler{}
	server := newTestServer(handler, nil)

	rec := postPlan(t, server, `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "malformed request body", decodeError(t, rec).Error)
	assert.Empty(t, handler.seen)
}

func TestHandlePlan_UnsupportedAction(t *testing.T) {
	handler := &stubHandler{err: &domain.UnsupportedActionError{Action: "scout_drones"}}
	server := newTestServer(handler, nil)

	rec := postPlan(t, server, `{"action": "scout_drones"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Contains(t, body.Error, "scout_drones")
	assert.Equal(t, "scout_drones", body.Field)
}

func TestHandlePlan_ValidationError(t *testing.T) {
	handler := &stubHandler{err: &domain.ValidationError{Field: "incident.location", Reason: "must not be empty"}}
	server := newTestServer(handler, nil)

	rec := postPlan(t, server, `{"action": "generate_strategy", "incident": {"id": "inc-1"}}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "incident.location", body.Field)
	assert.Contains(t, body.Error, "must not be empty")
}

func TestHandlePlan_InvariantViolationStaysGeneric(t *testing.T) {
	handler := &stubHandler{err: fmt.Errorf("allocation exceeds inventory: %w", domain.ErrInvariantViolation)}
	server := newTestServer(handler, nil)

	rec := postPlan(t, server, `{"action": "create_mission_plan"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "internal planning failure", body.Error)
	assert.NotContains(t, body.Error, "inventory")
	assert.Empty(t, body.Field)
}

func TestHandlePlan_UnknownErrorIsInternal(t *testing.T) {
	handler := &stubHandler{err: errors.New("unexpected")}
	server := newTestServer(handler, nil)

	rec := postPlan(t, server, `{"action": "create_mission_plan"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal planning failure", decodeError(t, rec).Error)
}

func TestHandlePlan_MethodNotAllowed(t *testing.T) {
	server := newTestServer(&stubHandler{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/plan", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(&stubHandler{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, rec.Body.String())
}

func TestHandleReady(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		server := newTestServer(&stubHandler{}, &stubReadiness{})

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status": "ready"}`, rec.Body.String())
	})

	t.Run("not ready", func(t *testing.T) {
		server := newTestServer(&stubHandler{}, &stubReadiness{err: errors.New("weather gateway not wired")})

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not ready", body["status"])
		assert.Contains(t, body["error"], "weather gateway")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(&stubHandler{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
