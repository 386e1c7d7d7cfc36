package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagekit/mcp-server-travel-bridge/pkg/assistant"
)

type fakeAssistant struct {
	connected  bool
	connectErr error
	queryErr   error

	answer  *assistant.Answer
	tools   []assistant.ToolInfo
	queries []string
}

func (f *fakeAssistant) Connect(ctx context.Context) error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

func (f *fakeAssistant) Connected() bool { return f.connected }

func (f *fakeAssistant) Disconnect() error {
	f.connected = false
	return nil
}

func (f *fakeAssistant) Tools(ctx context.Context) ([]assistant.ToolInfo, error) {
	return f.tools, nil
}

func (f *fakeAssistant) Query(ctx context.Context, query string) (*assistant.Answer, error) {
	f.queries = append(f.queries, query)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.answer, nil
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(out))
}

func TestHealth(t *testing.T) {
	svc := &fakeAssistant{}
	server := NewServer(svc, ":0")

	recorder := doRequest(t, server.Handler(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body map[string]any
	decodeBody(t, recorder, &body)
	assert.Equal(t, "initializing", body["status"])
	assert.Equal(t, false, body["connected"])

	svc.connected = true
	recorder = doRequest(t, server.Handler(), http.MethodGet, "/health", "")

	decodeBody(t, recorder, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["connected"])
}

func TestConnect(t *testing.T) {
	svc := &fakeAssistant{}
	server := NewServer(svc, ":0")

	recorder := doRequest(t, server.Handler(), http.MethodGet, "/connect", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, svc.connected)

	var body map[string]string
	decodeBody(t, recorder, &body)
	assert.Equal(t, "Connected to server", body["message"])
}

func TestConnectFailure(t *testing.T) {
	svc := &fakeAssistant{connectErr: errors.New("tool server missing")}
	server := NewServer(svc, ":0")

	recorder := doRequest(t, server.Handler(), http.MethodGet, "/connect", "")
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body map[string]string
	decodeBody(t, recorder, &body)
	assert.Contains(t, body["error"], "tool server missing")
}

func TestQuery(t *testing.T) {
	svc := &fakeAssistant{
		answer: &assistant.Answer{
			Response:  "Phoenix will be sunny all week.",
			ToolsUsed: []string{"get_weather_by_location"},
		},
	}
	server := NewServer(svc, ":0")

	recorder := doRequest(t, server.Handler(), http.MethodPost, "/query", `{"query": "Weather in Phoenix?"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body QueryResponse
	decodeBody(t, recorder, &body)
	assert.Equal(t, "Phoenix will be sunny all week.", body.Response)
	assert.Equal(t, []string{"get_weather_by_location"}, body.ToolsUsed)
	assert.Equal(t, []string{"Weather in Phoenix?"}, svc.queries)
}

func TestQueryWithoutTools(t *testing.T) {
	svc := &fakeAssistant{answer: &assistant.Answer{Response: "Hello!"}}
	server := NewServer(svc, ":0")

	recorder := doRequest(t, server.Handler(), http.MethodPost, "/query", `{"query": "Hi"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	// tools_used is always a JSON array, never null
	assert.Contains(t, recorder.Body.String(), `"tools_used":[]`)
}

func TestQueryValidation(t *testing.T) {
	svc := &fakeAssistant{}
	server := NewServer(svc, ":0")

	recorder := doRequest(t, server.Handler(), http.MethodPost, "/query", `{"query": ""}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]string
	decodeBody(t, recorder, &body)
	assert.Equal(t, "query is required", body["error"])

	recorder = doRequest(t, server.Handler(), http.MethodPost, "/query", `{not json`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, svc.queries)
}

func TestQueryFailure(t *testing.T) {
	svc := &fakeAssistant{queryErr: errors.New("model unavailable")}
	server := NewServer(svc, ":0")

	recorder := doRequest(t, server.Handler(), http.MethodPost, "/query", `{"query": "Weather?"}`)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body map[string]string
	decodeBody(t, recorder, &body)
	assert.Contains(t, body["error"], "model unavailable")
}

func TestTools(t *testing.T) {
	svc := &fakeAssistant{
		tools: []assistant.ToolInfo{
			{Name: "convert_currency", Description: "Convert an amount between currencies"},
			{Name: "get_weather_by_location", Description: "Get the weather forecast for a location"},
		},
	}
	server := NewServer(svc, ":0")

	recorder := doRequest(t, server.Handler(), http.MethodGet, "/tools", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body ToolsResponse
	decodeBody(t, recorder, &body)
	require.Len(t, body.Tools, 2)
	assert.Equal(t, "convert_currency", body.Tools[0].Name)
}

func TestDisconnect(t *testing.T) {
	svc := &fakeAssistant{connected: true}
	server := NewServer(svc, ":0")

	recorder := doRequest(t, server.Handler(), http.MethodPost, "/disconnect", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.False(t, svc.connected)
}

func TestMethodRouting(t *testing.T) {
	svc := &fakeAssistant{}
	server := NewServer(svc, ":0")

	// /query only accepts POST
	recorder := doRequest(t, server.Handler(), http.MethodGet, "/query", "")
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}
