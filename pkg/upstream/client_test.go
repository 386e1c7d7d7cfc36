package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONDecodesResponse(t *testing.T) {
	var gotUserAgent, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"value": 42}`))
	}))
	defer server.Close()

	var out struct {
		Value int `json:"value"`
	}

	client := New()
	err := client.GetJSON(context.Background(), server.URL, nil, &out)

	require.NoError(t, err)
	assert.Equal(t, 42, out.Value)
	assert.Equal(t, UserAgent, gotUserAgent)
	assert.Equal(t, "application/json", gotAccept)
}

func TestGetJSONAppendsQueryParams(t *testing.T) {
	var gotQuery url.Values

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New()
	params := url.Values{"q": {"Paris"}, "format": {"json"}}

	var out map[string]any
	err := client.GetJSON(context.Background(), server.URL, params, &out)

	require.NoError(t, err)
	assert.Equal(t, "Paris", gotQuery.Get("q"))
	assert.Equal(t, "json", gotQuery.Get("format"))
}

func TestGetJSONClientErrorIsPermanent(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New()
	var out map[string]any
	err := client.GetJSON(context.Background(), server.URL, nil, &out)

	require.Error(t, err)
	assert.Equal(t, 1, attempts, "4xx responses must not be retried")
}

func TestGetJSONServerErrorIsRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := New()
	var out map[string]bool
	err := client.GetJSON(context.Background(), server.URL, nil, &out)

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.True(t, out["ok"])
}

func TestGetJSONExhaustsRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New()
	var out map[string]any
	err := client.GetJSON(context.Background(), server.URL, nil, &out)

	require.Error(t, err)
	assert.Equal(t, maxAttempts, attempts)
}

func TestGetJSONRespectsContextDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New()
	var out map[string]any
	err := client.GetJSON(ctx, server.URL, nil, &out)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
