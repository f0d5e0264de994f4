package harness

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"habackfill/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func clientConfig(baseURL string) *config.Config {
	return &config.Config{
		BaseURL:        baseURL,
		Token:          "token123",
		RequestTimeout: 5 * time.Second,
	}
}

func TestClientSendsAuthAndContentType(t *testing.T) {

	require := require.New(t)

	var gotAuth, gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(clientConfig(srv.URL), zap.NewNop())
	raw, err := c.Do(context.Background(), http.MethodPost,
		"/api/services/input_number/set_value",
		map[string]any{"entity_id": "input_number.x", "value": 1.0})
	require.NoError(err)

	assert.JSONEq(t, `{"ok":true}`, string(raw))
	assert.Equal(t, "Bearer token123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"entity_id":"input_number.x","value":1}`, gotBody)
}

func TestClientNonOKStatusIsRequestError(t *testing.T) {

	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Entity not found."}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(clientConfig(srv.URL), zap.NewNop())
	_, err := c.Do(context.Background(), http.MethodGet, "/api/states/sensor.missing", nil)
	require.Error(err)

	var reqErr *RequestError
	require.True(errors.As(err, &reqErr))
	assert.Equal(t, http.MethodGet, reqErr.Method)
	assert.Equal(t, "/api/states/sensor.missing", reqErr.Path)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Contains(t, reqErr.Body, "Entity not found.")
	assert.Contains(t, err.Error(), "GET /api/states/sensor.missing failed: 404")
}

func TestClientEmptyBody(t *testing.T) {

	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(clientConfig(srv.URL), zap.NewNop())
	raw, err := c.Do(context.Background(), http.MethodGet, "/api/states/sensor.empty", nil)
	require.NoError(err)
	require.Equal("null", string(raw))
}

func TestClientNetworkFailureIsRequestError(t *testing.T) {

	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(clientConfig(srv.URL), zap.NewNop())
	_, err := c.Do(context.Background(), http.MethodGet, "/api/states/sensor.any", nil)
	require.Error(err)

	var reqErr *RequestError
	require.True(errors.As(err, &reqErr))
	require.Equal("/api/states/sensor.any", reqErr.Path)
	require.Zero(reqErr.Status)
	require.NotNil(reqErr.Err)
}
