package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unirecords/client-go/pkg/config"
	appErrors "github.com/unirecords/client-go/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := New(config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, TokenFunc(func() string { return token }), nil, nil)
	return client, server
}

func TestClientDoDecodesBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/students", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 1, "name": "Jane"}]`))
	}, "")

	var out []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	err := client.Get(context.Background(), "/students", &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Jane", out[0].Name)
}

func TestClientDoAttachesBearer(t *testing.T) {
	var gotAuth, gotReqID string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusNoContent)
	}, "tok-123")

	err := client.Get(context.Background(), "/users/me", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestClientDoNoBearerWhenTokenEmpty(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}, "")

	require.NoError(t, client.Get(context.Background(), "/subjects", nil))
	assert.Empty(t, gotAuth)
}

func TestClientDoHTTPFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "student not found"}`))
	}, "")

	err := client.Get(context.Background(), "/students/99", nil)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindHTTP))
	assert.Equal(t, http.StatusNotFound, appErrors.StatusOf(err))
	assert.Equal(t, "student not found", appErrors.Message(err))
}

func TestClientDoNestedErrorMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": {"code": "CONFLICT", "message": "duplicate record"}}`))
	}, "")

	err := client.Post(context.Background(), "/attendance", map[string]any{}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrors.StatusOf(err))
	assert.Equal(t, "duplicate record", appErrors.Message(err))
}

func TestClientDoNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := New(config.APIConfig{BaseURL: server.URL, Timeout: time.Second}, nil, nil, nil)
	server.Close()

	err := client.Get(context.Background(), "/students", nil)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindNetwork))
	assert.False(t, appErrors.IsKind(err, appErrors.KindHTTP))
}

func TestClientDoSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 7}`))
	}, "")

	var out struct {
		ID int64 `json:"id"`
	}
	err := client.Post(context.Background(), "/grades", map[string]int{"mark": 90}, &out)
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"mark": 90}`, string(gotBody))
	assert.Equal(t, int64(7), out.ID)
}
