package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokens is a mutable TokenSource for tests
type staticTokens struct {
	mu    sync.Mutex
	token string
}

func (s *staticTokens) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *staticTokens) set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func TestDoAttachesCurrentToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tokens := &staticTokens{token: "tok-1"}
	client := New(server.URL, tokens)

	require.NoError(t, client.Get(context.Background(), "/x", nil))
	assert.Equal(t, "Bearer tok-1", gotAuth)

	// A token change is visible to the very next request
	tokens.set("tok-2")
	require.NoError(t, client.Get(context.Background(), "/x", nil))
	assert.Equal(t, "Bearer tok-2", gotAuth)

	tokens.set("")
	require.NoError(t, client.Get(context.Background(), "/x", nil))
	assert.Empty(t, gotAuth)
}

func TestDoDecodesJSONResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "flora"}`))
	}))
	defer server.Close()

	client := New(server.URL, nil)

	var result struct {
		Name string `json:"name"`
	}
	require.NoError(t, client.Get(context.Background(), "/x", &result))
	assert.Equal(t, "flora", result.Name)
}

func TestDoSendsJSONBody(t *testing.T) {
	var gotBody string
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, nil)

	body := map[string]string{"species": "rose"}
	require.NoError(t, client.Post(context.Background(), "/x", body, nil))
	assert.JSONEq(t, `{"species": "rose"}`, gotBody)
	assert.Equal(t, "application/json", gotContentType)
}

func TestDoReturnsStatusErrorWithServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "Title is required"}`))
	}))
	defer server.Close()

	client := New(server.URL, nil)

	err := client.Post(context.Background(), "/x", nil, nil)
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "Title is required", se.Message)
	assert.Equal(t, "Title is required", ServerMessage(err, "fallback"))
}

func TestDoStatusErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, nil)

	err := client.Get(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.Equal(t, "fallback", ServerMessage(err, "fallback"))
}

func TestUnauthorizedHookFiresOnlyForAuthenticatedCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &staticTokens{}
	client := New(server.URL, tokens)

	fired := 0
	client.OnUnauthorized(func() { fired++ })

	// A 401 on an unauthenticated call (e.g. bad login credentials) is an
	// ordinary failure
	err := client.Post(context.Background(), "/login", nil, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 0, fired)

	// A 401 on a token-bearing call invalidates the session
	tokens.set("tok-stale")
	err = client.Get(context.Background(), "/me", nil)
	require.Error(t, err)
	assert.Equal(t, 1, fired)
}

func TestStatusClassification(t *testing.T) {
	assert.True(t, IsUnauthorized(&StatusError{StatusCode: http.StatusUnauthorized}))
	assert.False(t, IsUnauthorized(&StatusError{StatusCode: http.StatusForbidden}))
	assert.True(t, IsNotFound(&StatusError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsNotFound(assert.AnError))
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	client := New("http://example.com/", nil)
	assert.Equal(t, "http://example.com", client.BaseURL())
}
