package renderer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRender_SendsCredentialAndBody(t *testing.T) {
	var gotAuth, gotContentType, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("X-Auth-Key")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second, zap.NewNop())

	pdf, err := client.Render(context.Background(), "secret-key", []byte(`{"name":"Alice"}`))
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-1.7"), pdf)
	assert.Equal(t, "secret-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "/resume/pdf", gotPath)
}

func TestRender_RejectedCredentialsDoNotRetry(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second, zap.NewNop())

	_, err := client.Render(context.Background(), "wrong-key", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected credentials")
	assert.Equal(t, 1, calls)
}

func TestRender_RetriesServerErrors(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second, zap.NewNop())

	pdf, err := client.Render(context.Background(), "key", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), pdf)
	assert.Equal(t, 3, calls)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The probe carries no credential.
		assert.Empty(t, r.Header.Get("X-Auth-Key"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second, zap.NewNop())
	assert.NoError(t, client.Ping(context.Background()))
}

func TestRender_ContextCancelStopsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Render(ctx, "key", []byte(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
