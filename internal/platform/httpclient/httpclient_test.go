package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPostJSON_SendsBodyAndHeaders(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "k-1", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := New(time.Second)
	err := c.PostJSON(context.Background(), srv.URL, map[string]string{"X-Api-Key": "k-1"}, map[string]any{"action": "share"})
	require.NoError(t, err)
	require.Equal(t, "share", got["action"])
}

func TestPostJSON_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(time.Second)
	c.Retries = 2
	c.Backoff = time.Millisecond

	require.NoError(t, c.PostJSON(context.Background(), srv.URL, nil, struct{}{}))
	require.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestPostJSON_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(time.Second)
	c.Retries = 3
	c.Backoff = time.Millisecond

	err := c.PostJSON(context.Background(), srv.URL, nil, struct{}{})
	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	require.Equal(t, http.StatusUnauthorized, herr.StatusCode)
	require.Equal(t, "bad key", herr.Body)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestPostJSON_EmptyURL(t *testing.T) {
	require.Error(t, New(0).PostJSON(context.Background(), " ", nil, nil))
}
