package databricks

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "dapi-secret-token"

func newTestClient(url string) *Client {
	return NewClient(url, testToken, 5*time.Second, zerolog.Nop())
}

func TestRequestSendsAuthHeader(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Request(context.Background(), http.MethodGet, "/api/2.0/clusters/list", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+testToken, gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestRequestDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"clusters": [{"cluster_id": "c-1"}]}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Request(context.Background(), http.MethodGet, "/api/2.0/clusters/list", nil, nil)
	require.NoError(t, err)
	clusters, ok := result["clusters"].([]any)
	require.True(t, ok)
	assert.Len(t, clusters, 1)
}

func TestRequestEmptyBodyReturnsEmptyMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Request(context.Background(), http.MethodPost, "/api/2.0/clusters/start", nil, map[string]any{"cluster_id": "c-1"})
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestRequestSendsQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("cluster_id")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Request(context.Background(), http.MethodGet, "/api/2.0/clusters/get", map[string]string{"cluster_id": "c-9"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "c-9", gotQuery)
}

func TestRequestAPIErrorParsesBody(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error_code": "RESOURCE_DOES_NOT_EXIST", "message": "Cluster bad-id does not exist"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Request(context.Background(), http.MethodGet, "/api/2.0/clusters/get", map[string]string{"cluster_id": "bad-id"}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "RESOURCE_DOES_NOT_EXIST")
	assert.Contains(t, err.Error(), "404")
	assert.False(t, apiErr.Retryable())
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts), "4xx must not be retried")
}

func TestRequestAPIErrorRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Request(context.Background(), http.MethodPost, "/api/2.0/jobs/run-now", nil, map[string]any{"job_id": "1"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "not json", apiErr.Message)
}

func TestRequestRetriesIdempotentGETOn5xx(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"jobs": []}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Request(context.Background(), http.MethodGet, "/api/2.0/jobs/list", nil, nil)
	require.NoError(t, err)
	assert.Contains(t, result, "jobs")
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestRequestRetryIsBounded(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Request(context.Background(), http.MethodGet, "/api/2.0/clusters/list", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, int32(maxRetries+1), atomic.LoadInt32(&attempts))
}

func TestRequestDoesNotRetryPOST(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Request(context.Background(), http.MethodPost, "/api/2.0/clusters/create", nil, map[string]any{"cluster_name": "x"})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestRequestConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).Request(context.Background(), http.MethodPost, "/api/2.0/clusters/start", nil, map[string]any{"cluster_id": "c-1"})
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.False(t, terr.Timeout)
}

func TestRequestTimeout(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testToken, 50*time.Millisecond, zerolog.Nop())
	start := time.Now()
	_, err := client.Request(context.Background(), http.MethodGet, "/api/2.0/jobs/list", nil, nil)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.True(t, terr.Timeout)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts), "timeouts must not be retried")
	assert.Less(t, time.Since(start), time.Second)
}

func TestRequestNeverLogsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "permission denied"}`))
	}))
	defer srv.Close()

	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	client := NewClient(srv.URL, testToken, 5*time.Second, logger)

	_, err := client.Request(context.Background(), http.MethodGet, "/api/2.0/clusters/list", nil, nil)
	require.Error(t, err)
	assert.NotEmpty(t, logs.String())
	assert.NotContains(t, logs.String(), testToken)
}
