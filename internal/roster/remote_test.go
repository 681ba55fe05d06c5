package roster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosier/radflow/internal/common"
	"github.com/mosier/radflow/internal/service"
)

func TestRemoteSourceLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(rosterCSV))
	}))
	defer server.Close()

	source := &RemoteSource{URL: server.URL}
	entries, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRemoteSourceRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(rosterCSV))
	}))
	defer server.Close()

	source := &RemoteSource{
		URL: server.URL,
		Retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
		},
	}

	entries, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRemoteSourceClientErrorDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	source := &RemoteSource{
		URL: server.URL,
		Retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
		},
	}

	_, err := source.Load(context.Background())

	var loadErr *common.RosterLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRemoteSourceTimesOut(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	source := &RemoteSource{
		URL:     server.URL,
		Timeout: 50 * time.Millisecond,
		Retry:   service.RetryOptions{MaxAttempts: 1},
	}

	start := time.Now()
	_, err := source.Load(context.Background())

	var loadErr *common.RosterLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Less(t, time.Since(start), 5*time.Second, "fetch must not hang past its timeout")
}
