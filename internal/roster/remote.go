package roster

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mosier/radflow/internal/common"
	"github.com/mosier/radflow/internal/model"
	"github.com/mosier/radflow/internal/service"
)

// DefaultFetchTimeout bounds a remote roster fetch. The roster is an
// enrichment, so a slow host must never hang the pipeline.
const DefaultFetchTimeout = 15 * time.Second

// RemoteSource fetches a CSV roster over HTTP. Transient failures are
// retried; a final failure surfaces as a *common.RosterLoadError so the
// caller can proceed with an empty index.
type RemoteSource struct {
	Client  *http.Client
	URL     string
	Timeout time.Duration
	Retry   service.RetryOptions
}

// Load implements service.RosterSource.
func (s *RemoteSource) Load(ctx context.Context) ([]model.RosterEntry, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	var body []byte
	fetch := func() error {
		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, s.URL, nil)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status %d", resp.StatusCode)
			// Client errors won't heal on retry; server errors might.
			return &common.RetryableError{Err: err, Retryable: resp.StatusCode >= 500}
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	if err := common.WithRetry(ctx, fetch, s.Retry); err != nil {
		return nil, common.NewRosterLoadError(s.URL, err)
	}

	entries, err := parseCSV(bytes.NewReader(body))
	if err != nil {
		return nil, common.NewRosterLoadError(s.URL, err)
	}
	return entries, nil
}
