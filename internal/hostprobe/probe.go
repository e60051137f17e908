// Package hostprobe talks to the vendor-hosted discovery application.
//
// The host is a black box we cannot control: it comes up on its own
// schedule and serves the label code-tables the front-end customizations
// need. The probe owns the waiting: readiness checks and label fetches
// retry with exponential backoff and jitter, and callers never implement
// their own retry loops on top.
package hostprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/lehigh-university-libraries/wayfinder/internal/registry"
	"github.com/maypok86/otter/v2"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultLabelTTL = 15 * time.Minute
	refreshWait     = 2 * time.Second
	refreshPoll     = 50 * time.Millisecond
)

// Probe checks the discovery host for readiness and fetches its label
// code-tables. Label tables are cached with a TTL; concurrent refreshes of
// the same table are deduplicated through the registry.
type Probe struct {
	baseURL    string
	client     *http.Client
	labels     *otter.Cache[string, map[string]string]
	refreshing *registry.Registry
	logger     *slog.Logger
}

// New creates a probe for the discovery host at baseURL.
func New(baseURL string, logger *slog.Logger) *Probe {
	if logger == nil {
		logger = slog.Default()
	}
	cache := otter.Must(&otter.Options[string, map[string]string]{
		MaximumSize:      1_000,
		ExpiryCalculator: otter.ExpiryWriting[string, map[string]string](defaultLabelTTL),
	})

	return &Probe{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		labels:     cache,
		refreshing: registry.New(),
		logger:     logger,
	}
}

// WaitForReady blocks until the host answers, retrying with exponential
// backoff and jitter. The host routinely takes tens of seconds to come up
// after a deploy window.
func (p *Probe) WaitForReady(ctx context.Context) error {
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/", nil)
			if err != nil {
				return err
			}
			resp, err := p.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("host returned HTTP %d", resp.StatusCode)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(10),
		retry.Delay(time.Second),
		retry.MaxDelay(time.Minute),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.OnRetry(func(n uint, err error) {
			p.logger.Debug("retrying host readiness check", "attempt", n+1, "url", p.baseURL, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("discovery host not ready after retries: %w", err)
	}
	return nil
}

// Labels returns the code-table with the given name as a code-to-label
// map, serving from cache when fresh. When several callers miss the cache
// for the same table at once, only the first fetches; the rest wait
// briefly for the cache to fill and fall back to fetching themselves if it
// does not.
func (p *Probe) Labels(ctx context.Context, table string) (map[string]string, error) {
	if rows, ok := p.labels.GetIfPresent(table); ok {
		return rows, nil
	}

	if first := p.refreshing.Acquire(table); !first {
		p.refreshing.Release(table)
		if rows, ok := p.waitForRefresh(ctx, table); ok {
			return rows, nil
		}
		p.refreshing.Acquire(table)
	}
	defer p.refreshing.Release(table)

	rows, err := p.fetchLabels(ctx, table)
	if err != nil {
		return nil, err
	}
	p.labels.Set(table, rows)
	return rows, nil
}

// waitForRefresh polls the cache while another caller refreshes the table.
func (p *Probe) waitForRefresh(ctx context.Context, table string) (map[string]string, bool) {
	deadline := time.Now().Add(refreshWait)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return nil, false
		case <-time.After(refreshPoll):
		}
		if rows, ok := p.labels.GetIfPresent(table); ok {
			return rows, true
		}
	}
	p.logger.Debug("gave up waiting for concurrent label refresh", "table", table)
	return nil, false
}

func (p *Probe) fetchLabels(ctx context.Context, table string) (map[string]string, error) {
	labelURL := fmt.Sprintf("%s/api/v1/codetables/%s", p.baseURL, table)

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, labelURL, nil)
			if err != nil {
				return err
			}
			resp, err := p.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				partial, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(partial))
			}
			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(time.Second),
		retry.MaxDelay(2*time.Minute),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.OnRetry(func(n uint, err error) {
			p.logger.Debug("retrying code-table fetch", "attempt", n+1, "url", labelURL, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching code-table %s after retries: %w", table, err)
	}

	// The host returns {"rows": [{"code": ..., "description": ...}, ...]}
	var tableResp struct {
		Rows []struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(body, &tableResp); err != nil {
		return nil, fmt.Errorf("failed to decode code-table %s: %w", table, err)
	}

	rows := make(map[string]string, len(tableResp.Rows))
	for _, row := range tableResp.Rows {
		rows[row.Code] = row.Description
	}

	p.logger.Debug("fetched code-table", "table", table, "rows", len(rows))

	return rows, nil
}
