package harness

import (
	"context"
	"net/http"
	"time"

	"agenteval/internal/logging"
)

// ConnectivityCheck probes the telemetry infrastructure: the dashboard UI
// and the OTLP ingestion endpoint. Probes classify reachability only; no
// functional data is exchanged.
type ConnectivityCheck struct {
	dashboardURL string
	otlpURL      string
	client       *http.Client
}

// NewConnectivityCheck creates the infrastructure connectivity check.
func NewConnectivityCheck(dashboardURL, otlpURL string, timeout time.Duration) *ConnectivityCheck {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ConnectivityCheck{
		dashboardURL: dashboardURL,
		otlpURL:      otlpURL,
		client:       &http.Client{Timeout: timeout},
	}
}

// Name implements Check.
func (c *ConnectivityCheck) Name() string { return "aspire_connectivity" }

// Headline implements Check.
func (c *ConnectivityCheck) Headline() string { return "Testing infrastructure connectivity..." }

// Run issues one bounded GET per endpoint. The dashboard is reachable iff
// it answers 200. The OTLP endpoint rejects GETs, so 400 or 405 means the
// listener is present. Transport errors classify as unreachable and are
// never propagated.
func (c *ConnectivityCheck) Run(ctx context.Context) CheckResult {
	start := time.Now()
	defer c.client.CloseIdleConnections()

	dashboardReachable := c.probe(ctx, c.dashboardURL, func(code int) bool {
		return code == http.StatusOK
	})
	otlpReachable := c.probe(ctx, c.otlpURL, func(code int) bool {
		return code == http.StatusBadRequest || code == http.StatusMethodNotAllowed
	})

	logging.Probe("dashboard=%v otlp=%v", dashboardReachable, otlpReachable)

	return CheckResult{
		TestName: c.Name(),
		Success:  dashboardReachable && otlpReachable,
		Details: map[string]any{
			"dashboard_reachable":     dashboardReachable,
			"otlp_endpoint_reachable": otlpReachable,
			"dashboard_url":           c.dashboardURL,
			"otlp_url":                c.otlpURL,
		},
		DurationMs: time.Since(start).Milliseconds(),
	}
}

func (c *ConnectivityCheck) probe(ctx context.Context, url string, reachable func(status int) bool) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logging.Probe("GET %s failed: %v", url, err)
		return false
	}
	defer resp.Body.Close()

	return reachable(resp.StatusCode)
}
