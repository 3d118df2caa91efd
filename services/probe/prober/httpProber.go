package prober

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/iulianpascalau/site-monitoring/services/probe/common"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/tidwall/gjson"
)

const defaultTimeout = 30 * time.Second

var log = logger.GetOrCreate("prober")

type httpProber struct {
	targetURL      string
	healthJSONPath string
	client         *http.Client
}

// NewHTTPProber creates a new HTTP-based prober for a single target URL. When
// healthJSONPath is not empty, a 200 response additionally needs that JSON
// path present in the body to count as available.
func NewHTTPProber(targetURL string, healthJSONPath string, timeout time.Duration) (*httpProber, error) {
	if len(targetURL) == 0 {
		return nil, errEmptyTargetURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &httpProber{
		targetURL:      targetURL,
		healthJSONPath: healthJSONPath,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Run performs exactly one GET against the target and classifies the outcome.
// It never returns an error: DNS failures, refused connections, TLS errors,
// timeouts and non-200 statuses all classify as unavailable, and the
// invocation always yields a complete measurement. The prober keeps no state
// between runs; smoothing transient failures is entirely the alarm
// evaluator's job.
func (p *httpProber) Run(ctx context.Context) common.Measurement {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.targetURL, nil)
	if err != nil {
		log.Warn("failed to create probe request", "url", p.targetURL, "error", err)
		return common.Measurement{}
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		log.Debug("probe request failed", "url", p.targetURL, "error", err)
		return common.Measurement{}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		log.Debug("probe got non-200 status", "url", p.targetURL, "status", resp.StatusCode)
		_, _ = io.Copy(io.Discard, resp.Body)
		return common.Measurement{}
	}

	// latency covers request start up to the full response receipt, so the
	// body is read before stopping the clock
	body, readErr := io.ReadAll(resp.Body)
	elapsedMs := float64(time.Since(start)) / float64(time.Millisecond)
	if readErr != nil {
		log.Debug("failed to read probe response body", "url", p.targetURL, "error", readErr)
		return common.Measurement{}
	}

	if len(p.healthJSONPath) > 0 && !gjson.GetBytes(body, p.healthJSONPath).Exists() {
		log.Debug("health JSON path not found in response", "url", p.targetURL, "path", p.healthJSONPath)
		return common.Measurement{}
	}

	return common.Measurement{
		Availability: 1,
		LatencyMs:    elapsedMs,
		LatencyKnown: true,
	}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (p *httpProber) IsInterfaceNil() bool {
	return p == nil
}
