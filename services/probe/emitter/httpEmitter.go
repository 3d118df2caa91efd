package emitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/iulianpascalau/site-monitoring/services/probe/common"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("emitter")

type httpEmitter struct {
	endpoint  string
	apiKey    string
	namespace string
	site      string
	client    *http.Client
}

// NewHTTPEmitter creates a new emitter that pushes measurements to the configured metrics sink
func NewHTTPEmitter(endpoint, apiKey, namespace, site string, timeout time.Duration) *httpEmitter {
	return &httpEmitter{
		endpoint:  endpoint,
		apiKey:    apiKey,
		namespace: namespace,
		site:      site,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Emit pushes the availability and latency values of one measurement to the
// metrics sink, one datum per metric, both stamped with the current time
func (e *httpEmitter) Emit(ctx context.Context, m common.Measurement) error {
	now := time.Now().Unix()
	payload := common.MetricsPayload{
		Namespace: e.namespace,
		Site:      e.site,
		Metrics: []common.MetricDatum{
			{
				MetricName: common.MetricAvailability,
				Value:      m.Availability,
				Unit:       common.UnitCount,
				Timestamp:  now,
			},
			{
				MetricName: common.MetricLatencyMs,
				Value:      m.LatencyMs,
				Unit:       common.UnitMilliseconds,
				Timestamp:  now,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create metrics request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("network error sending metrics: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("metrics sink rejected the payload with status code: %d", resp.StatusCode)
	}

	log.Debug("emitted measurements", "endpoint", e.endpoint, "namespace", e.namespace, "site", e.site,
		"availability", m.Availability, "latency_ms", m.LatencyMs)

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (e *httpEmitter) IsInterfaceNil() bool {
	return e == nil
}
