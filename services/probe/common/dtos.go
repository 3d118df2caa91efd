package common

// Metric names the probe reports under. The namespace is shared, so multiple
// probed sites can coexist in it, distinguished only by the site dimension.
const (
	MetricAvailability = "Availability"
	MetricLatencyMs    = "LatencyMs"
)

// Units attached to the emitted metric data
const (
	UnitCount        = "Count"
	UnitMilliseconds = "Milliseconds"
)

// Measurement is the outcome of a single probe run
type Measurement struct {
	Availability float64
	LatencyMs    float64
	// LatencyKnown is false when the request failed before a latency could be
	// meaningfully attributed; LatencyMs is 0 then, a sentinel and not a measured value
	LatencyKnown bool
}

// MetricDatum defines a single recorded metric value
type MetricDatum struct {
	MetricName string  `json:"metricName"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Timestamp  int64   `json:"timestamp"`
}

// MetricsPayload is the payload to be sent to the metrics sink
type MetricsPayload struct {
	Namespace string        `json:"namespace"`
	Site      string        `json:"site"`
	Metrics   []MetricDatum `json:"metrics"`
}
