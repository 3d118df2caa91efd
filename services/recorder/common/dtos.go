package common

// Sentinel values used when a notification payload misses structured fields
const (
	UnknownAlarmName = "UnknownAlarm"
	UnknownState     = "UNKNOWN"
	UnknownRegion    = "N/A"
)

// HistoryRecord is the persisted form of one alarm state transition. The
// partition key is AlarmName and the sort key is StateChangeTime (a
// string-sortable ISO-8601 timestamp), giving natural per-alarm chronological
// retrieval. Records are never mutated after acceptance; they disappear only
// through the passive expiry sweep.
type HistoryRecord struct {
	AlarmName         string  `json:"alarmName"`
	StateChangeTime   string  `json:"stateChangeTime"`
	RecordID          string  `json:"recordId"`
	NewState          string  `json:"newState"`
	OldState          string  `json:"oldState"`
	Reason            string  `json:"reason"`
	Region            string  `json:"region"`
	MetricName        string  `json:"metricName"`
	Namespace         string  `json:"namespace"`
	Threshold         float64 `json:"threshold"`
	Comparison        string  `json:"comparison"`
	EvaluationPeriods int     `json:"evaluationPeriods"`
	DatapointsToAlarm int     `json:"datapointsToAlarm"`
	ExpiresAt         int64   `json:"expiresAt"`
	RawPayload        string  `json:"rawPayload"`
}

// RecordSummary is the per-message acknowledgement returned to the caller
// after a batch is recorded. It exists for observability of the recorder
// itself, not for correctness.
type RecordSummary struct {
	AlarmName       string `json:"alarm"`
	NewState        string `json:"state"`
	StateChangeTime string `json:"time"`
}
