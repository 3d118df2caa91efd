package notification

import (
	"encoding/json"
	"time"

	"github.com/iulianpascalau/site-monitoring/services/recorder/common"
	"github.com/tidwall/gjson"
)

// Event is the tolerantly parsed form of one notification message. The
// notification channel is not trusted: every field is optional and falls back
// to a documented sentinel, and the complete original message is always
// retained in Raw for audit, protecting against schema drift in the source.
type Event struct {
	AlarmName         string
	NewState          string
	OldState          string
	StateChangeTime   string
	Reason            string
	Region            string
	MetricName        string
	Namespace         string
	Threshold         float64
	Comparison        string
	EvaluationPeriods int
	DatapointsToAlarm int
	Raw               string
}

// sentinelTimeLayout carries microsecond precision so that two messages
// falling back to the ingestion time in the same second still get distinct
// (alarm_name, state_change_time) keys and never overwrite each other
const sentinelTimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Parse extracts the alarm transition fields from one raw notification
// message. It never fails: a message that is not a JSON object yields the
// fallback event, with the original text preserved under a RawMessage wrapper
// instead of being dropped. Missing fields default to sentinels
// ("UnknownAlarm", "UNKNOWN", the provided current time) rather than failing
// the message.
func Parse(raw string, now time.Time) Event {
	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return fallbackEvent(raw, now)
	}

	stateTime := parsed.Get("StateChangeTime").String()
	if len(stateTime) == 0 {
		stateTime = now.UTC().Format(sentinelTimeLayout)
	}

	return Event{
		AlarmName:         stringOr(parsed.Get("AlarmName"), common.UnknownAlarmName),
		NewState:          stringOr(parsed.Get("NewStateValue"), common.UnknownState),
		OldState:          stringOr(parsed.Get("OldStateValue"), common.UnknownState),
		StateChangeTime:   stateTime,
		Reason:            parsed.Get("NewStateReason").String(),
		Region:            stringOr(parsed.Get("Region"), common.UnknownRegion),
		MetricName:        parsed.Get("Trigger.MetricName").String(),
		Namespace:         parsed.Get("Trigger.Namespace").String(),
		Threshold:         parsed.Get("Trigger.Threshold").Float(),
		Comparison:        parsed.Get("Trigger.ComparisonOperator").String(),
		EvaluationPeriods: int(parsed.Get("Trigger.EvaluationPeriods").Int()),
		DatapointsToAlarm: int(parsed.Get("Trigger.DatapointsToAlarm").Int()),
		Raw:               raw,
	}
}

func fallbackEvent(raw string, now time.Time) Event {
	// keep the unparseable text as a JSON document so the stored raw payload
	// stays machine-readable
	wrapped, err := json.Marshal(map[string]string{"RawMessage": raw})
	if err != nil {
		wrapped = []byte(`{"RawMessage":""}`)
	}

	return Event{
		AlarmName:       common.UnknownAlarmName,
		NewState:        common.UnknownState,
		OldState:        common.UnknownState,
		StateChangeTime: now.UTC().Format(sentinelTimeLayout),
		Region:          common.UnknownRegion,
		Raw:             string(wrapped),
	}
}

func stringOr(result gjson.Result, fallback string) string {
	if !result.Exists() || len(result.String()) == 0 {
		return fallback
	}

	return result.String()
}
