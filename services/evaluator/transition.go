package evaluator

import "encoding/json"

// Trigger is the structured descriptor of the rule that fired, as it appears
// on the notification wire
type Trigger struct {
	MetricName         string  `json:"MetricName"`
	Namespace          string  `json:"Namespace"`
	Threshold          float64 `json:"Threshold"`
	ComparisonOperator string  `json:"ComparisonOperator"`
	EvaluationPeriods  int     `json:"EvaluationPeriods"`
	DatapointsToAlarm  int     `json:"DatapointsToAlarm"`
}

// Transition is one alarm state change as published on the notification
// channel. StateChangeTime is an ISO-8601 timestamp and, together with
// AlarmName, forms the uniqueness key within an alarm's history.
type Transition struct {
	AlarmName       string  `json:"AlarmName"`
	NewStateValue   string  `json:"NewStateValue"`
	OldStateValue   string  `json:"OldStateValue"`
	StateChangeTime string  `json:"StateChangeTime"`
	NewStateReason  string  `json:"NewStateReason"`
	Region          string  `json:"Region"`
	Trigger         Trigger `json:"Trigger"`
}

// Marshal renders the transition in the wire format consumed by the recorder
func (t *Transition) Marshal() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
