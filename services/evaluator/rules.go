// Package evaluator holds the executable form of the contract this system is
// designed against: the metrics backend's rule engine that averages each
// metric over a fixed period, compares the average to a threshold and emits a
// notification only when the alarm state changes. The engine itself is an
// external collaborator and is not implemented here; this package describes
// its rules and its wire format so the recorder and the tests can be built
// and exercised against it.
package evaluator

import (
	"fmt"
	"time"
)

// State is the binary alarm state, plus the sentinel used before enough data exists
type State string

const (
	// StateOK means the metric average is within the threshold
	StateOK State = "OK"
	// StateAlarm means the metric average breached the threshold
	StateAlarm State = "ALARM"
	// StateInsufficientData means not enough datapoints were observed yet
	StateInsufficientData State = "INSUFFICIENT_DATA"
)

// Comparison operators as they appear in the notification wire format
const (
	ComparisonLessThanThreshold    = "LessThanThreshold"
	ComparisonGreaterThanThreshold = "GreaterThanThreshold"
)

// Default rule values. Thresholds and windows are configuration, not logic:
// the constructors below produce the canonical rules but every field of a
// Rule can be set freely.
const (
	DefaultPeriodSeconds         = 300
	DefaultAvailabilityThreshold = 0.5
	DefaultLatencyThresholdMs    = 2000
)

// Rule describes one alarm rule of the external evaluator: which metric it
// averages, over what period, and the threshold comparison that flips the
// binary state. A single evaluation period is used in both directions, so the
// alarm fires on the first breaching period and recovers on the first
// non-breaching one (minimal hysteresis).
type Rule struct {
	Name               string
	MetricName         string
	Namespace          string
	Threshold          float64
	ComparisonOperator string
	PeriodSeconds      int
	EvaluationPeriods  int
	DatapointsToAlarm  int
}

// AvailabilityRule returns the canonical availability rule: the alarm fires
// when the period average availability drops strictly below 0.5
func AvailabilityRule(namespace string) Rule {
	return Rule{
		Name:               "AvailabilityAlarm",
		MetricName:         "Availability",
		Namespace:          namespace,
		Threshold:          DefaultAvailabilityThreshold,
		ComparisonOperator: ComparisonLessThanThreshold,
		PeriodSeconds:      DefaultPeriodSeconds,
		EvaluationPeriods:  1,
		DatapointsToAlarm:  1,
	}
}

// LatencyRule returns the canonical latency rule: the alarm fires when the
// period average latency exceeds 2000 ms
func LatencyRule(namespace string) Rule {
	return Rule{
		Name:               "LatencyAlarm",
		MetricName:         "LatencyMs",
		Namespace:          namespace,
		Threshold:          DefaultLatencyThresholdMs,
		ComparisonOperator: ComparisonGreaterThanThreshold,
		PeriodSeconds:      DefaultPeriodSeconds,
		EvaluationPeriods:  1,
		DatapointsToAlarm:  1,
	}
}

// Evaluate compares one period average against the rule threshold
func (r Rule) Evaluate(avg float64) State {
	breached := false
	switch r.ComparisonOperator {
	case ComparisonLessThanThreshold:
		breached = avg < r.Threshold
	case ComparisonGreaterThanThreshold:
		breached = avg > r.Threshold
	}

	if breached {
		return StateAlarm
	}

	return StateOK
}

// NextTransition returns the notification the evaluator would emit after
// observing avg for one period, or nil and false when the state does not
// change. Transitions are emitted only on a state change, never on a
// no-change period.
func NextTransition(r Rule, prev State, avg float64, at time.Time) (*Transition, bool) {
	next := r.Evaluate(avg)
	if next == prev {
		return nil, false
	}

	return &Transition{
		AlarmName:       r.Name,
		NewStateValue:   string(next),
		OldStateValue:   string(prev),
		StateChangeTime: at.UTC().Format(time.RFC3339),
		NewStateReason:  reasonFor(r, next, avg),
		Region:          "N/A",
		Trigger: Trigger{
			MetricName:         r.MetricName,
			Namespace:          r.Namespace,
			Threshold:          r.Threshold,
			ComparisonOperator: r.ComparisonOperator,
			EvaluationPeriods:  r.EvaluationPeriods,
			DatapointsToAlarm:  r.DatapointsToAlarm,
		},
	}, true
}

func reasonFor(r Rule, next State, avg float64) string {
	direction := "within"
	if next == StateAlarm {
		switch r.ComparisonOperator {
		case ComparisonLessThanThreshold:
			direction = "below"
		case ComparisonGreaterThanThreshold:
			direction = "above"
		}
	}

	return fmt.Sprintf("Threshold Crossed: 1 datapoint [%g] was %s the threshold (%g)", avg, direction, r.Threshold)
}
