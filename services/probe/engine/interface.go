package engine

import (
	"context"

	"github.com/iulianpascalau/site-monitoring/services/probe/common"
)

// Prober defines the interface for performing one availability check against the target
type Prober interface {
	// Run performs a single GET against the target URL and classifies the outcome.
	// It never fails: transport errors and non-200 statuses classify as unavailable.
	Run(ctx context.Context) common.Measurement

	IsInterfaceNil() bool
}

// Emitter defines the interface for pushing measurements to the metrics sink
type Emitter interface {
	// Emit sends the availability and latency values of one measurement to the sink
	Emit(ctx context.Context, m common.Measurement) error

	IsInterfaceNil() bool
}
