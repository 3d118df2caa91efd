package engine

import (
	"context"
	"errors"
	"time"

	"github.com/iulianpascalau/site-monitoring/services/probe/config"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("engine")

// probeEngine orchestrates one probe-and-emit cycle at configured intervals
type probeEngine struct {
	config  config.Config
	prober  Prober
	emitter Emitter
}

// NewProbeEngine creates a new engine instance
func NewProbeEngine(cfg config.Config, p Prober, e Emitter) (*probeEngine, error) {
	if check.IfNil(p) {
		return nil, errors.New("nil prober")
	}
	if check.IfNil(e) {
		return nil, errors.New("nil emitter")
	}

	return &probeEngine{
		config:  cfg,
		prober:  p,
		emitter: e,
	}, nil
}

// Process runs one probe against the target and emits the resulting
// measurement pair. An emit failure is logged and absorbed: losing one data
// point is preferable to an unexplained invocation failure, and an extended
// absence of measurements is detectable by the metrics backend itself.
func (e *probeEngine) Process(ctx context.Context) {
	probeCtx, cancelProbe := context.WithTimeout(ctx, time.Duration(e.config.ProbeTimeoutInSeconds)*time.Second)
	defer cancelProbe()

	m := e.prober.Run(probeCtx)

	log.Debug("probe finished", "site", e.config.SiteName,
		"availability", m.Availability, "latency_ms", m.LatencyMs, "latency_known", m.LatencyKnown)

	emitCtx, cancelEmit := context.WithTimeout(ctx, time.Duration(e.config.EmitTimeoutInSeconds)*time.Second)
	defer cancelEmit()

	err := e.emitter.Emit(emitCtx, m)
	if err != nil {
		log.Warn("failed to emit measurements, the data point is discarded", "error", err)
	}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (e *probeEngine) IsInterfaceNil() bool {
	return e == nil
}
