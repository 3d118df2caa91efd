package factory

import (
	"context"
	"sync"
	"time"

	"github.com/iulianpascalau/site-monitoring/commonGo"
	"github.com/iulianpascalau/site-monitoring/services/probe/config"
	"github.com/iulianpascalau/site-monitoring/services/probe/emitter"
	"github.com/iulianpascalau/site-monitoring/services/probe/engine"
	"github.com/iulianpascalau/site-monitoring/services/probe/prober"
)

type componentsHandler struct {
	prober        engine.Prober
	emitter       engine.Emitter
	engine        Engine
	mutCancel     sync.Mutex
	cancel        func()
	probeInterval time.Duration
}

// NewComponentsHandler creates a new components handler
func NewComponentsHandler(
	serviceKeyApi string,
	cfg config.Config,
) (*componentsHandler, error) {
	prb, err := prober.NewHTTPProber(cfg.TargetURL, cfg.HealthJSONPath, time.Duration(cfg.ProbeTimeoutInSeconds)*time.Second)
	if err != nil {
		return nil, err
	}

	emit := emitter.NewHTTPEmitter(cfg.MetricsEndpoint, serviceKeyApi, cfg.Namespace, cfg.SiteName,
		time.Duration(cfg.EmitTimeoutInSeconds)*time.Second)

	eng, err := engine.NewProbeEngine(cfg, prb, emit)
	if err != nil {
		return nil, err
	}

	return &componentsHandler{
		prober:        prb,
		emitter:       emit,
		engine:        eng,
		probeInterval: time.Duration(cfg.ProbeIntervalInSeconds) * time.Second,
	}, nil
}

// GetProber returns the prober component
func (ch *componentsHandler) GetProber() engine.Prober {
	return ch.prober
}

// GetEmitter returns the emitter component
func (ch *componentsHandler) GetEmitter() engine.Emitter {
	return ch.emitter
}

// GetEngine returns the engine component
func (ch *componentsHandler) GetEngine() Engine {
	return ch.engine
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel != nil {
		return
	}

	var ctx context.Context
	ctx, ch.cancel = context.WithCancel(context.Background())

	commonGo.CronJobStarter(ctx, ch.engine.Process, ch.probeInterval)
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel == nil {
		return
	}

	ch.cancel()
	ch.cancel = nil
}
