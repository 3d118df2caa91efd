package factory

import "context"

// Engine defines the probe service's operations
type Engine interface {
	Process(ctx context.Context)
	IsInterfaceNil() bool
}
