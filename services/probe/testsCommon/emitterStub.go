package testsCommon

import (
	"context"

	"github.com/iulianpascalau/site-monitoring/services/probe/common"
)

// EmitterStub -
type EmitterStub struct {
	EmitHandler func(ctx context.Context, m common.Measurement) error
}

// Emit -
func (stub *EmitterStub) Emit(ctx context.Context, m common.Measurement) error {
	if stub.EmitHandler != nil {
		return stub.EmitHandler(ctx, m)
	}

	return nil
}

// IsInterfaceNil -
func (stub *EmitterStub) IsInterfaceNil() bool {
	return stub == nil
}
